package i18n

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "id" or "ref").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "identity_collision":
			return "同じIDに異なる形状が定義されています"
		case "unresolved_reference":
			return "参照先が見つかりません"
		case "malformed_shape":
			return "形状の定義が不正です"
		case "cycle_detected":
			return "参照の循環を検出しました"
		case "type_drift":
			return "型がスキーマと一致しません"
		case "duplicate_key":
			return "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "identity_collision":
			return "fragment id bound to differing shapes"
		case "unresolved_reference":
			return "reference does not resolve"
		case "malformed_shape":
			return "malformed shape"
		case "cycle_detected":
			return "reference cycle detected"
		case "type_drift":
			return "type does not match schema"
		case "duplicate_key":
			return "duplicate key"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
