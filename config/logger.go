package config

import (
	"errors"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// AppName names the program in logs.
const AppName = "fragskema"

type LoggingConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none normal debug"`
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// Prepare returns the program logger. Everything goes to stderr so generated
// documents can be piped from stdout.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	return conf.build(os.Stderr, EnableColorOutput(os.Stderr))
}

func (conf *LoggingConfig) build(out zapcore.WriteSyncer, color bool) (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var level zapcore.Level
	switch conf.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "normal":
		level = zapcore.InfoLevel
	case "none", "":
		return zap.NewNop(), nil
	default:
		return nil, errors.New("unknown logging level " + conf.Level)
	}
	core := zapcore.NewCore(newEncoder(ec), zapcore.Lock(out), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller()).Named(AppName), nil
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			// aggregated errors print every member on one line
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
