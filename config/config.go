// Package config holds the fragskema command configuration.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	fragskema "github.com/reoring/fragskema"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	OutputConfig struct {
		Format string `yaml:"format" validate:"oneof=json yaml"`
		Pretty bool   `yaml:"pretty"`
		Path   string `yaml:"path"`
	}

	DeriveConfig struct {
		Package string            `yaml:"package"`
		Path    string            `yaml:"path"`
		Names   map[string]string `yaml:"names" validate:"dive,keys,required,endkeys,required"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Sources []string      `yaml:"sources" validate:"dive,required"`
		Roots   []string      `yaml:"roots" validate:"dive,required"`
		Cycles  string        `yaml:"cycles" validate:"oneof=reject allow"`
		Output  OutputConfig  `yaml:"output"`
		Derive  DeriveConfig  `yaml:"derive"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields defined above are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration file at path on top of the defaults and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dump serializes cfg back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// CyclePolicy maps the cycles setting onto the composer option.
func (c *Config) CyclePolicy() fragskema.CyclePolicy {
	if c.Cycles == "allow" {
		return fragskema.CycleAllow
	}
	return fragskema.CycleReject
}

// ComposeOptions returns the composer options the configuration implies.
func (c *Config) ComposeOptions() []fragskema.Option {
	return []fragskema.Option{fragskema.WithCycles(c.CyclePolicy())}
}
