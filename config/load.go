package config

import (
	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// Load layers the config file at path (if any) over DefaultConfig, applies
// environment secrets and validates the result.
func Load(path string) (Config, *koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()); err != nil {
		return Config{}, nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, nil, err
		}
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, nil, err
	}

	c = LoadSecrets(c)
	if err := c.Validate(); err != nil {
		return Config{}, nil, err
	}
	return c, k, nil
}
