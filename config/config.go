package config

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed networks.toml
var defaultNetworks []byte

// Default returns the built-in parameter tables for the canonical protocol
// deployments. The result is freshly decoded on each call so callers can
// mutate their copy before handing it to the SDK.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(defaultNetworks, cfg); err != nil {
		return nil, fmt.Errorf("config: decode embedded networks: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a parameter table from a TOML file, replacing the defaults
// entirely. Partial overrides should start from Default and mutate.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
