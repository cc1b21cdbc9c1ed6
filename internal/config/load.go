package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"sigs.k8s.io/yaml"
)

// Load reads a YAML config file, fills in defaults for omitted fields
// and validates the result. A missing file yields the defaults, so
// `lakeup up` works on a fresh checkout without an init step.
//
// A .env file next to the working directory is loaded first so timeout
// overrides can live alongside the config.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults restores defaults for fields the file set to empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Namespace == "" {
		cfg.Namespace = def.Namespace
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = def.Buckets
	}
	if cfg.CatalogBucket == "" {
		cfg.CatalogBucket = def.CatalogBucket
	}
	if cfg.ComputeUser == "" {
		cfg.ComputeUser = def.ComputeUser
	}
	if cfg.ProfileOutput == "" {
		cfg.ProfileOutput = def.ProfileOutput
	}
	if cfg.Timeouts == nil {
		cfg.Timeouts = LoadTimeouts()
	}
}

// Write marshals the config to YAML at path. Used by the init wizard.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
