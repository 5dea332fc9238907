package config

import (
	"errors"
	"fmt"
	"os"

	"uisync/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Load reads classification rules from the given YAML file, layered over the
// compiled-in defaults. A missing file is not an error; the defaults are used
// as-is. An empty path skips file loading entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No rules file at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error reading rules file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error loading rules from %s: %w", path, err)
	}

	logging.Info("ConfigLoader", "Loaded classification rules from %s", path)
	return cfg, nil
}
