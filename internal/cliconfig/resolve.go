package cliconfig

import "fmt"

// Resolve layers defaults, the config file at path (if it exists), the
// environment and explicitly set flags. cfg must already hold flag values.
func Resolve(cfg *Config, path string, changed map[string]bool) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}
