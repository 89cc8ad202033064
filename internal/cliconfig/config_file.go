package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types.
type FileConfig struct {
	BaseURL        string `toml:"base_url"`
	Timeout        string `toml:"timeout"`
	SessionBackend string `toml:"session_backend"`
	SessionDir     string `toml:"session_dir"`
	Namespace      string `toml:"namespace"`
	RedisAddr      string `toml:"redis_addr"`
	RedisPassword  string `toml:"redis_password"`
	RedisDB        int    `toml:"redis_db"`
	LogLevel       string `toml:"log_level"`
	LogBackend     string `toml:"log_backend"`
	WatchSession   *bool  `toml:"watch_session"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.distclient/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".distclient", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies file values to cfg, skipping flags in changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("session-backend", fc.SessionBackend, &cfg.SessionBackend)
	s.setString("session-dir", fc.SessionDir, &cfg.SessionDir)
	s.setString("namespace", fc.Namespace, &cfg.Namespace)
	s.setString("redis-addr", fc.RedisAddr, &cfg.RedisAddr)
	s.setString("redis-password", fc.RedisPassword, &cfg.RedisPassword)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-backend", fc.LogBackend, &cfg.LogBackend)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	s.setInt("redis-db", fc.RedisDB, &cfg.RedisDB)
	s.setBool("watch-session", fc.WatchSession, &cfg.WatchSession)

	return nil
}

// FileExists reports whether a file exists at p.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
