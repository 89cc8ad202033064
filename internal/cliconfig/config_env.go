package cliconfig

import "os"

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DISTCLIENT_"

// ApplyEnvConfig applies DISTCLIENT_* environment variables, skipping
// flags in changed. Malformed values are reported as errors.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("base-url", env("BASE_URL"), &cfg.BaseURL)
	s.setString("session-backend", env("SESSION_BACKEND"), &cfg.SessionBackend)
	s.setString("session-dir", env("SESSION_DIR"), &cfg.SessionDir)
	s.setString("namespace", env("NAMESPACE"), &cfg.Namespace)
	s.setString("redis-addr", env("REDIS_ADDR"), &cfg.RedisAddr)
	s.setString("redis-password", env("REDIS_PASSWORD"), &cfg.RedisPassword)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-backend", env("LOG_BACKEND"), &cfg.LogBackend)

	if err := s.setDuration("timeout", env("TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setIntFromString("redis-db", env("REDIS_DB"), &cfg.RedisDB); err != nil {
		return err
	}
	s.setBoolFromString("watch-session", env("WATCH_SESSION"), &cfg.WatchSession)

	return nil
}
