package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all values",
			envVars: map[string]string{
				"DISTCLIENT_BASE_URL":        "http://env",
				"DISTCLIENT_TIMEOUT":         "1m",
				"DISTCLIENT_SESSION_BACKEND": "redis",
				"DISTCLIENT_SESSION_DIR":     "/env/dir",
				"DISTCLIENT_NAMESPACE":       "env-ns",
				"DISTCLIENT_REDIS_ADDR":      "cache:6379",
				"DISTCLIENT_REDIS_PASSWORD":  "pw",
				"DISTCLIENT_REDIS_DB":        "3",
				"DISTCLIENT_LOG_LEVEL":       "info",
				"DISTCLIENT_LOG_BACKEND":     "zap",
				"DISTCLIENT_WATCH_SESSION":   "1",
			},
			changed: map[string]bool{},
			expected: Config{
				BaseURL:        "http://env",
				Timeout:        time.Minute,
				SessionBackend: "redis",
				SessionDir:     "/env/dir",
				Namespace:      "env-ns",
				RedisAddr:      "cache:6379",
				RedisPassword:  "pw",
				RedisDB:        3,
				LogLevel:       "info",
				LogBackend:     "zap",
				WatchSession:   true,
			},
		},
		{
			name:     "respects changed flags",
			envVars:  map[string]string{"DISTCLIENT_BASE_URL": "http://env", "DISTCLIENT_NAMESPACE": "env-ns"},
			changed:  map[string]bool{"base-url": true},
			initial:  Config{BaseURL: "http://flag"},
			expected: Config{BaseURL: "http://flag", Namespace: "env-ns"},
		},
		{
			name:     "watch-session flag wins over env",
			envVars:  map[string]string{"DISTCLIENT_WATCH_SESSION": "true"},
			changed:  map[string]bool{"watch-session": true},
			initial:  Config{},
			expected: Config{},
		},
		{
			name:     "false bool",
			envVars:  map[string]string{"DISTCLIENT_WATCH_SESSION": "false"},
			changed:  map[string]bool{},
			initial:  Config{WatchSession: true},
			expected: Config{},
		},
		{
			name:    "invalid duration",
			envVars: map[string]string{"DISTCLIENT_TIMEOUT": "later"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "invalid int",
			envVars: map[string]string{"DISTCLIENT_REDIS_DB": "one"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "base_url = \"http://file\"\nnamespace = \"file-ns\"\nlog_level = \"info\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DISTCLIENT_NAMESPACE", "env-ns")
	t.Setenv("DISTCLIENT_LOG_LEVEL", "error")

	cfg := DefaultConfig()
	cfg.SessionDir = dir
	cfg.LogLevel = "debug"
	changed := map[string]bool{"log-level": true}

	if err := Resolve(&cfg, path, changed); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.BaseURL != "http://file" {
		t.Errorf("BaseURL = %v, want file value", cfg.BaseURL)
	}
	if cfg.Namespace != "env-ns" {
		t.Errorf("Namespace = %v, want env value", cfg.Namespace)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want flag value", cfg.LogLevel)
	}
}

func TestResolve_MissingBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	if err := Resolve(&cfg, filepath.Join(t.TempDir(), "none.toml"), map[string]bool{}); err == nil {
		t.Error("expected error without base url")
	}
}
