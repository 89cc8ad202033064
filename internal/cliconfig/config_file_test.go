package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all values",
			fileConfig: FileConfig{
				BaseURL:        "http://file",
				Timeout:        "5s",
				SessionBackend: "sqlite",
				SessionDir:     "/file/dir",
				Namespace:      "prefs",
				RedisAddr:      "redis:6379",
				RedisPassword:  "pw",
				RedisDB:        4,
				LogLevel:       "debug",
				LogBackend:     "zap",
				WatchSession:   &trueVal,
			},
			changed: map[string]bool{},
			expected: Config{
				BaseURL:        "http://file",
				Timeout:        5 * time.Second,
				SessionBackend: "sqlite",
				SessionDir:     "/file/dir",
				Namespace:      "prefs",
				RedisAddr:      "redis:6379",
				RedisPassword:  "pw",
				RedisDB:        4,
				LogLevel:       "debug",
				LogBackend:     "zap",
				WatchSession:   true,
			},
		},
		{
			name:       "respects changed flags",
			fileConfig: FileConfig{BaseURL: "http://file", Namespace: "file-ns"},
			changed:    map[string]bool{"base-url": true},
			initial:    Config{BaseURL: "http://flag", Namespace: "flag-ns"},
			expected:   Config{BaseURL: "http://flag", Namespace: "file-ns"},
		},
		{
			name:       "watch-session flag wins over file",
			fileConfig: FileConfig{WatchSession: &trueVal},
			changed:    map[string]bool{"watch-session": true},
			initial:    Config{},
			expected:   Config{},
		},
		{
			name:       "keeps initial values for empty fields",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    Config{Timeout: time.Minute, WatchSession: true},
			expected:   Config{Timeout: time.Minute, WatchSession: true},
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{Timeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
base_url = "http://localhost:8000"
timeout = "10s"
session_backend = "redis"
redis_addr = "localhost:6380"
redis_db = 1
watch_session = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %v", fc.BaseURL)
	}
	if fc.Timeout != "10s" {
		t.Errorf("Timeout = %v", fc.Timeout)
	}
	if fc.RedisDB != 1 {
		t.Errorf("RedisDB = %v", fc.RedisDB)
	}
	if fc.WatchSession == nil || !*fc.WatchSession {
		t.Errorf("WatchSession = %v", fc.WatchSession)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("base_url = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("expected error for malformed toml")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	p := DefaultConfigPath()
	if p == "" {
		t.Skip("no home directory")
	}
	if !strings.HasSuffix(p, filepath.Join(".distclient", "config.toml")) {
		t.Errorf("DefaultConfigPath() = %v", p)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if FileExists(path) {
		t.Error("FileExists() = true before create")
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false after create")
	}
}
