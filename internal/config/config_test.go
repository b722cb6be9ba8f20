package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissingFileIsEmpty(t *testing.T) {
	f, err := Read(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Read of missing file failed: %v", err)
	}
	if f != (File{}) {
		t.Errorf("f = %+v, want zero value", f)
	}
}

func TestReadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	in := File{
		AccessToken:    "sntryu_abc123",
		Host:           "sentry.example.com",
		DefaultOrg:     "acme",
		DefaultProject: "frontend",
	}

	if err := Write(path, in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if out != in {
		t.Errorf("roundtrip = %+v, want %+v", out, in)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Write(path, File{
		AccessToken: "file-token",
		Host:        "file-host.example.com",
		DefaultOrg:  "acme",
	}); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvHost, "env-host.example.com")
	t.Setenv(EnvURL, "url-host.example.com")

	cfg := Load(path)
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, want env value", cfg.Token)
	}
	if cfg.Host != "env-host.example.com" {
		t.Errorf("Host = %q, want SENTRY_HOST to win over SENTRY_URL", cfg.Host)
	}
	if cfg.DefaultOrg != "acme" {
		t.Errorf("DefaultOrg = %q", cfg.DefaultOrg)
	}
}

func TestLoadFileValuesAndDefaults(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvHost, "")
	t.Setenv(EnvURL, "")

	path := filepath.Join(t.TempDir(), "config.json")
	if err := Write(path, File{AccessToken: "file-token"}); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Token != "file-token" {
		t.Errorf("Token = %q, want file value", cfg.Token)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want default %q", cfg.Host, DefaultHost)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestLoadBrokenFileDegrades(t *testing.T) {
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvHost, "")
	t.Setenv(EnvURL, "")

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`garbage`), 0o600); err != nil {
		t.Fatal(err)
	}

	// A broken file must not block commands that only need the env token.
	cfg := Load(path)
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, want env value", cfg.Token)
	}
	if cfg.DefaultOrg != "" {
		t.Errorf("DefaultOrg = %q, want empty", cfg.DefaultOrg)
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "empty", token: "", expected: "(not set)"},
		{name: "short token fully hidden", token: "abc", expected: "***"},
		{name: "long token shows edges", token: "sntryu_0123456789abcdef", expected: "sntryu_0...cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskToken(tt.token); got != tt.expected {
				t.Errorf("MaskToken(%q) = %q, want %q", tt.token, got, tt.expected)
			}
		})
	}
}
