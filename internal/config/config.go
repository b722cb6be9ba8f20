// Package config handles the persisted CLI configuration and the credential
// cascade: environment variables override the config file, and both are
// resolved once at startup into an immutable Config.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvToken supplies the access token, overriding the config file.
	EnvToken = "SENTRY_ACCESS_TOKEN"
	// EnvHost and EnvURL supply the API host; EnvHost wins when both are set.
	EnvHost = "SENTRY_HOST"
	EnvURL  = "SENTRY_URL"

	// DefaultHost is the public SaaS host.
	DefaultHost = "sentry.io"
)

// ConfigError covers missing required values and unreadable or malformed
// persisted config.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// File is the on-disk config shape: a flat JSON object.
type File struct {
	AccessToken    string `json:"accessToken,omitempty"`
	Host           string `json:"host,omitempty"`
	DefaultOrg     string `json:"defaultOrg,omitempty"`
	DefaultProject string `json:"defaultProject,omitempty"`
}

// Path returns the config file location, ~/.config/sentry/config.json.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &ConfigError{Message: "cannot determine home directory", Cause: err}
	}
	return filepath.Join(home, ".config", "sentry", "config.json"), nil
}

// Read loads the config file at path. A missing file is an empty config, not
// an error; an unreadable or malformed file is a ConfigError.
func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, &ConfigError{Message: "failed to read config file: " + path, Cause: err}
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, &ConfigError{Message: "failed to parse config file: " + path, Cause: err}
	}
	return f, nil
}

// Write persists the config file at path, creating the directory if needed.
// The file holds a credential, so permissions are owner-only.
func Write(path string, f File) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &ConfigError{Message: "failed to create config directory: " + dir, Cause: err}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return &ConfigError{Message: "failed to encode config", Cause: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &ConfigError{Message: "failed to write config file: " + path, Cause: err}
	}
	return nil
}

// Config is the resolved, read-only configuration threaded into the API
// client and resolver at construction time.
type Config struct {
	Token          string
	Host           string
	DefaultOrg     string
	DefaultProject string
	Path           string
}

// Load resolves the configuration from path plus the process environment.
// A broken config file degrades to the environment-only view rather than
// blocking every command; `config` subcommands surface file problems
// explicitly via Read.
func Load(path string) Config {
	f, err := Read(path)
	if err != nil {
		f = File{}
	}

	token := os.Getenv(EnvToken)
	if token == "" {
		token = f.AccessToken
	}
	host := os.Getenv(EnvHost)
	if host == "" {
		host = os.Getenv(EnvURL)
	}
	if host == "" {
		host = f.Host
	}
	if host == "" {
		host = DefaultHost
	}

	return Config{
		Token:          token,
		Host:           host,
		DefaultOrg:     f.DefaultOrg,
		DefaultProject: f.DefaultProject,
		Path:           path,
	}
}

// MaskToken renders a token for display without revealing it.
func MaskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) < 12 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", token[:8], token[len(token)-4:])
}
