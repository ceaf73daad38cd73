package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the fsgate configuration
type Config struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Directories the server is allowed to operate in. Overridden by the
	// ALLOWED_DIR environment variable when it is set. Empty means no path
	// is authorized.
	AllowedDirs []string `yaml:"allowed_dirs"`
}

// ConfigError reports a malformed allow-list value. Fatal at startup.
type ConfigError struct {
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid allowed directory configuration %q: %v", e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadFromBytes loads configuration from YAML bytes with environment variable expansion
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// LoadFile loads configuration from a YAML file
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadFromBytes(data)
}

// ApplyEnv overrides file configuration from the environment. ALLOWED_DIR
// holds either a single path or a JSON array of paths; when set (even to the
// empty string) it replaces allowed_dirs entirely, so an empty value locks
// the server down rather than opening it up.
func (c *Config) ApplyEnv() error {
	if val, ok := os.LookupEnv("ALLOWED_DIR"); ok {
		dirs, err := ParseAllowedDir(val)
		if err != nil {
			return err
		}
		c.AllowedDirs = dirs
	}
	return nil
}

// ParseAllowedDir parses an ALLOWED_DIR value: empty, a single path, or a
// JSON array of path strings (detected by a leading '[').
func ParseAllowedDir(val string) ([]string, error) {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var dirs []string
		if err := json.Unmarshal([]byte(trimmed), &dirs); err != nil {
			return nil, &ConfigError{Value: val, Err: err}
		}
		return dirs, nil
	}
	return []string{trimmed}, nil
}
