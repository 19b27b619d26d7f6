// Package config loads YAML validator configuration, either from an
// external file or from a builtin embedded in the binary.
package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hookschema"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Config is a validator configuration. Prompt is the free-text validation
// rules appended to the judgment system prompt.
type Config struct {
	Prompt       string   `yaml:"prompt"`
	Model        string   `yaml:"model"`
	AllowedTools []string `yaml:"allowed_tools"`
}

// Error reports a configuration loading or validation failure.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func newErrorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Load reads and validates an external YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErrorf("config file %q not found", path)
		}
		return nil, newErrorf("failed to read config file %q: %v", path, err)
	}
	cfg, err := parse(raw)
	if err != nil {
		return nil, newErrorf("config file %q: %v", path, err)
	}
	return cfg, nil
}

// LoadBuiltin loads one of the configurations embedded in the binary,
// by name without the .yaml extension.
func LoadBuiltin(name string) (*Config, error) {
	raw, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, newErrorf("builtin config %q not found", name)
	}
	cfg, err := parse(raw)
	if err != nil {
		return nil, newErrorf("builtin config %q: %v", name, err)
	}
	return cfg, nil
}

// parse unmarshals raw YAML, validates it against the config schema
// (required prompt, model allow-list, allowed_tools types), and decodes
// it into a Config.
func parse(raw []byte) (*Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %v", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("configuration is empty")
	}
	if err := hookschema.ValidateConfig(doc); err != nil {
		return nil, fmt.Errorf("validation failed: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %v", err)
	}
	return &cfg, nil
}
