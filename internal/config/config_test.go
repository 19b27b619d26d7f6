package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBuiltin(t *testing.T) {
	cfg, err := LoadBuiltin("validate_bq_query")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Prompt)
	assert.Contains(t, cfg.Prompt, "BigQuery")
}

func TestLoadBuiltinNotFound(t *testing.T) {
	_, err := LoadBuiltin("nonexistent_config")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
prompt: "Test validation prompt"
model: "sonnet"
allowed_tools:
  - Bash
  - Read
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Test validation prompt", cfg.Prompt)
	assert.Equal(t, "sonnet", cfg.Model)
	assert.Equal(t, []string{"Bash", "Read"}, cfg.AllowedTools)
}

func TestLoadMinimalConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `prompt: "Minimal prompt"`))
	require.NoError(t, err)

	assert.Equal(t, "Minimal prompt", cfg.Prompt)
	assert.Empty(t, cfg.Model)
	assert.Empty(t, cfg.AllowedTools)
}

func TestLoadMultilinePrompt(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
prompt: |
  You are a BigQuery query validator.
  Check if the query is safe.
  Deny dangerous operations.
model: "haiku"
`))
	require.NoError(t, err)

	assert.Contains(t, cfg.Prompt, "You are a BigQuery query validator")
	assert.Contains(t, cfg.Prompt, "Deny dangerous operations")
	assert.Equal(t, "haiku", cfg.Model)
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadInvalidYAMLSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, `
prompt: "Test prompt
model: unquoted value with spaces
  - this is wrong indentation
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadMissingPrompt(t *testing.T) {
	_, err := Load(writeConfig(t, `
model: "sonnet"
allowed_tools:
  - Bash
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt")
}

func TestLoadInvalidModelName(t *testing.T) {
	_, err := Load(writeConfig(t, `
prompt: "Test prompt"
model: "invalid-model-name"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadInvalidPromptType(t *testing.T) {
	_, err := Load(writeConfig(t, `prompt: 12345`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadInvalidAllowedToolsType(t *testing.T) {
	_, err := Load(writeConfig(t, `
prompt: "Test prompt"
allowed_tools: "not an array"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeConfig(t, ""))
	require.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
}
