package hook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hookschema"
)

const sampleInput = `{
	"session_id": "test-session",
	"transcript_path": "/tmp/session.jsonl",
	"cwd": "/Users/test/projects/myapp",
	"permission_mode": "default",
	"hook_event_name": "PreToolUse",
	"tool_name": "Write",
	"tool_input": {
		"file_path": "/Users/test/projects/myapp/src/index.ts",
		"content": "console.log('hello')"
	},
	"unknown_future_field": 42
}`

func TestReadRequest(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(sampleInput))
	require.NoError(t, err)

	assert.Equal(t, "test-session", req.SessionID)
	assert.Equal(t, "PreToolUse", req.HookEventName)
	assert.Equal(t, "Write", req.ToolName)
	assert.Equal(t, "/Users/test/projects/myapp", req.Cwd)
	assert.Equal(t, "console.log('hello')", req.ToolInput["content"])
}

func TestReadRequestMissingFieldNamesField(t *testing.T) {
	input := `{"tool_name": "Write", "tool_input": {}}`

	_, err := ReadRequest(strings.NewReader(input))
	require.Error(t, err)
	var verr *hookschema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "session_id")
}

func TestReadRequestGarbage(t *testing.T) {
	_, err := ReadRequest(strings.NewReader("not a json"))
	var verr *hookschema.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDenyOutputRoundTrip(t *testing.T) {
	out := DenyOutput("危険な操作のため拒否します")

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NoError(t, hookschema.ValidateOutput(doc))
}

func TestWriteJSONPreservesNonASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, DenyOutput("判定できませんでした")))

	got := buf.String()
	assert.Contains(t, got, "判定できませんでした")
	assert.NotContains(t, got, `\u`)
	assert.True(t, strings.HasSuffix(got, "\n"))
	// Pretty-printed with two-space indent.
	assert.Contains(t, got, "\n  \"hookSpecificOutput\": {")
}

func TestWriteJSONOmitsEmptyOptionalFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, DenyOutput("no")))

	got := buf.String()
	assert.NotContains(t, got, "continue")
	assert.NotContains(t, got, "stopReason")
	assert.NotContains(t, got, "updatedInput")
}
