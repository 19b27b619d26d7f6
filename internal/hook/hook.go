// Package hook holds the typed PreToolUse request and decision envelope
// plus the stdin/stdout codec used at the CLI boundary.
package hook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hookschema"
)

// EventName is the hook event this judge handles.
const EventName = "PreToolUse"

// Permission decision values.
const (
	PermissionAllow = "allow"
	PermissionDeny  = "deny"
	PermissionAsk   = "ask"
)

// Request matches Claude Code's PreToolUse hook input. Fields not listed
// here are permitted in the document and ignored.
type Request struct {
	SessionID      string         `json:"session_id"`
	TranscriptPath string         `json:"transcript_path"`
	Cwd            string         `json:"cwd"`
	PermissionMode string         `json:"permission_mode"`
	HookEventName  string         `json:"hook_event_name"`
	ToolName       string         `json:"tool_name"`
	ToolInput      map[string]any `json:"tool_input"`
}

// Output is the decision document written to stdout.
type Output struct {
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput"`
	Continue           *bool          `json:"continue,omitempty"`
	StopReason         string         `json:"stopReason,omitempty"`
	SuppressOutput     *bool          `json:"suppressOutput,omitempty"`
	SystemMessage      string         `json:"systemMessage,omitempty"`
}

// SpecificOutput is the PreToolUse decision envelope. The hook protocol
// rejects unknown fields inside it.
type SpecificOutput struct {
	HookEventName            string         `json:"hookEventName"`
	PermissionDecision       string         `json:"permissionDecision"`
	PermissionDecisionReason string         `json:"permissionDecisionReason"`
	UpdatedInput             map[string]any `json:"updatedInput,omitempty"`
}

// DenyOutput builds a deny decision with the given reason. Used for every
// failure path so the calling agent always receives a parseable decision.
func DenyOutput(reason string) Output {
	return Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName:            EventName,
			PermissionDecision:       PermissionDeny,
			PermissionDecisionReason: reason,
		},
	}
}

// ReadRequest reads the entire input document from r, validates it against
// the input schema, and decodes it into a Request.
func ReadRequest(r io.Reader) (*Request, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read hook input: %w", err)
	}
	if _, err := hookschema.ValidateInput(raw); err != nil {
		return nil, err
	}
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		// Not reachable once schema validation has passed.
		return nil, hookschema.NewValidationError("decode hook input: %v", err)
	}
	return &req, nil
}

// WriteJSON writes doc to w as pretty-printed UTF-8 JSON. Non-ASCII text
// (the deny reasons are Japanese) is emitted as-is, not escaped.
func WriteJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
