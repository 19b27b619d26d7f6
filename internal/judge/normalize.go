package judge

import "github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hook"

// Defaults applied when the model's output carries no decision. Output
// that cannot be understood as an explicit allow fails closed.
const (
	defaultPermissionDecision = hook.PermissionDeny
	defaultPermissionReason   = "Invalid or missing permission decision from judgment system"
)

// wrapOutputIfNeeded wraps a bare decision object in the hookSpecificOutput
// envelope. If the envelope key is already present the document is returned
// unchanged. Decision fields are carried over as-is so a wrong-typed value
// still fails schema validation instead of being silently replaced.
func wrapOutputIfNeeded(doc map[string]any) map[string]any {
	if _, ok := doc["hookSpecificOutput"]; ok {
		return doc
	}
	specific := map[string]any{
		"hookEventName":            hook.EventName,
		"permissionDecision":       defaultPermissionDecision,
		"permissionDecisionReason": defaultPermissionReason,
	}
	if v, ok := doc["permissionDecision"]; ok {
		specific["permissionDecision"] = v
	}
	if v, ok := doc["permissionDecisionReason"]; ok {
		specific["permissionDecisionReason"] = v
	}
	return map[string]any{"hookSpecificOutput": specific}
}
