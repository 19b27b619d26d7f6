// Package judge asks a Claude-backed judgment service whether a proposed
// tool invocation should be allowed, denied, or escalated to the user.
//
// Model output is prose-adjacent text, not a protocol, so each reply goes
// through layered checks (format, JSON parse, schema) and failures are fed
// back into the same conversation as corrective instructions until the
// attempt budget runs out.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/config"
	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hook"
	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hookschema"
)

const (
	// MaxRetryAttempts bounds the total number of tries (not retries after
	// the first) to obtain a valid decision. The budget is shared across
	// all failure kinds.
	MaxRetryAttempts = 3

	// DefaultModel is used when neither the configuration nor the
	// environment selects one.
	DefaultModel = "claude-opus-4-5-20251101"

	modelEnvVar = "CC_HOOK_JUDGE_MODEL"
)

const systemPromptFormat = `You are a PreToolUse hook validator for Claude Code.

Your task is to validate tool usage and return a decision.

# Input JSON Schema
%s

# Output JSON Schema
%s

# Validation Rules
%s

IMPORTANT: Return ONLY raw JSON. Do NOT wrap it in markdown code blocks (` + "```" + `json or ` + "```" + `).

Return ONLY a valid JSON matching the output schema, with:
- permissionDecision: "allow", "deny", or "ask"
- permissionDecisionReason: A brief explanation

Output JSON only, no other text, no code blocks, no formatting.`

// Judge drives the judgment conversation for one tool-use request and
// returns the validated decision document. On failure it returns a typed
// *Error; synthesizing the deny response is the caller's job.
//
// The session is opened once and closed on every exit path. Cancelling ctx
// aborts the pending turn and closes the session.
func Judge(ctx context.Context, client Client, cfg *config.Config, req *hook.Request) (map[string]any, error) {
	session, err := client.OpenSession(ctx, SessionOptions{
		SystemPrompt: buildSystemPrompt(cfg),
		MaxTurns:     MaxRetryAttempts,
		Model:        resolveModel(cfg),
		AllowedTools: cfg.AllowedTools,
	})
	if err != nil {
		return nil, fmt.Errorf("open judgment session: %w", err)
	}
	defer session.Close()

	// outbound threads the next message between iterations: first the
	// tool-usage prompt, then whichever corrective the last failure built.
	outbound := buildUserPrompt(req)
	var lastErr *Error
	for attempt := 1; attempt <= MaxRetryAttempts; attempt++ {
		if err := session.Send(ctx, outbound); err != nil {
			return nil, fmt.Errorf("send judgment query: %w", err)
		}
		text, err := session.ReceiveTurn(ctx)
		if err != nil {
			return nil, fmt.Errorf("receive judgment turn: %w", err)
		}

		doc, jerr := evaluateResponse(text)
		if jerr == nil {
			return doc, nil
		}
		lastErr = jerr
		outbound = jerr.Corrective()
	}
	return nil, lastErr
}

// evaluateResponse runs the layered checks on one assistant turn: empty
// check, format check, JSON parse, envelope normalization, output schema.
func evaluateResponse(text string) (map[string]any, *Error) {
	if text == "" {
		return nil, &Error{Kind: KindNoResponse}
	}
	if ferr := checkResponseFormat(text); ferr != nil {
		return nil, ferr
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &Error{Kind: KindInvalidJSON, Detail: err.Error()}
	}
	doc = wrapOutputIfNeeded(doc)
	if err := hookschema.ValidateOutput(doc); err != nil {
		return nil, &Error{Kind: KindSchemaValidation, Detail: err.Error()}
	}
	return doc, nil
}

// buildSystemPrompt composes the base validator instructions, the input
// and output schemas, and the configured validation rules. The allowed-tool
// restriction is enforced at the session level, not in the prompt.
func buildSystemPrompt(cfg *config.Config) string {
	return fmt.Sprintf(systemPromptFormat,
		hookschema.InputSchemaJSON,
		hookschema.OutputSchemaJSON,
		strings.TrimSpace(cfg.Prompt),
	)
}

// buildUserPrompt summarizes the tool call under judgment.
func buildUserPrompt(req *hook.Request) string {
	inputJSON, err := json.MarshalIndent(req.ToolInput, "", "  ")
	if err != nil {
		inputJSON = []byte("{}")
	}
	return fmt.Sprintf("# Current Tool Usage\nTool: %s\nInput: %s", req.ToolName, inputJSON)
}

// resolveModel picks the judgment model: config first, then the environment,
// then the default. The environment value is subject to the same allow-list
// the config schema enforces; unknown names fall through to the default.
func resolveModel(cfg *config.Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	if model := os.Getenv(modelEnvVar); model != "" {
		if hookschema.AllowedModel(model) {
			return model
		}
		slog.Warn("ignoring unknown model from environment", "env", modelEnvVar, "model", model)
	}
	return DefaultModel
}
