// cc-pre-tool-use-hook-judge reads a PreToolUse hook input document on
// stdin, asks a Claude-backed judgment service for a decision, and prints
// the decision document on stdout.
//
// The process always exits 0 and always writes a well-formed decision:
// every failure is converted into a deny with an explanatory reason, so
// the calling agent never sees a crash or a malformed payload.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/config"
	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/decisionlog"
	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hook"
	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/hookschema"
	"github.com/syou6162/cc-pre-tool-use-hook-judge/internal/judge"
)

const builtinConfigName = "validate_bq_query"

// User-facing deny reasons. Kept in Japanese per the hook's audience; the
// output encoder preserves non-ASCII text.
const (
	reasonInvalidJSON = "判定システムが正しいJSON形式で応答できませんでした。安全のため操作を拒否します。"
	reasonNoResponse  = "判定システムから応答がありませんでした。安全のため操作を拒否します。"
	reasonSchema      = "判定システムが正しいスキーマ形式で応答できませんでした。安全のため操作を拒否します。"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cmd := newRootCmd(os.Stdin, os.Stdout, judge.NewClaudeClient())
	if err := cmd.Execute(); err != nil {
		// Even a flag-parsing failure must yield a parseable decision.
		writeOutput(os.Stdout, hook.DenyOutput(fmt.Sprintf("予期しないエラーが発生しました: %v", err)))
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer, client judge.Client) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "cc-pre-tool-use-hook-judge",
		Short:         "PreToolUse hook validator for Claude Code",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run(cmd.Context(), stdin, stdout, configPath, client)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to an external YAML configuration file")
	return cmd
}

// run executes one judgment and writes exactly one decision document.
// Error mapping is total: typed judgment errors, config errors, input
// validation errors, and anything else (including panics) each become a
// deny with their own reason.
func run(ctx context.Context, stdin io.Reader, stdout io.Writer, configPath string, client judge.Client) {
	var req *hook.Request

	defer func() {
		if r := recover(); r != nil {
			slog.Error("judgment panicked", "panic", r)
			writeDeny(stdout, req, fmt.Sprintf("予期しないエラーが発生しました: %v", r))
		}
	}()

	cfg, err := loadConfig(configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		writeDeny(stdout, req, denyReason(err))
		return
	}

	req, err = hook.ReadRequest(stdin)
	if err != nil {
		slog.Error("input validation failed", "error", err)
		writeDeny(stdout, req, denyReason(err))
		return
	}

	doc, err := judge.Judge(ctx, client, cfg, req)
	if err != nil {
		slog.Error("judgment failed", "tool", req.ToolName, "error", err)
		writeDeny(stdout, req, denyReason(err))
		return
	}

	decision, reason := decisionFields(doc)
	decisionlog.Append(req.ToolName, toolInputJSON(req), decision, "judge", reason)
	writeOutput(stdout, doc)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadBuiltin(builtinConfigName)
}

// denyReason maps every failure to its user-facing deny reason.
func denyReason(err error) string {
	var jerr *judge.Error
	if errors.As(err, &jerr) {
		switch jerr.Kind {
		case judge.KindNoResponse:
			return reasonNoResponse
		case judge.KindSchemaValidation:
			return reasonSchema
		default:
			// Parse failures and terminal format violations all mean the
			// model never produced usable JSON.
			return reasonInvalidJSON
		}
	}
	var cerr *config.Error
	if errors.As(err, &cerr) {
		return fmt.Sprintf("設定ファイル読み込みエラー: %v", cerr)
	}
	var verr *hookschema.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("入力検証エラー: %v", verr)
	}
	return fmt.Sprintf("予期しないエラーが発生しました: %v", err)
}

func writeDeny(stdout io.Writer, req *hook.Request, reason string) {
	toolName := "(error)"
	toolInput := ""
	if req != nil {
		toolName = req.ToolName
		toolInput = toolInputJSON(req)
	}
	decisionlog.Append(toolName, toolInput, hook.PermissionDeny, "error", reason)
	writeOutput(stdout, hook.DenyOutput(reason))
}

func writeOutput(stdout io.Writer, doc any) {
	if err := hook.WriteJSON(stdout, doc); err != nil {
		slog.Error("write decision failed", "error", err)
	}
}

// decisionFields pulls the decision and reason out of a validated
// decision document for logging.
func decisionFields(doc map[string]any) (decision, reason string) {
	specific, _ := doc["hookSpecificOutput"].(map[string]any)
	decision, _ = specific["permissionDecision"].(string)
	reason, _ = specific["permissionDecisionReason"].(string)
	return decision, reason
}

func toolInputJSON(req *hook.Request) string {
	raw, err := json.Marshal(req.ToolInput)
	if err != nil {
		return ""
	}
	return string(raw)
}
