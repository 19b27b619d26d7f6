// Package decisionlog appends judgment outcomes to a log file under the
// user's config directory. Logging is best effort: the hook must never
// fail because the log could not be written.
package decisionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const maxInputLen = 200

// Append records one judgment outcome. source distinguishes decisions made
// by the judgment model ("judge") from ones synthesized on error ("error").
func Append(toolName, toolInput, decision, source, reason string) {
	AppendTo(defaultLogPath(), toolName, toolInput, decision, source, reason)
}

// AppendTo is Append with an explicit log path, for tests.
func AppendTo(logPath, toolName, toolInput, decision, source, reason string) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	if len(toolInput) > maxInputLen {
		toolInput = toolInput[:maxInputLen] + "..."
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] %s | tool=%s | source=%s | input=%s | reason=%s\n",
		timestamp, decision, toolName, source, toolInput, reason)
}

func defaultLogPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "cc-pre-tool-use-hook-judge", "decisions.log")
}
