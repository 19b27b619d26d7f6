package judge

import (
	"strings"
	"unicode/utf8"
)

// leadingEchoLimit bounds how much offending prefix text is echoed back in
// a corrective message.
const leadingEchoLimit = 50

// checkResponseFormat inspects raw model output for common formatting
// violations before JSON parsing, so the corrective feedback can be more
// specific than a parser error. Checks run in precedence order: code
// fence, then prefix, then suffix; the first match wins.
//
// Empty or whitespace-only text passes. That case is deliberately left to
// the JSON parsing stage, which reports it with a more appropriate error.
func checkResponseFormat(text string) *Error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if strings.Contains(trimmed, "```") {
		return &Error{Kind: KindCodeFence}
	}
	if !strings.HasPrefix(trimmed, "{") {
		return &Error{Kind: KindInvalidPrefix, Leading: truncateRunes(trimmed, leadingEchoLimit)}
	}
	if i := strings.LastIndex(trimmed, "}"); i >= 0 {
		if trailing := strings.TrimSpace(trimmed[i+1:]); trailing != "" {
			return &Error{Kind: KindInvalidSuffix, Trailing: trailing}
		}
	}
	return nil
}

// truncateRunes cuts s to at most limit bytes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
