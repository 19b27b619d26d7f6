package judge

import (
	"context"
	"errors"
	"strings"

	"github.com/victorarias/claude-agent-sdk-go/sdk"
	"github.com/victorarias/claude-agent-sdk-go/types"
)

// ClaudeClient runs judgment sessions on the Claude agent SDK.
type ClaudeClient struct{}

// NewClaudeClient returns a Client backed by the Claude agent SDK.
func NewClaudeClient() *ClaudeClient { return &ClaudeClient{} }

// OpenSession starts a conversation scoped to one judgment call.
func (c *ClaudeClient) OpenSession(_ context.Context, opts SessionOptions) (Session, error) {
	return &claudeSession{opts: opts}, nil
}

// claudeSession drives a conversation over sdk.RunQuery. The SDK primitive
// is single-shot, so prior turns are rendered back into each prompt to keep
// corrective feedback in context.
type claudeSession struct {
	opts    SessionOptions
	turns   []turn
	pending string
	sent    bool
}

type turn struct {
	user      string
	assistant string
}

func (s *claudeSession) Send(_ context.Context, text string) error {
	if s.sent {
		return errors.New("judge: send before previous turn was received")
	}
	s.pending = text
	s.sent = true
	return nil
}

func (s *claudeSession) ReceiveTurn(ctx context.Context) (string, error) {
	if !s.sent {
		return "", errors.New("judge: receive without a pending query")
	}

	queryOpts := []types.Option{
		types.WithModel(s.opts.Model),
		types.WithMaxTurns(s.opts.MaxTurns),
		types.WithSystemPrompt(s.opts.SystemPrompt),
	}
	if len(s.opts.AllowedTools) > 0 {
		queryOpts = append(queryOpts, types.WithAllowedTools(s.opts.AllowedTools...))
	}

	messages, err := sdk.RunQuery(ctx, s.renderPrompt(), queryOpts...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, msg := range messages {
		if m, ok := msg.(*types.AssistantMessage); ok {
			b.WriteString(m.Text())
		}
	}
	text := b.String()

	s.turns = append(s.turns, turn{user: s.pending, assistant: text})
	s.pending = ""
	s.sent = false
	return text, nil
}

func (s *claudeSession) Close() error { return nil }

// renderPrompt folds earlier turns into the next prompt so corrective
// messages reference the reply they correct.
func (s *claudeSession) renderPrompt() string {
	if len(s.turns) == 0 {
		return s.pending
	}
	var b strings.Builder
	b.WriteString("# Conversation so far\n\n")
	for _, t := range s.turns {
		b.WriteString("User:\n")
		b.WriteString(t.user)
		b.WriteString("\n\nAssistant:\n")
		b.WriteString(t.assistant)
		b.WriteString("\n\n")
	}
	b.WriteString("# Current instruction\n\n")
	b.WriteString(s.pending)
	return b.String()
}
