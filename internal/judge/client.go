package judge

import "context"

// SessionOptions configure one conversational judgment session.
type SessionOptions struct {
	SystemPrompt string
	// MaxTurns is a hint bounding how many internal turns the model may
	// take to produce each reply.
	MaxTurns int
	Model    string
	// AllowedTools restricts which tools the judgment model itself may
	// invoke while deliberating. Empty means no restriction.
	AllowedTools []string
}

// Session is a single conversation with the judgment model. Turns are
// strictly sequential: every Send must complete and the matching
// ReceiveTurn must return before the next Send.
type Session interface {
	// Send queues the next user or corrective message.
	Send(ctx context.Context, text string) error
	// ReceiveTurn blocks until the assistant's turn is complete and
	// returns all of its text blocks concatenated.
	ReceiveTurn(ctx context.Context) (string, error)
	// Close releases the session. Safe to call after any outcome.
	Close() error
}

// Client opens judgment sessions. The production implementation is
// ClaudeClient; tests script their own.
type Client interface {
	OpenSession(ctx context.Context, opts SessionOptions) (Session, error)
}
