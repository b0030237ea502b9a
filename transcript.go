package asof

import (
	"context"
	"time"
)

// Transcript is the chronological chat history of a session. Messages are
// only ever appended in user/assistant pairs, or removed all at once.
type Transcript []ChatMessage

// Exchange is a user message paired with the assistant's reply.
type Exchange struct {
	User      ChatMessage `json:"user"`
	Assistant ChatMessage `json:"assistant"`
}

// Exchanges returns the transcript as user/assistant pairs, most recent
// first. A trailing unpaired message is ignored.
func (t Transcript) Exchanges() []Exchange {
	n := len(t) / 2
	out := make([]Exchange, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Exchange{User: t[2*i], Assistant: t[2*i+1]})
	}
	return out
}

// Session is the state of one user's conversation.
type Session struct {
	ID         string     `json:"id"`
	Transcript Transcript `json:"transcript"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// SessionService represents a service for managing sessions.
type SessionService interface {
	// CreateSession creates a new session with an empty transcript and
	// assigns its ID.
	CreateSession(ctx context.Context, session *Session) error

	// FindSessionByID retrieves a session with its transcript.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// AppendExchange appends the user message and then the assistant reply
	// to the session's transcript. Both are stored or neither is.
	// Returns ENOTFOUND if the session does not exist.
	AppendExchange(ctx context.Context, id string, query, reply string) error

	// ClearTranscript removes every message from the session's transcript.
	// Returns ENOTFOUND if the session does not exist.
	ClearTranscript(ctx context.Context, id string) error

	// DeleteSession permanently removes a session and its transcript.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}
