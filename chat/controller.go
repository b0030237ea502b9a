// Package chat provides the session controller that turns user submissions
// into transcript exchanges.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/asof"
)

// Controller drives sessions between the idle and processing states.
// A session is processing while its query is being answered; only one
// submission per session may be in flight.
type Controller struct {
	Answerer asof.Answerer
	Sessions asof.SessionService

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewController creates a new Controller.
func NewController(answerer asof.Answerer, sessions asof.SessionService) *Controller {
	return &Controller{
		Answerer: answerer,
		Sessions: sessions,
		inflight: make(map[string]struct{}),
	}
}

// Start creates a new session with an empty transcript.
func (c *Controller) Start(ctx context.Context) (*asof.Session, error) {
	session := &asof.Session{}
	if err := c.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit answers input and appends the user message and the reply to the
// session's transcript, in that order.
// Returns EINVALID for blank input and ECONFLICT if the session is already
// processing a submission. The transcript is unchanged on error.
func (c *Controller) Submit(ctx context.Context, sessionID, input string, searchEnabled bool) (*asof.Answer, error) {
	if strings.TrimSpace(input) == "" {
		return nil, asof.Errorf(asof.EINVALID, "message required")
	}
	if _, err := c.Sessions.FindSessionByID(ctx, sessionID); err != nil {
		return nil, err
	}

	if !c.begin(sessionID) {
		return nil, asof.Errorf(asof.ECONFLICT, "a message is already being answered")
	}
	defer c.end(sessionID)

	ans, err := c.Answerer.Answer(ctx, input, searchEnabled)
	if err != nil {
		return nil, err
	}
	if err := c.Sessions.AppendExchange(ctx, sessionID, input, ans.Text); err != nil {
		return nil, err
	}
	return ans, nil
}

// Clear empties the session's transcript.
func (c *Controller) Clear(ctx context.Context, sessionID string) error {
	return c.Sessions.ClearTranscript(ctx, sessionID)
}

// End deletes the session.
func (c *Controller) End(ctx context.Context, sessionID string) error {
	return c.Sessions.DeleteSession(ctx, sessionID)
}

// Transcript returns the session's transcript in chronological order.
func (c *Controller) Transcript(ctx context.Context, sessionID string) (asof.Transcript, error) {
	session, err := c.Sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript, nil
}

// Processing reports whether the session has a submission in flight.
func (c *Controller) Processing(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[sessionID]
	return ok
}

func (c *Controller) begin(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight == nil {
		c.inflight = make(map[string]struct{})
	}
	if _, ok := c.inflight[sessionID]; ok {
		return false
	}
	c.inflight[sessionID] = struct{}{}
	return true
}

func (c *Controller) end(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, sessionID)
}
