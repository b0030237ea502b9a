package mock

import (
	"context"

	"github.com/fwojciec/asof"
)

var _ asof.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of asof.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *asof.Session) error
	FindSessionByIDFn func(ctx context.Context, id string) (*asof.Session, error)
	AppendExchangeFn  func(ctx context.Context, id, query, reply string) error
	ClearTranscriptFn func(ctx context.Context, id string) error
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionService) CreateSession(ctx context.Context, session *asof.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*asof.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) AppendExchange(ctx context.Context, id, query, reply string) error {
	return s.AppendExchangeFn(ctx, id, query, reply)
}

func (s *SessionService) ClearTranscript(ctx context.Context, id string) error {
	return s.ClearTranscriptFn(ctx, id)
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}
