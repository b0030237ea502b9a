package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/asof"
)

// Ensure LoggingSessionService implements asof.SessionService.
var _ asof.SessionService = (*LoggingSessionService)(nil)

// LoggingSessionService wraps a SessionService with debug logging.
type LoggingSessionService struct {
	next   asof.SessionService
	logger *slog.Logger
}

// NewLoggingSessionService creates a new LoggingSessionService.
func NewLoggingSessionService(next asof.SessionService, logger *slog.Logger) *LoggingSessionService {
	return &LoggingSessionService{next: next, logger: logger}
}

// CreateSession delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) CreateSession(ctx context.Context, session *asof.Session) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create session",
			"id", session.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSession(ctx, session)
}

// FindSessionByID delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) FindSessionByID(ctx context.Context, id string) (session *asof.Session, err error) {
	defer func(begin time.Time) {
		messages := 0
		if session != nil {
			messages = len(session.Transcript)
		}
		s.logger.Debug("find session",
			"id", id,
			"messages", messages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSessionByID(ctx, id)
}

// AppendExchange delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) AppendExchange(ctx context.Context, id, query, reply string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("append exchange",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AppendExchange(ctx, id, query, reply)
}

// ClearTranscript delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) ClearTranscript(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("clear transcript",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ClearTranscript(ctx, id)
}

// DeleteSession delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) DeleteSession(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete session",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSession(ctx, id)
}
