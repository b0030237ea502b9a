package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/asof"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ asof.SessionService = (*SessionService)(nil)

// SessionService implements asof.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession creates a new session with an empty transcript.
func (s *SessionService) CreateSession(ctx context.Context, session *asof.Session) error {
	session.ID = uuid.New().String()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.Transcript = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, updated_at)
		VALUES (?, ?, ?)
	`, session.ID, formatTime(session.CreatedAt), formatTime(session.UpdatedAt))

	return err
}

// FindSessionByID retrieves a session and its transcript in chronological order.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*asof.Session, error) {
	var session asof.Session
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&session.ID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, asof.Errorf(asof.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	if session.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if session.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content
		FROM messages
		WHERE session_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var msg asof.ChatMessage
		var role string
		if err := rows.Scan(&role, &msg.Content); err != nil {
			return nil, err
		}
		msg.Role = asof.Role(role)
		session.Transcript = append(session.Transcript, msg)
	}

	return &session, rows.Err()
}

// AppendExchange appends the user message and the assistant reply in a
// single transaction.
func (s *SessionService) AppendExchange(ctx context.Context, id, query, reply string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	res, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return asof.Errorf(asof.ENOTFOUND, "session not found")
	}

	var next int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position) + 1, 0) FROM messages WHERE session_id = ?
	`, id).Scan(&next); err != nil {
		return err
	}

	for i, msg := range []asof.ChatMessage{
		{Role: asof.RoleUser, Content: query},
		{Role: asof.RoleAssistant, Content: reply},
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO messages (session_id, position, role, content, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, id, next+i, string(msg.Role), msg.Content, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ClearTranscript removes all messages of a session.
func (s *SessionService) ClearTranscript(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return asof.Errorf(asof.ENOTFOUND, "session not found")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSession permanently removes a session. Messages are removed by cascade.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return asof.Errorf(asof.ENOTFOUND, "session not found")
	}

	return nil
}
