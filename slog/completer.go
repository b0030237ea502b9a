package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/asof"
)

// Ensure LoggingCompleter implements asof.Completer.
var _ asof.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Message contents are not
// logged, only their sizes.
type LoggingCompleter struct {
	next   asof.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next asof.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, messages []asof.ChatMessage) (reply string, err error) {
	defer func(begin time.Time) {
		promptChars := 0
		for _, m := range messages {
			promptChars += len(m.Content)
		}
		c.logger.Info("completion",
			"messages", len(messages),
			"prompt_chars", promptChars,
			"reply_chars", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, messages)
}
