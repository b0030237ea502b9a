package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/asof"
)

// Ensure LoggingSearcher implements asof.Searcher.
var _ asof.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   asof.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next asof.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, maxResults int) (results []asof.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("web search",
			"query", query,
			"max", maxResults,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, maxResults)
}
