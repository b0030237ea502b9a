package mock

import (
	"context"

	"github.com/fwojciec/asof"
)

var _ asof.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of asof.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, maxResults int) ([]asof.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]asof.SearchResult, error) {
	return s.SearchFn(ctx, query, maxResults)
}
