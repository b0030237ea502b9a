package mock

import (
	"context"

	"github.com/fwojciec/asof"
)

var _ asof.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of asof.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, query string, searchEnabled bool) (*asof.Answer, error)
}

func (a *Answerer) Answer(ctx context.Context, query string, searchEnabled bool) (*asof.Answer, error) {
	return a.AnswerFn(ctx, query, searchEnabled)
}
