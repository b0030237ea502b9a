package mock

import (
	"context"

	"github.com/fwojciec/asof"
)

var _ asof.Completer = (*Completer)(nil)

// Completer is a mock implementation of asof.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, messages []asof.ChatMessage) (string, error)
}

func (c *Completer) Complete(ctx context.Context, messages []asof.ChatMessage) (string, error) {
	return c.CompleteFn(ctx, messages)
}
