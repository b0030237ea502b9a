package asof_test

import (
	"testing"

	"github.com/fwojciec/asof"
	"github.com/stretchr/testify/assert"
)

func TestFilterResults(t *testing.T) {
	t.Parallel()

	t.Run("drops results without a body", func(t *testing.T) {
		t.Parallel()

		results := []asof.SearchResult{
			{Title: "a", Body: "one"},
			{Title: "b"},
			{Title: "c", Body: "three"},
		}

		got := asof.FilterResults(results, 5)

		assert.Equal(t, []asof.SearchResult{
			{Title: "a", Body: "one"},
			{Title: "c", Body: "three"},
		}, got)
	})

	t.Run("keeps at most max results", func(t *testing.T) {
		t.Parallel()

		results := make([]asof.SearchResult, 8)
		for i := range results {
			results[i] = asof.SearchResult{Body: "body"}
		}

		assert.Len(t, asof.FilterResults(results, asof.MaxSearchResults), 5)
	})

	t.Run("returns empty non-nil slice for no input", func(t *testing.T) {
		t.Parallel()

		got := asof.FilterResults(nil, 5)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
