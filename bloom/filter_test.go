package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/asof/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	t.Run("first sighting is not seen, second is", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(10, bloom.DefaultFalsePositiveRate)

		assert.False(t, f.Seen("https://example.com/a"))
		assert.True(t, f.Seen("https://example.com/a"))
		assert.False(t, f.Seen("https://example.com/b"))
	})

	t.Run("zero capacity still works", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(0, bloom.DefaultFalsePositiveRate)

		assert.False(t, f.Seen("https://example.com/a"))
		assert.True(t, f.Seen("https://example.com/a"))
	})

	t.Run("distinct URLs within capacity are not seen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(200, bloom.DefaultFalsePositiveRate)
		collisions := 0
		for i := range 200 {
			if f.Seen(fmt.Sprintf("https://example.com/result/%d", i)) {
				collisions++
			}
		}

		assert.LessOrEqual(t, collisions, 2)
	})
}
