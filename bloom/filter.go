// Package bloom provides URL de-duplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is the false positive rate used when a filter is
// sized for a single search response.
const DefaultFalsePositiveRate = 0.001

// Filter remembers URLs that have already been seen.
// False positives are possible, so a small share of distinct URLs may be
// reported as seen; false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL was possibly added before and adds it.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

