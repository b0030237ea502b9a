package asof

import "context"

// MaxSearchResults is the number of results requested from a Searcher for
// a single query.
const MaxSearchResults = 5

// SearchResult is one snippet returned by a web search provider.
type SearchResult struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Searcher performs a text search against an external provider.
type Searcher interface {
	// Search returns at most maxResults results for the query, in the order
	// the provider ranks them.
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// FilterResults drops results without a body and keeps at most max of the
// remaining ones. A non-positive max keeps all of them.
func FilterResults(results []SearchResult, max int) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if r.Body == "" {
			continue
		}
		out = append(out, r)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
