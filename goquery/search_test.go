package goquery_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/goquery"
	"github.com/fwojciec/asof/htmltomarkdown"
	"github.com/fwojciec/asof/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="results">
  <div class="result results_links result--ad">
    <a class="result__a" href="https://ads.example.com/buy">Sponsored</a>
    <a class="result__snippet">Buy now in 2025.</a>
  </div>
  <div class="result results_links">
    <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fparis&amp;rut=abc">Paris - Wikipedia</a></h2>
    <a class="result__snippet">The capital of France is <b>Paris</b>, as of 2024.</a>
  </div>
  <div class="result results_links">
    <h2><a class="result__a" href="https://example.org/france">France facts</a></h2>
    <a class="result__snippet">Population figures updated in 2023.</a>
  </div>
  <div class="result results_links">
    <h2><a class="result__a" href="https://example.net/empty">No snippet</a></h2>
  </div>
</div>
</body></html>`

func passthrough() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return html, nil
		},
	}
}

func allowAll() *mock.DomainLimiter {
	return &mock.DomainLimiter{
		WaitFn: func(_ context.Context, _ string) error { return nil },
	}
}

func staticFetcher(body string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return body, nil
		},
	}
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("parses results in page order and skips ads", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSearcher(staticFetcher(resultsPage), allowAll(), htmltomarkdown.NewConverter())

		results, err := s.Search(context.Background(), "capital of France", 5)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, asof.SearchResult{
			Title: "Paris - Wikipedia",
			Body:  "The capital of France is **Paris**, as of 2024.",
			URL:   "https://example.com/paris",
		}, results[0])
		assert.Equal(t, "https://example.org/france", results[1].URL)
		assert.Equal(t, "Population figures updated in 2023.", results[1].Body)
		assert.Equal(t, "No snippet", results[2].Title)
		assert.Empty(t, results[2].Body)
	})

	t.Run("builds query URL and waits on endpoint host", func(t *testing.T) {
		t.Parallel()

		var fetched, waited string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				fetched = u
				return "<html></html>", nil
			},
		}
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				waited = domain
				return nil
			},
		}
		s := goquery.NewSearcher(fetcher, limiter, passthrough())

		results, err := s.Search(context.Background(), "who won in 2024?", 5)

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
		assert.Equal(t, "html.duckduckgo.com", waited)
		u, err := url.Parse(fetched)
		require.NoError(t, err)
		assert.Equal(t, "/html/", u.Path)
		assert.Equal(t, "who won in 2024?", u.Query().Get("q"))
	})

	t.Run("respects maxResults", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSearcher(staticFetcher(resultsPage), allowAll(), passthrough())

		results, err := s.Search(context.Background(), "q", 1)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "https://example.com/paris", results[0].URL)
	})

	t.Run("drops duplicate URLs and bodies", func(t *testing.T) {
		t.Parallel()

		page := `<div class="result"><a class="result__a" href="https://a.example/x">A</a><a class="result__snippet">same text</a></div>
<div class="result"><a class="result__a" href="https://a.example/x">A again</a><a class="result__snippet">other text</a></div>
<div class="result"><a class="result__a" href="https://b.example/y">B</a><a class="result__snippet">same text</a></div>
<div class="result"><a class="result__a" href="https://c.example/z">C</a><a class="result__snippet">third text</a></div>`
		s := goquery.NewSearcher(staticFetcher(page), allowAll(), passthrough())

		results, err := s.Search(context.Background(), "q", 0)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "https://a.example/x", results[0].URL)
		assert.Equal(t, "https://c.example/z", results[1].URL)
	})

	t.Run("returns every distinct result on a long page", func(t *testing.T) {
		t.Parallel()

		var page strings.Builder
		for i := range 150 {
			fmt.Fprintf(&page, `<div class="result"><a class="result__a" href="https://example.com/r/%d">R%d</a><a class="result__snippet">text %d</a></div>`+"\n", i, i, i)
		}
		s := goquery.NewSearcher(staticFetcher(page.String()), allowAll(), passthrough())

		results, err := s.Search(context.Background(), "q", 0)

		require.NoError(t, err)
		assert.Len(t, results, 150)
	})

	t.Run("keeps distinct URLs after many skipped results", func(t *testing.T) {
		t.Parallel()

		var page strings.Builder
		for i := range 120 {
			fmt.Fprintf(&page, `<div class="result"><a class="result__a" href="https://dup.example/%d">D</a><a class="result__snippet">repeated</a></div>`+"\n", i)
		}
		for _, host := range []string{"a", "b", "c"} {
			fmt.Fprintf(&page, `<div class="result"><a class="result__a" href="https://%s.example/">%s</a><a class="result__snippet">about %s</a></div>`+"\n", host, host, host)
		}
		s := goquery.NewSearcher(staticFetcher(page.String()), allowAll(), passthrough())

		results, err := s.Search(context.Background(), "q", 4)

		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, "https://dup.example/0", results[0].URL)
		assert.Equal(t, "https://a.example/", results[1].URL)
		assert.Equal(t, "https://b.example/", results[2].URL)
		assert.Equal(t, "https://c.example/", results[3].URL)
	})

	t.Run("falls back to element text when conversion fails", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "", errors.New("boom")
			},
		}
		s := goquery.NewSearcher(staticFetcher(resultsPage), allowAll(), conv)

		results, err := s.Search(context.Background(), "q", 5)

		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "The capital of France is Paris, as of 2024.", results[0].Body)
	})

	t.Run("returns fetch error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("HTTP 202 for https://html.duckduckgo.com/html/")
			},
		}
		s := goquery.NewSearcher(fetcher, allowAll(), passthrough())

		_, err := s.Search(context.Background(), "q", 5)

		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "202"))
	})

	t.Run("returns limiter error without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				t.Fatal("fetch should not be called")
				return "", nil
			},
		}
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, _ string) error {
				return ctx.Err()
			},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := goquery.NewSearcher(fetcher, limiter, passthrough())

		_, err := s.Search(ctx, "q", 5)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("uses custom endpoint", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				fetched = u
				return "", nil
			},
		}
		s := &goquery.Searcher{Fetcher: fetcher, Converter: passthrough(), Endpoint: "http://127.0.0.1:9000/search"}

		_, err := s.Search(context.Background(), "go", 5)

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:9000/search?q=go", fetched)
	})
}
