// Package goquery implements web search by parsing DuckDuckGo's HTML
// results page with goquery.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/bloom"
)

// DefaultEndpoint is DuckDuckGo's JavaScript-free results page.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

var _ asof.Searcher = (*Searcher)(nil)

// Searcher queries a DuckDuckGo-compatible HTML endpoint.
type Searcher struct {
	Fetcher   asof.Fetcher
	Limiter   asof.DomainLimiter
	Converter asof.Converter

	// Endpoint overrides DefaultEndpoint.
	Endpoint string
}

// NewSearcher creates a Searcher for DefaultEndpoint.
func NewSearcher(fetcher asof.Fetcher, limiter asof.DomainLimiter, converter asof.Converter) *Searcher {
	return &Searcher{
		Fetcher:   fetcher,
		Limiter:   limiter,
		Converter: converter,
		Endpoint:  DefaultEndpoint,
	}
}

// Search fetches the results page for query and returns at most maxResults
// results in page order. A non-positive maxResults means no limit.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]asof.SearchResult, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, asof.Errorf(asof.EINVALID, "invalid search endpoint: %v", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	body, err := s.Fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	return s.parse(body, maxResults)
}

func (s *Searcher) parse(body string, maxResults int) ([]asof.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, asof.Errorf(asof.EINTERNAL, "parse search results: %v", err)
	}

	nodes := doc.Find(".result")
	urls := bloom.NewFilter(uint(nodes.Length()), bloom.DefaultFalsePositiveRate)
	bodies := make(map[uint64]struct{})

	results := []asof.SearchResult{}
	nodes.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if maxResults > 0 && len(results) >= maxResults {
			return false
		}
		if sel.HasClass("result--ad") {
			return true
		}

		link := sel.Find(".result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		resultURL := resolveRedirect(href)
		if resultURL == "" || urls.Seen(resultURL) {
			return true
		}

		text := s.snippet(sel.Find(".result__snippet").First())
		if text != "" {
			sum := xxhash.Sum64String(text)
			if _, dup := bodies[sum]; dup {
				return true
			}
			bodies[sum] = struct{}{}
		}

		results = append(results, asof.SearchResult{
			Title: strings.TrimSpace(link.Text()),
			Body:  text,
			URL:   resultURL,
		})
		return true
	})

	return results, nil
}

func (s *Searcher) snippet(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	fallback := strings.Join(strings.Fields(sel.Text()), " ")
	if s.Converter == nil {
		return fallback
	}
	html, err := sel.Html()
	if err != nil {
		return fallback
	}
	md, err := s.Converter.Convert(html)
	if err != nil || md == "" {
		return fallback
	}
	return md
}

// resolveRedirect unwraps DuckDuckGo's //duckduckgo.com/l/?uddg=<target>
// links. Other links are returned as absolute URLs unchanged.
func resolveRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" && strings.HasPrefix(u.Path, "/l/") {
		return target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
