// Package answer provides the answer pipeline. It coordinates web search,
// temporal analysis, prompt composition, and completion for a single query.
package answer

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/asof"
)

var _ asof.Answerer = (*Pipeline)(nil)

// Pipeline answers queries either directly or augmented with web search
// results. It holds no per-query state and is safe for concurrent use.
type Pipeline struct {
	Searcher  asof.Searcher
	Completer asof.Completer

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Timeout bounds each call to the searcher and the completer.
	// Zero means no bound beyond the caller's context.
	Timeout time.Duration
}

// Answer answers the query, searching first when searchEnabled is set.
func (p *Pipeline) Answer(ctx context.Context, query string, searchEnabled bool) (*asof.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, asof.Errorf(asof.EINVALID, "query required")
	}
	if searchEnabled {
		return p.SearchResponse(ctx, query), nil
	}
	return p.DirectResponse(ctx, query), nil
}

// SearchResponse answers the query from web search results. When the search
// yields nothing the model is not called.
func (p *Pipeline) SearchResponse(ctx context.Context, query string) *asof.Answer {
	ans := &asof.Answer{Query: query, Mode: asof.ModeSearch}

	results, notice := p.Search(ctx, query)
	if len(results) == 0 {
		ans.Text = asof.NoResultsReply
		ans.Status = asof.StatusNoResults
		if notice != "" {
			ans.Status = asof.StatusSearchFailed
			ans.Notice = notice
		}
		return ans
	}
	ans.Sources = results

	analysis := asof.Analyze(results, query, p.now())
	reply, err := p.complete(ctx, []asof.ChatMessage{
		{Role: asof.RoleSystem, Content: asof.SearchSystemPrompt(analysis.CurrentYear)},
		{Role: asof.RoleUser, Content: asof.ComposePrompt(analysis)},
	})
	if err != nil {
		ans.Text = asof.Apology(err)
		ans.Status = asof.StatusCompletionFailed
		return ans
	}

	ans.Text = asof.AnchorYear(reply, analysis.CurrentYear)
	ans.Status = asof.StatusOK
	return ans
}

// DirectResponse sends the query to the model unmodified.
func (p *Pipeline) DirectResponse(ctx context.Context, query string) *asof.Answer {
	ans := &asof.Answer{Query: query, Mode: asof.ModeDirect}

	reply, err := p.complete(ctx, []asof.ChatMessage{
		{Role: asof.RoleSystem, Content: asof.DirectSystemPrompt},
		{Role: asof.RoleUser, Content: query},
	})
	if err != nil {
		ans.Text = asof.Apology(err)
		ans.Status = asof.StatusCompletionFailed
		return ans
	}

	ans.Text = reply
	ans.Status = asof.StatusOK
	return ans
}

// Search returns up to asof.MaxSearchResults results that have a body.
// A provider failure yields no results and a notice describing it; an
// empty result with an empty notice means the provider found nothing.
func (p *Pipeline) Search(ctx context.Context, query string) ([]asof.SearchResult, string) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	results, err := p.Searcher.Search(ctx, query, asof.MaxSearchResults)
	if err != nil {
		return []asof.SearchResult{}, "Error searching internet: " + asof.ErrorMessage(err)
	}
	return asof.FilterResults(results, asof.MaxSearchResults), ""
}

func (p *Pipeline) complete(ctx context.Context, messages []asof.ChatMessage) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	return p.Completer.Complete(ctx, messages)
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
