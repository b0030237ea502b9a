package asof

import "context"

// NoResultsReply is the reply given when search is enabled but the provider
// returned nothing usable.
const NoResultsReply = "No search results found."

// Mode selects how a query is answered.
type Mode string

// Answer modes.
const (
	ModeDirect Mode = "direct"
	ModeSearch Mode = "search"
)

// ModeFor returns ModeSearch when search is enabled and ModeDirect otherwise.
func ModeFor(searchEnabled bool) Mode {
	if searchEnabled {
		return ModeSearch
	}
	return ModeDirect
}

// Status describes how an answer was produced.
type Status string

// Answer statuses. Only StatusOK means the text came from the model.
const (
	StatusOK               Status = "ok"
	StatusNoResults        Status = "no_results"
	StatusSearchFailed     Status = "search_failed"
	StatusCompletionFailed Status = "completion_failed"
)

// Answer is the outcome of answering one query. Text is always suitable to
// show as the assistant's reply, including when a collaborator failed.
type Answer struct {
	Query  string `json:"query"`
	Text   string `json:"text"`
	Mode   Mode   `json:"mode"`
	Status Status `json:"status"`

	// Notice is a transient message about a failed search, shown once
	// alongside the reply and never stored in the transcript.
	Notice string `json:"notice,omitempty"`

	// Sources are the search results the reply was based on.
	Sources []SearchResult `json:"sources,omitempty"`
}

// Answerer answers user queries.
type Answerer interface {
	// Answer answers the query, searching the web first when searchEnabled
	// is set. Failures of the search provider or the language model are
	// reported through the returned Answer, not as an error.
	// Returns EINVALID if the query is blank.
	Answer(ctx context.Context, query string, searchEnabled bool) (*Answer, error)
}
