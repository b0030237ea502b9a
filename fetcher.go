package asof

import "context"

// Fetcher retrieves the body of a web page.
type Fetcher interface {
	// Fetch issues a GET request for the URL and returns the response body.
	// Responses other than 200 OK are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter rate limits outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
