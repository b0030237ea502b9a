// Package ollama implements asof.Completer against a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/asof"
)

const (
	// DefaultBaseURL is where Ollama listens unless OLLAMA_HOST says otherwise.
	DefaultBaseURL = "http://127.0.0.1:11434"

	// DefaultModel is used when no model is configured.
	DefaultModel = "llama3.2"

	// DefaultTimeout bounds a single non-streaming chat request.
	DefaultTimeout = 60 * time.Second
)

var _ asof.Completer = (*Completer)(nil)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Model   string  `json:"model"`
	Message message `json:"message"`
	Done    bool    `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Completer sends chat completions to Ollama's /api/chat endpoint.
type Completer struct {
	client  *http.Client
	baseURL string
	model   string
	timeout *time.Duration
}

// Option configures a Completer.
type Option func(*Completer)

// WithBaseURL sets the Ollama server address.
func WithBaseURL(u string) Option {
	return func(c *Completer) {
		c.baseURL = u
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Completer) {
		c.model = model
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Completer) {
		c.client = client
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Completer) {
		c.timeout = &d
	}
}

// NewCompleter creates a Completer with defaults applied.
func NewCompleter(opts ...Option) *Completer {
	c := &Completer{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		client := *c.client
		client.Timeout = *c.timeout
		c.client = &client
	}
	c.baseURL = normalizeBaseURL(c.baseURL)
	if c.model == "" {
		c.model = DefaultModel
	}
	return c
}

// Timeout returns the per-request timeout of the underlying HTTP client.
func (c *Completer) Timeout() time.Duration {
	return c.client.Timeout
}

// Model returns the configured model name.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends the messages in order and returns the assistant reply.
func (c *Completer) Complete(ctx context.Context, messages []asof.ChatMessage) (string, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: make([]message, len(messages)),
		Stream:   false,
	}
	for i, m := range messages {
		req.Messages[i] = message{Role: string(m.Role), Content: m.Content}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", asof.Errorf(asof.EINTERNAL, "marshal chat request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", asof.Errorf(asof.EINTERNAL, "create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", asof.Errorf(asof.ENOTFOUND, "model %q not found", c.model)
	}
	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return "", asof.Errorf(asof.EINTERNAL, "ollama: %s", e.Error)
		}
		return "", asof.Errorf(asof.EINTERNAL, "chat request failed: %s", resp.Status)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", asof.Errorf(asof.EINTERNAL, "decode chat response: %v", err)
	}

	return result.Message.Content, nil
}

// Ping checks that the Ollama server is reachable.
func (c *Completer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return asof.Errorf(asof.EINTERNAL, "create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return asof.Errorf(asof.EUNAVAILABLE, "unexpected status from ollama: %s", resp.Status)
	}
	return nil
}

func (c *Completer) transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return asof.Errorf(asof.EUNAVAILABLE, "request canceled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return asof.Errorf(asof.EUNAVAILABLE, "request timed out")
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return asof.Errorf(asof.EUNAVAILABLE, "request timed out")
	}
	return asof.Errorf(asof.EUNAVAILABLE, "ollama is not running at %s", c.baseURL)
}

// normalizeBaseURL accepts OLLAMA_HOST style values such as "localhost:11434".
func normalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return DefaultBaseURL
	}
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	return strings.TrimRight(u, "/")
}
