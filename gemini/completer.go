// Package gemini implements asof.Completer using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/asof"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const (
	roleUser  = "user"
	roleModel = "model"
)

var _ asof.Completer = (*Completer)(nil)

// Completer implements asof.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Model returns the configured model name.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends the conversation to Gemini and returns the reply text.
func (c *Completer) Complete(ctx context.Context, messages []asof.ChatMessage) (string, error) {
	contents, config := BuildRequest(messages)
	if len(contents) == 0 {
		return "", asof.Errorf(asof.EINVALID, "at least one user or assistant message required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", asof.Errorf(asof.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return "", asof.Errorf(asof.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildRequest maps chat messages onto Gemini contents. System messages are
// joined into the system instruction; assistant turns use the model role.
func BuildRequest(messages []asof.ChatMessage) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []string
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case asof.RoleSystem:
			system = append(system, m.Content)
		case asof.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  roleModel,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  roleUser,
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}
	return contents, config
}
