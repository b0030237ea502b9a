package asof

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Role identifies the author of a chat message.
type Role string

// Chat message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single message exchanged with a language model or shown
// in a transcript.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DirectSystemPrompt is the system message used when a query is sent to the
// model without search results.
const DirectSystemPrompt = "You are a helpful AI assistant. Provide direct and engaging responses."

// SearchSystemPrompt returns the system message used for search-augmented
// completions in the given year.
func SearchSystemPrompt(year int) string {
	return fmt.Sprintf("You are an AI assistant in %d. Provide accurate, time-aware responses based on the provided information.", year)
}

// Completer generates a reply from a language model.
// The model identifier is fixed when the implementation is constructed.
type Completer interface {
	// Complete sends the messages in order and returns the generated text.
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// AnchorYear prefixes reply with "As of <year>, " unless the year already
// appears in it. This is a best-effort check on the literal digits and says
// nothing about whether the reply is actually current.
func AnchorYear(reply string, year int) string {
	y := strconv.Itoa(year)
	if strings.Contains(reply, y) {
		return reply
	}
	return "As of " + y + ", " + reply
}

// Apology returns the reply shown to the user when a completion fails.
func Apology(err error) string {
	return "Sorry, there was an error generating a response: " + ErrorMessage(err)
}
