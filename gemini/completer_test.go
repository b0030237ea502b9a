package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_MovesSystemMessagesToInstruction(t *testing.T) {
	t.Parallel()

	contents, config := gemini.BuildRequest([]asof.ChatMessage{
		{Role: asof.RoleSystem, Content: asof.SearchSystemPrompt(2025)},
		{Role: asof.RoleUser, Content: "capital of France?"},
	})

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "2025")
	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "capital of France?", contents[0].Parts[0].Text)
}

func TestBuildRequest_MapsAssistantToModelRole(t *testing.T) {
	t.Parallel()

	contents, config := gemini.BuildRequest([]asof.ChatMessage{
		{Role: asof.RoleUser, Content: "hi"},
		{Role: asof.RoleAssistant, Content: "hello"},
		{Role: asof.RoleUser, Content: "again"},
	})

	assert.Nil(t, config.SystemInstruction)
	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)
}

func TestBuildRequest_JoinsMultipleSystemMessages(t *testing.T) {
	t.Parallel()

	_, config := gemini.BuildRequest([]asof.ChatMessage{
		{Role: asof.RoleSystem, Content: "first"},
		{Role: asof.RoleSystem, Content: "second"},
		{Role: asof.RoleUser, Content: "q"},
	})

	require.NotNil(t, config.SystemInstruction)
	assert.Equal(t, "first\n\nsecond", config.SystemInstruction.Parts[0].Text)
}

func TestCompleter_Complete_ReturnsErrorWithoutConversation(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, "") // nil client ok for this test

	_, err := c.Complete(context.Background(), []asof.ChatMessage{
		{Role: asof.RoleSystem, Content: "only system"},
	})

	require.Error(t, err)
	assert.Equal(t, asof.EINVALID, asof.ErrorCode(err))
}

func TestNewCompleter_DefaultsModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.DefaultModel, gemini.NewCompleter(nil, "").Model())
	assert.Equal(t, "gemini-2.0-pro", gemini.NewCompleter(nil, "gemini-2.0-pro").Model())
}
