package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleInvestigation_Arguments(t *testing.T) {
	h := HandleInvestigation(&Config{JobCacheEnabled: true})

	res, err := h(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{
			Name:      "splunk_investigation",
			Arguments: map[string]string{"goal": "find 500s", "index": "web"},
		},
	})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "**Goal**: find 500s")
	assert.Contains(t, text, "confirm `web` exists")
	assert.Contains(t, text, `earliest_time: "-24h"`)
	assert.Contains(t, text, "splunk://jobs/{sid}/results")
}

func TestHandleInvestigation_NoArguments(t *testing.T) {
	h := HandleInvestigation(&Config{})

	res, err := h(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "splunk_investigation"}})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.NotContains(t, text, "**Goal**")
	assert.Contains(t, text, "Call `list_indexes` and pick")
	assert.NotContains(t, text, "splunk://jobs")
}

func TestHandleToolGuide_Truncation(t *testing.T) {
	res, err := HandleToolGuide(&Config{ResultMaxStringLen: 200})(context.Background(), &sdkmcp.GetPromptRequest{})
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), "longer than 200 characters")

	res, err = HandleToolGuide(&Config{})(context.Background(), &sdkmcp.GetPromptRequest{})
	require.NoError(t, err)
	assert.NotContains(t, promptText(t, res), "truncated")
}
