package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Investigate a question with SPL
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "splunk_investigation",
		Description: "RECOMMENDED: Investigate a question against Splunk data. Start here - walks through discovering indexes and saved searches, composing SPL and narrowing results.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "goal",
				Description: "What you want to find out (e.g., 'why did checkout error rates spike this morning')",
				Required:    false,
			},
			{
				Name:        "index",
				Description: "Index to focus on (e.g., 'main', 'web')",
				Required:    false,
			},
			{
				Name:        "earliest_time",
				Description: "Start of the time window (e.g., '-4h', '-7d@d')",
				Required:    false,
			},
		},
	}, HandleInvestigation(cfg))

	// Prompt 2: Tool usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "splunk_tool_guide",
		Description: "Reference for the Splunk tools: parameters, defaults, output shapes and error codes.",
	}, HandleToolGuide(cfg))
}
