package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleInvestigation implements the SPL investigation workflow.
func HandleInvestigation(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var goal, index, earliest string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			args := req.Params.Arguments
			goal = args["goal"]
			index = args["index"]
			earliest = args["earliest_time"]
		}
		if earliest == "" {
			earliest = "-24h"
		}

		var sb strings.Builder

		sb.WriteString("# Investigate with Splunk\n\n")
		sb.WriteString("You are a Splunk analyst. Answer the question below using the Splunk tools, ")
		sb.WriteString("starting from cheap metadata calls and only running searches once you know where the data lives.\n\n")

		if goal != "" {
			sb.WriteString(fmt.Sprintf("**Goal**: %s\n\n", goal))
		}
		if index != "" {
			sb.WriteString(fmt.Sprintf("**Index**: `%s`\n\n", index))
		}
		sb.WriteString(fmt.Sprintf("**Time window**: `earliest_time: \"%s\"`\n\n", earliest))

		sb.WriteString("## Workflow\n\n")
		sb.WriteString("1. If any tool returns `NOT_CONNECTED`, call `configure` with host, username and password first.\n")
		if index == "" {
			sb.WriteString("2. Call `list_indexes` and pick indexes whose `totalEventCount` is non-zero and whose name matches the goal.\n")
		} else {
			sb.WriteString(fmt.Sprintf("2. Call `list_indexes` to confirm `%s` exists and holds events.\n", index))
		}
		sb.WriteString("3. Call `list_saved_searches`. If one already answers the question, run it with `run_saved_search` and your time window.\n")
		sb.WriteString("4. Otherwise start with a volume overview, e.g. `index=<idx> | stats count by sourcetype`, with `max_count` around 20.\n")
		sb.WriteString("5. Narrow with field filters and `stats`/`timechart`, keeping result sets small.\n")
		sb.WriteString("6. Pull raw events last, with a tight time window and `| head`.\n\n")

		sb.WriteString("## SPL Tips\n\n")
		sb.WriteString("- Queries that do not start with `search` or `|` get `search ` prepended automatically\n")
		sb.WriteString("- Put `index=` and `sourcetype=` first; they are the cheapest filters\n")
		sb.WriteString("- Prefer `stats`, `top` and `timechart` over returning raw events\n")
		sb.WriteString("- Use `| fields` to drop columns you do not need\n")
		sb.WriteString("- Use `filter` (jq over the result rows) to reshape json output without another search\n")
		if cfg.JobCacheEnabled {
			sb.WriteString("- Results of recent json searches stay readable at `splunk://jobs/{sid}/results` without re-running them\n")
			sb.WriteString("- Read `splunk://jobs/{sid}/fields` to see which fields a result carries and their formats before writing a filter\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide for investigating a question with Splunk searches",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
