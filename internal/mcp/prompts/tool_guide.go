package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleToolGuide serves the tool reference.
// The truncation note is included only when RESULT_MAX_STRING_LEN is set.
func HandleToolGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Splunk Tool Guide\n\n")

		sb.WriteString("## Search: Parameter Decision Table\n\n")
		sb.WriteString("| Goal | Parameter | Example |\n")
		sb.WriteString("|------|-----------|--------|\n")
		sb.WriteString("| Bound the time range | `earliest_time` / `latest_time` | `earliest_time: \"-1h\"`, `latest_time: \"now\"` |\n")
		sb.WriteString("| Limit returned rows (1-10000, default 100) | `max_count` | `max_count: 20` |\n")
		sb.WriteString("| Get CSV or XML instead of JSON | `output_mode` | `output_mode: \"csv\"` |\n")
		sb.WriteString("| Reshape JSON rows | `filter` | `filter: \"map({host, count})\"` |\n")

		sb.WriteString("\n## Output Shapes\n\n")
		sb.WriteString("- `search`, `run_saved_search`: `{sid, output_mode, result_count, results}`; csv/xml bodies are returned verbatim as text\n")
		sb.WriteString("- `list_saved_searches`: `{saved_searches: [{name, search, description, earliest_time, latest_time}], count}`\n")
		sb.WriteString("- `list_indexes`: `{indexes: [{name, totalEventCount, currentDBSizeMB, maxDataSize}], count}`\n")
		if cfg.ResultMaxStringLen > 0 {
			sb.WriteString(fmt.Sprintf("- Field values longer than %d characters are truncated with a `... (N more chars)` suffix\n", cfg.ResultMaxStringLen))
		}

		sb.WriteString("\n## Resources\n\n")
		sb.WriteString("- `splunk://status`: `Connected` or `Not connected`\n")
		sb.WriteString("- `splunk://server-info`: `{version, build, serverName, licenseState, mode}`\n")
		if cfg.JobCacheEnabled {
			sb.WriteString("- `splunk://jobs/{sid}/results`: rows of a recent json search, by sid\n")
			sb.WriteString("- `splunk://jobs/{sid}/fields`: `{sid, row_count, fields: [{name, type, frequency, distinct_count, examples, format}], schema}`\n")
		}

		sb.WriteString("\n## Error Codes\n\n")
		sb.WriteString("| Code | Meaning | Next step |\n")
		sb.WriteString("|------|---------|-----------|\n")
		sb.WriteString("| `NOT_CONNECTED` | no session yet | call `configure` |\n")
		sb.WriteString("| `AUTH_FAILED` | credentials rejected or session expired | call `configure` again |\n")
		sb.WriteString("| `INVALID_INPUT` | parameter out of range or malformed filter | fix the argument |\n")
		sb.WriteString("| `JOB_FAILED` | Splunk could not run the SPL | read the message, fix the query |\n")
		sb.WriteString("| `NOT_FOUND` | unknown saved search | check `list_saved_searches` |\n")
		sb.WriteString("| `TIMEOUT` | job did not finish in time | narrow the time range |\n")
		sb.WriteString("| `SPLUNK_ERROR` | any other Splunk failure | read the message |\n")

		return &sdkmcp.GetPromptResult{
			Description: "Reference for Splunk tool parameters and outputs",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
