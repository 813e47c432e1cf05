package tools

import (
	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/splunk-mcp/internal/config"
	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: configure
	AddTool(srv, &sdkmcp.Tool{
		Name:        "configure",
		Description: "Connect to a Splunk server. Authenticates with the given credentials and replaces any existing connection; on failure the server is left disconnected. Must succeed before any other tool can be used.",
		InputSchema: inputSchema[ConfigureInput](func(p map[string]*jsonschema.Schema) {
			intRange(p["port"], 1, 65535, config.DefaultSplunkPort)
			stringEnum(p["scheme"], config.DefaultSplunkScheme, "http", "https")
		}),
	}, ToolConfigure(d))

	// Tool 2: search
	AddTool(srv, &sdkmcp.Tool{
		Name:        "search",
		Description: "Run a Splunk search and wait for it to finish. Returns {sid, output_mode, result_count, results} for json output; csv and xml output is returned verbatim as text. Use earliest_time/latest_time to bound the time range and filter (jq) to reduce json rows.",
		InputSchema: inputSchema[SearchInput](func(p map[string]*jsonschema.Schema) {
			intRange(p["max_count"], session.MinMaxCount, session.MaxMaxCount, session.DefaultMaxCount)
			stringEnum(p["output_mode"], splunk.OutputJSON, splunk.OutputJSON, splunk.OutputCSV, splunk.OutputXML)
		}),
	}, ToolSearch(d))

	// Tool 3: list_saved_searches
	AddTool(srv, &sdkmcp.Tool{
		Name:        "list_saved_searches",
		Description: "List saved searches. Returns {saved_searches: [{name, search, description, earliest_time, latest_time}], count}. Pass a name to run_saved_search to execute one.",
	}, ToolListSavedSearches(d))

	// Tool 4: run_saved_search
	AddTool(srv, &sdkmcp.Tool{
		Name:        "run_saved_search",
		Description: "Run a saved search by name, optionally overriding its time range, and return its json results. Fails with NOT_FOUND if no saved search has that name.",
		InputSchema: inputSchema[RunSavedSearchInput](func(p map[string]*jsonschema.Schema) {
			intRange(p["max_count"], session.MinMaxCount, session.MaxMaxCount, session.DefaultMaxCount)
		}),
	}, ToolRunSavedSearch(d))

	// Tool 5: list_indexes
	AddTool(srv, &sdkmcp.Tool{
		Name:        "list_indexes",
		Description: "List Splunk indexes. Returns {indexes: [{name, totalEventCount, currentDBSizeMB, maxDataSize}], count}.",
	}, ToolListIndexes(d))
}
