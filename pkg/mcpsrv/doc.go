// Package mcpsrv provides an extensible MCP server for Splunk.
//
// This package exposes a high-level API for creating and running an MCP server
// with the builtin Splunk tools (configure, search, list_saved_searches,
// run_saved_search, list_indexes), prompts and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server configured from the environment:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// With SPLUNK_HOST, SPLUNK_USERNAME and SPLUNK_PASSWORD set, Run connects
// before serving; otherwise clients call the configure tool.
//
// # Extension
//
// Add custom tools using MCP SDK types directly, or use WithDepsTool to reach
// the Splunk session:
//
//	type CountInput struct{}
//
//	type CountOutput struct {
//	    Count int `json:"count"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(
//	        &mcp.Tool{Name: "index_count", Description: "Count Splunk indexes"},
//	        func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            return func(ctx context.Context, _ *mcp.CallToolRequest, _ CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	                indexes, err := d.Session.Indexes(ctx)
//	                if err != nil {
//	                    return nil, CountOutput{}, err
//	                }
//	                return nil, CountOutput{Count: len(indexes)}, nil
//	            }
//	        },
//	    ),
//	)
//
// # Configuration
//
// Configure logging and other options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/splunk-mcp.log"),
//	    mcpsrv.WithAutoConnect(false),
//	)
package mcpsrv
