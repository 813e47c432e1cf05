// Package tools contains MCP tool implementations for Splunk.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MIME type constants.
const (
	MimeJSON = "application/json"
	MimeText = "text/plain"
)

// makeTextToolResult returns body verbatim as the tool's text content.
func makeTextToolResult(body []byte) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(body)},
		},
	}
}
