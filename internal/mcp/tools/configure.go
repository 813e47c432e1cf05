package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/splunk-mcp/internal/session"
)

// ConfigureInput is the input for configure.
type ConfigureInput struct {
	Host     string `json:"host" jsonschema:"Splunk server hostname or IP address"`
	Port     int    `json:"port,omitempty" jsonschema:"Splunk management port (default: 8089)"`
	Username string `json:"username" jsonschema:"Splunk username"`
	Password string `json:"password" jsonschema:"Splunk password"`
	Scheme   string `json:"scheme,omitempty" jsonschema:"Connection scheme: http or https (default: https)"`
}

// ConfigureOutput is the output for configure.
type ConfigureOutput struct {
	Status   string `json:"status"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// ToolConfigure authenticates against Splunk and replaces the current session.
// A failed login leaves the server disconnected.
func ToolConfigure(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ConfigureInput) (*sdkmcp.CallToolResult, ConfigureOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ConfigureInput) (*sdkmcp.CallToolResult, ConfigureOutput, error) {
		params := session.ConnectionParams{
			Host:     input.Host,
			Port:     input.Port,
			Username: input.Username,
			Password: input.Password,
			Scheme:   input.Scheme,
		}.WithDefaults()

		if err := d.Session.Configure(ctx, params); err != nil {
			return nil, ConfigureOutput{}, WrapSplunkError(err)
		}

		return nil, ConfigureOutput{
			Status:   d.Session.Status(),
			URL:      params.BaseURL(),
			Username: params.Username,
		}, nil
	}
}
