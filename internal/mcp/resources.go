package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/splunk-mcp/internal/mcp/tools"
	"github.com/usestring/splunk-mcp/internal/results"
)

// Resource URIs:
//
//	splunk://status
//	splunk://server-info
//	splunk://jobs/{sid}/results
//	splunk://jobs/{sid}/fields
const (
	uriScheme     = "splunk://"
	URIStatus     = uriScheme + "status"
	URIServerInfo = uriScheme + "server-info"
	URIJobResults = uriScheme + "jobs/{sid}/results"
	URIJobFields  = uriScheme + "jobs/{sid}/fields"
)

// ServerInfoView is the server-info resource payload.
type ServerInfoView struct {
	Version      string `json:"version"`
	Build        string `json:"build"`
	ServerName   string `json:"serverName"`
	LicenseState string `json:"licenseState"`
	Mode         string `json:"mode"`
}

// JobFieldsView is the job fields resource payload.
type JobFieldsView struct {
	SID string `json:"sid"`
	*results.FieldSummary
}

// registerResources registers resources, templates and their handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         URIStatus,
		Name:        "Connection Status",
		Description: "Whether the server holds an authenticated Splunk session: 'Connected' or 'Not connected'.",
		MIMEType:    tools.MimeText,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.9,
		},
	}, s.handleResourceStatus)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         URIServerInfo,
		Name:        "Server Info",
		Description: "Splunk server details: version, build, serverName, licenseState and mode. Requires a connection.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceServerInfo)

	if s.deps.Jobs != nil {
		s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
			URITemplate: URIJobResults,
			Name:        "Job Results",
			Description: "Rows of a recent json search or saved-search run, by sid. Served from memory; only the most recent jobs are kept. The search tools already return these rows, so only fetch to revisit an earlier result.",
			MIMEType:    tools.MimeJSON,
			Annotations: &sdkmcp.Annotations{
				Audience: []sdkmcp.Role{"assistant"},
				Priority: 0.3,
			},
		}, s.handleResourceJobResults)

		s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
			URITemplate: URIJobFields,
			Name:        "Job Fields",
			Description: "Field summary of a recent json job: per-field frequency, distinct count, examples and detected format (numeric, iso8601, ip, url, email, enum), plus a JSON Schema of the rows. Use it to plan a filter or a follow-up SPL query.",
			MIMEType:    tools.MimeJSON,
			Annotations: &sdkmcp.Annotations{
				Audience: []sdkmcp.Role{"assistant"},
				Priority: 0.3,
			},
		}, s.handleResourceJobFields)
	}
}

// Resource handlers

func (s *Server) handleResourceStatus(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeText,
				Text:     s.deps.Session.Status(),
			},
		},
	}, nil
}

func (s *Server) handleResourceServerInfo(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	info, err := s.deps.Session.ServerInfo(ctx)
	if err != nil {
		return nil, tools.WrapSplunkError(err)
	}

	return toResourceResult(req.Params.URI, ServerInfoView{
		Version:      info.Version,
		Build:        info.Build,
		ServerName:   info.ServerName,
		LicenseState: info.LicenseState,
		Mode:         info.Mode,
	})
}

func (s *Server) handleResourceJobResults(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	job, ok := s.deps.Jobs.Get(params["sid"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, job)
}

func (s *Server) handleResourceJobFields(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	job, ok := s.deps.Jobs.Get(params["sid"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, JobFieldsView{
		SID:          job.SID,
		FieldSummary: results.Summarize(job.Results),
	})
}

// Helper functions

// parseResourceURI extracts parameters from a splunk:// template URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + uriScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "jobs":
		if len(parts) != 3 || parts[1] == "" || (parts[2] != "results" && parts[2] != "fields") {
			return nil, tools.ErrInvalidInput("jobs URI must be splunk://jobs/{sid}/results or splunk://jobs/{sid}/fields")
		}
		params["sid"] = parts[1]
		params["view"] = parts[2]

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
