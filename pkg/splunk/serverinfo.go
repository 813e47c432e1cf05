package splunk

import (
	"context"
	"errors"
	"fmt"
)

type serverInfoContent struct {
	Version      flexString `json:"version"`
	Build        flexString `json:"build"`
	ServerName   flexString `json:"serverName"`
	LicenseState flexString `json:"licenseState"`
	Mode         flexString `json:"mode"`
}

// ServerInfo retrieves version and licensing details of the server.
func (c *Client) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	var resp feed[serverInfoContent]
	if err := c.get(ctx, "/services/server/info", nil, &resp); err != nil {
		return nil, fmt.Errorf("getting server info: %w", err)
	}
	if len(resp.Entry) == 0 {
		return nil, errors.New("getting server info: empty response")
	}

	content := resp.Entry[0].Content
	return &ServerInfo{
		Version:      string(content.Version),
		Build:        string(content.Build),
		ServerName:   string(content.ServerName),
		LicenseState: string(content.LicenseState),
		Mode:         string(content.Mode),
	}, nil
}
