package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListIndexesInput is the input for list_indexes.
type ListIndexesInput struct{}

// IndexInfo is the projection of an index returned to clients.
type IndexInfo struct {
	Name            string `json:"name"`
	TotalEventCount int64  `json:"totalEventCount"`
	CurrentDBSizeMB int64  `json:"currentDBSizeMB"`
	MaxDataSize     string `json:"maxDataSize"`
}

// ListIndexesOutput is the output for list_indexes.
type ListIndexesOutput struct {
	Indexes []IndexInfo `json:"indexes,omitzero"`
	Count   int         `json:"count"`
}

// ToolListIndexes lists indexes with their size and event counts.
func ToolListIndexes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListIndexesInput) (*sdkmcp.CallToolResult, ListIndexesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListIndexesInput) (*sdkmcp.CallToolResult, ListIndexesOutput, error) {
		indexes, err := d.Session.Indexes(ctx)
		if err != nil {
			return nil, ListIndexesOutput{}, WrapSplunkError(err)
		}

		output := ListIndexesOutput{
			Indexes: make([]IndexInfo, len(indexes)),
			Count:   len(indexes),
		}
		for i, idx := range indexes {
			output.Indexes[i] = IndexInfo{
				Name:            idx.Name,
				TotalEventCount: idx.TotalEventCount,
				CurrentDBSizeMB: idx.CurrentDBSizeMB,
				MaxDataSize:     idx.MaxDataSize,
			}
		}

		return nil, output, nil
	}
}
