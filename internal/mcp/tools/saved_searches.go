package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// ListSavedSearchesInput is the input for list_saved_searches.
type ListSavedSearchesInput struct{}

// SavedSearchInfo is the projection of a saved search returned to clients.
type SavedSearchInfo struct {
	Name         string `json:"name"`
	Search       string `json:"search"`
	Description  string `json:"description"`
	EarliestTime string `json:"earliest_time"`
	LatestTime   string `json:"latest_time"`
}

// ListSavedSearchesOutput is the output for list_saved_searches.
type ListSavedSearchesOutput struct {
	SavedSearches []SavedSearchInfo `json:"saved_searches,omitzero"`
	Count         int               `json:"count"`
}

// RunSavedSearchInput is the input for run_saved_search.
type RunSavedSearchInput struct {
	Name         string `json:"name" jsonschema:"Name of the saved search, as returned by list_saved_searches"`
	EarliestTime string `json:"earliest_time,omitempty" jsonschema:"Override the saved search's earliest time"`
	LatestTime   string `json:"latest_time,omitempty" jsonschema:"Override the saved search's latest time"`
	MaxCount     int    `json:"max_count,omitempty" jsonschema:"Maximum number of results to return (1-10000, default: 100)"`
	Filter       string `json:"filter,omitempty" jsonschema:"Optional jq expression applied to the result rows array"`
}

// ToolListSavedSearches lists saved searches.
func ToolListSavedSearches(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSavedSearchesInput) (*sdkmcp.CallToolResult, ListSavedSearchesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSavedSearchesInput) (*sdkmcp.CallToolResult, ListSavedSearchesOutput, error) {
		searches, err := d.Session.SavedSearches(ctx)
		if err != nil {
			return nil, ListSavedSearchesOutput{}, WrapSplunkError(err)
		}

		output := ListSavedSearchesOutput{
			SavedSearches: make([]SavedSearchInfo, len(searches)),
			Count:         len(searches),
		}
		for i, s := range searches {
			output.SavedSearches[i] = SavedSearchInfo{
				Name:         s.Name,
				Search:       s.Search,
				Description:  s.Description,
				EarliestTime: s.EarliestTime,
				LatestTime:   s.LatestTime,
			}
		}

		return nil, output, nil
	}
}

// ToolRunSavedSearch dispatches a saved search by name and returns its JSON results.
func ToolRunSavedSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RunSavedSearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RunSavedSearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		filter, err := compileFilter(input.Filter, splunk.OutputJSON)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		maxCount := input.MaxCount
		if maxCount == 0 {
			maxCount = session.DefaultMaxCount
		}

		res, err := d.Session.RunSavedSearch(ctx, session.RunSavedSearchParams{
			Name:         input.Name,
			EarliestTime: input.EarliestTime,
			LatestTime:   input.LatestTime,
			MaxCount:     maxCount,
		})
		if err != nil {
			return nil, SearchOutput{}, WrapSplunkError(err)
		}

		return d.shapeResults(res, "", input.Name, filter)
	}
}
