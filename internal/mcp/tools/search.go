package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/splunk-mcp/internal/cache"
	"github.com/usestring/splunk-mcp/internal/results"
	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// SearchInput is the input for search.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"SPL query. 'search' is prepended unless the query starts with 'search' or '|'"`
	EarliestTime string `json:"earliest_time,omitempty" jsonschema:"Earliest time, e.g. -24h, -7d@d or 2024-01-01T00:00:00"`
	LatestTime   string `json:"latest_time,omitempty" jsonschema:"Latest time, e.g. now or -1h"`
	MaxCount     int    `json:"max_count,omitempty" jsonschema:"Maximum number of results to return (1-10000, default: 100)"`
	OutputMode   string `json:"output_mode,omitempty" jsonschema:"Result format: json, csv or xml (default: json)"`
	Filter       string `json:"filter,omitempty" jsonschema:"Optional jq expression applied to the result rows array (json output only), e.g. '.[] | select(.count > 10)'"`
}

// SearchOutput is the output for search and run_saved_search. For csv and xml
// output the results are returned verbatim as text content and Results is
// omitted.
type SearchOutput struct {
	SID          string   `json:"sid"`
	SavedSearch  string   `json:"saved_search,omitempty"`
	OutputMode   string   `json:"output_mode"`
	ResultCount  int64    `json:"result_count"`
	Results      []any    `json:"results,omitzero"`
	FilterErrors []string `json:"filter_errors,omitempty"`
}

// ToolSearch runs an ad-hoc search job to completion and returns its results.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		outputMode := input.OutputMode
		if outputMode == "" {
			outputMode = splunk.OutputJSON
		}
		maxCount := input.MaxCount
		if maxCount == 0 {
			maxCount = session.DefaultMaxCount
		}

		filter, err := compileFilter(input.Filter, outputMode)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		res, err := d.Session.Search(ctx, session.SearchParams{
			Query:        input.Query,
			EarliestTime: input.EarliestTime,
			LatestTime:   input.LatestTime,
			MaxCount:     maxCount,
			OutputMode:   outputMode,
		})
		if err != nil {
			return nil, SearchOutput{}, WrapSplunkError(err)
		}

		return d.shapeResults(res, input.Query, "", filter)
	}
}

// compileFilter compiles expr, which is only meaningful for json output.
func compileFilter(expr, outputMode string) (*results.Filter, error) {
	if expr == "" {
		return nil, nil
	}
	if outputMode != splunk.OutputJSON {
		return nil, ErrInvalidInput("filter requires output_mode json")
	}
	f, err := results.CompileFilter(expr)
	if err != nil {
		return nil, ErrInvalidInput(err.Error())
	}
	return f, nil
}

// shapeResults turns a finished job into the tool result. JSON rows are
// truncated, cached by SID and optionally filtered; csv and xml bodies pass
// through untouched.
func (d *Deps) shapeResults(res *session.SearchResult, query, savedSearch string, filter *results.Filter) (*sdkmcp.CallToolResult, SearchOutput, error) {
	out := SearchOutput{
		SID:         res.SID,
		SavedSearch: savedSearch,
		OutputMode:  res.OutputMode,
		ResultCount: res.ResultCount,
	}

	if res.OutputMode != splunk.OutputJSON {
		return makeTextToolResult(res.Body), out, nil
	}

	rs, err := splunk.ParseResults(res.Body)
	if err != nil {
		return nil, SearchOutput{}, WrapSplunkError(err)
	}
	rows := results.TruncateRows(rs.Results, d.maxStringLen())

	if d.Jobs != nil {
		d.Jobs.Put(&cache.Job{
			SID:         res.SID,
			Query:       query,
			SavedSearch: savedSearch,
			ResultCount: len(rows),
			Results:     rows,
			CompletedAt: time.Now(),
		})
	}

	if filter != nil {
		out.Results, out.FilterErrors = filter.Apply(rows)
		return nil, out, nil
	}

	out.Results = make([]any, len(rows))
	for i, r := range rows {
		out.Results[i] = r
	}
	return nil, out, nil
}
