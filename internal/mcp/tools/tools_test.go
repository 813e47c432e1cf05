package tools

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/splunk-mcp/internal/cache"
	"github.com/usestring/splunk-mcp/internal/config"
	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/internal/session/sessiontest"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

func newDeps(t *testing.T, connected bool) (*Deps, *sessiontest.Fake) {
	t.Helper()
	fake := sessiontest.New()

	mgr := session.NewManager(fake.Factory())
	if connected {
		var err error
		mgr, err = sessiontest.Connected(context.Background(), fake)
		require.NoError(t, err)
	}

	jobs, err := cache.NewJobCache(8)
	require.NoError(t, err)

	return &Deps{Session: mgr, Jobs: jobs, Config: &config.Config{}}, fake
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, code, coded.Code)
}

func TestToolConfigure(t *testing.T) {
	d, fake := newDeps(t, false)

	_, out, err := ToolConfigure(d)(context.Background(), nil, ConfigureInput{
		Host:     "splunk.local",
		Username: "admin",
		Password: "changeme",
	})
	require.NoError(t, err)
	assert.Equal(t, session.StatusConnected, out.Status)
	assert.Equal(t, "https://splunk.local:8089", out.URL)
	assert.Equal(t, "admin", out.Username)
	assert.Equal(t, 1, fake.CallCount("Login"))
}

func TestToolConfigure_BadCredentials(t *testing.T) {
	d, _ := newDeps(t, true)

	_, _, err := ToolConfigure(d)(context.Background(), nil, ConfigureInput{
		Host:     "splunk.local",
		Username: "admin",
		Password: "wrong",
	})
	requireCode(t, err, ErrCodeAuthFailed)
	assert.Equal(t, session.StateUnset, d.Session.State())

	_, _, err = ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main"})
	requireCode(t, err, ErrCodeNotConnected)
}

func TestToolConfigure_InvalidScheme(t *testing.T) {
	d, fake := newDeps(t, false)

	_, _, err := ToolConfigure(d)(context.Background(), nil, ConfigureInput{
		Host:     "splunk.local",
		Username: "admin",
		Password: "changeme",
		Scheme:   "ftp",
	})
	requireCode(t, err, ErrCodeInvalidInput)
	assert.Zero(t, fake.CallCount("Login"))
}

func TestToolSearch_JSONDefaults(t *testing.T) {
	d, fake := newDeps(t, true)

	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main error"})
	require.NoError(t, err)

	assert.Equal(t, "search index=main error", fake.LastQuery())
	assert.Equal(t, splunk.ResultsOptions{Count: 100, OutputMode: splunk.OutputJSON}, fake.LastResultsOptions())
	assert.Equal(t, "sid-adhoc", out.SID)
	assert.Equal(t, splunk.OutputJSON, out.OutputMode)
	assert.Equal(t, int64(2), out.ResultCount)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "web-01", out.Results[0].(map[string]any)["host"])

	job, ok := d.Jobs.Get("sid-adhoc")
	require.True(t, ok)
	assert.Equal(t, "index=main error", job.Query)
	assert.Len(t, job.Results, 2)
}

func TestToolSearch_CSVPassThrough(t *testing.T) {
	d, fake := newDeps(t, true)

	res, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{
		Query:      "| makeresults",
		OutputMode: splunk.OutputCSV,
		MaxCount:   5,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, string(fake.Results[splunk.OutputCSV]), text.Text)
	assert.Nil(t, out.Results)
	assert.Equal(t, 5, fake.LastResultsOptions().Count)
	assert.Zero(t, d.Jobs.Len(), "only json results are cached")
}

func TestToolSearch_MaxCountOutOfRange(t *testing.T) {
	for _, n := range []int{-5, 10001} {
		d, fake := newDeps(t, true)

		_, _, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main", MaxCount: n})
		requireCode(t, err, ErrCodeInvalidInput)
		assert.Zero(t, fake.CallCount("CreateJob"), "max_count %d", n)
	}
}

func TestToolSearch_Filter(t *testing.T) {
	d, _ := newDeps(t, true)

	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{
		Query:  "index=main",
		Filter: `.[] | select(._raw | contains("500")) | .host`,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"web-02"}, out.Results)
	assert.Empty(t, out.FilterErrors)
}

func TestToolSearch_BadFilterSkipsSplunk(t *testing.T) {
	d, fake := newDeps(t, true)

	_, _, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main", Filter: ".[] | select("})
	requireCode(t, err, ErrCodeInvalidInput)

	_, _, err = ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main", Filter: ".", OutputMode: splunk.OutputXML})
	requireCode(t, err, ErrCodeInvalidInput)

	assert.Zero(t, fake.CallCount("CreateJob"))
}

func TestToolSearch_Truncation(t *testing.T) {
	d, _ := newDeps(t, true)
	d.Config.ResultMaxStringLen = 3

	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main"})
	require.NoError(t, err)
	assert.Equal(t, "GET... (16 more chars)", out.Results[0].(map[string]any)["_raw"])
}

func TestToolSearch_JobFailed(t *testing.T) {
	d, fake := newDeps(t, true)
	fake.JobErr = &splunk.JobFailedError{SID: "sid-adhoc", DispatchState: splunk.DispatchFailed}

	_, _, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "index=main"})
	requireCode(t, err, ErrCodeJobFailed)
}

func TestToolListSavedSearches(t *testing.T) {
	d, fake := newDeps(t, true)

	_, out, err := ToolListSavedSearches(d)(context.Background(), nil, ListSavedSearchesInput{})
	require.NoError(t, err)
	require.Len(t, out.SavedSearches, 2)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, SavedSearchInfo{
		Name:         "Errors last hour",
		Search:       "index=main error",
		Description:  "All errors",
		EarliestTime: "-1h",
		LatestTime:   "now",
	}, out.SavedSearches[0])
	assert.Equal(t, fake.SavedSearches[1].Search, out.SavedSearches[1].Search)
}

func TestToolListSavedSearches_Empty(t *testing.T) {
	d, fake := newDeps(t, true)
	fake.SavedSearches = nil

	_, out, err := ToolListSavedSearches(d)(context.Background(), nil, ListSavedSearchesInput{})
	require.NoError(t, err)
	assert.NotNil(t, out.SavedSearches)
	assert.Empty(t, out.SavedSearches)
}

func TestToolRunSavedSearch(t *testing.T) {
	d, fake := newDeps(t, true)

	_, out, err := ToolRunSavedSearch(d)(context.Background(), nil, RunSavedSearchInput{
		Name:         "Errors last hour",
		EarliestTime: "-24h",
	})
	require.NoError(t, err)
	assert.Equal(t, "sid-saved-Errors last hour", out.SID)
	assert.Equal(t, "Errors last hour", out.SavedSearch)
	assert.Len(t, out.Results, 2)
	assert.Equal(t, "-24h", fake.LastSearchOptions().EarliestTime)
	assert.Equal(t, splunk.OutputJSON, fake.LastResultsOptions().OutputMode)
}

func TestToolRunSavedSearch_NotFound(t *testing.T) {
	d, fake := newDeps(t, true)

	_, _, err := ToolRunSavedSearch(d)(context.Background(), nil, RunSavedSearchInput{Name: "nope"})
	requireCode(t, err, ErrCodeNotFound)
	assert.Zero(t, fake.CallCount("DispatchSavedSearch"))
}

func TestToolListIndexes(t *testing.T) {
	d, _ := newDeps(t, true)

	_, out, err := ToolListIndexes(d)(context.Background(), nil, ListIndexesInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, IndexInfo{Name: "main", TotalEventCount: 1200, CurrentDBSizeMB: 15, MaxDataSize: "auto"}, out.Indexes[0])
}

func TestTools_RequireSession(t *testing.T) {
	d, fake := newDeps(t, false)
	ctx := context.Background()

	_, _, err := ToolListIndexes(d)(ctx, nil, ListIndexesInput{})
	requireCode(t, err, ErrCodeNotConnected)

	_, _, err = ToolListSavedSearches(d)(ctx, nil, ListSavedSearchesInput{})
	requireCode(t, err, ErrCodeNotConnected)

	_, _, err = ToolRunSavedSearch(d)(ctx, nil, RunSavedSearchInput{Name: "Errors last hour"})
	requireCode(t, err, ErrCodeNotConnected)

	assert.Empty(t, fake.Calls())
}
