// Package sessiontest provides an in-memory session.Service for tests.
package sessiontest

import (
	"context"
	"fmt"
	"sync"

	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// Fake is a scriptable session.Service that records every call.
type Fake struct {
	mu sync.Mutex

	Username string
	Password string

	SavedSearches []splunk.SavedSearch
	Indexes       []splunk.Index
	Info          *splunk.ServerInfo

	// Results maps output mode to the body returned by JobResults.
	Results map[string][]byte
	// JobErr, when set, is returned by WaitForJob.
	JobErr error

	calls      []string
	lastQuery  string
	lastSearch splunk.SearchOptions
	lastResult splunk.ResultsOptions
}

// New returns a Fake accepting admin/changeme with sample data.
func New() *Fake {
	return &Fake{
		Username: "admin",
		Password: "changeme",
		SavedSearches: []splunk.SavedSearch{
			{Name: "Errors last hour", Search: "index=main error", Description: "All errors", EarliestTime: "-1h", LatestTime: "now"},
			{Name: "License usage", Search: "index=_internal source=*license_usage.log"},
		},
		Indexes: []splunk.Index{
			{Name: "main", TotalEventCount: 1200, CurrentDBSizeMB: 15, MaxDataSize: "auto"},
			{Name: "_internal", TotalEventCount: 98765, CurrentDBSizeMB: 210, MaxDataSize: "auto_high_volume"},
		},
		Info: &splunk.ServerInfo{Version: "9.2.1", Build: "78803f08aabb", ServerName: "splunk-01", LicenseState: "OK", Mode: "normal"},
		Results: map[string][]byte{
			splunk.OutputJSON: []byte(`{"preview":false,"results":[{"host":"web-01","count":"3","_raw":"GET /index.html 200"},{"host":"web-02","count":"1","_raw":"GET /login 500"}]}`),
			splunk.OutputCSV:  []byte("\"host\",\"count\"\n\"web-01\",3\n\"web-02\",1\n"),
			splunk.OutputXML:  []byte("<?xml version='1.0' encoding='UTF-8'?>\n<results preview='0'></results>\n"),
		},
	}
}

// Factory returns a session.Factory that always yields f.
func (f *Fake) Factory() session.Factory {
	return func(session.ConnectionParams) session.Service { return f }
}

func (f *Fake) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

// Calls returns the recorded method names in call order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times the named method was called.
func (f *Fake) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

// LastQuery returns the query passed to the last CreateJob.
func (f *Fake) LastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

// LastSearchOptions returns the time bounds of the last CreateJob or dispatch.
func (f *Fake) LastSearchOptions() splunk.SearchOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSearch
}

// LastResultsOptions returns the options of the last JobResults call.
func (f *Fake) LastResultsOptions() splunk.ResultsOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastResult
}

func (f *Fake) Login(_ context.Context, username, password string) error {
	f.record("Login")
	if username != f.Username || password != f.Password {
		return fmt.Errorf("%w: Login failed", splunk.ErrAuthenticationFailed)
	}
	return nil
}

func (f *Fake) CreateJob(_ context.Context, query string, opts splunk.SearchOptions) (string, error) {
	f.record("CreateJob")
	f.mu.Lock()
	f.lastQuery = query
	f.lastSearch = opts
	f.mu.Unlock()
	return "sid-adhoc", nil
}

func (f *Fake) WaitForJob(_ context.Context, sid string) (*splunk.JobStatus, error) {
	f.record("WaitForJob")
	if f.JobErr != nil {
		return nil, f.JobErr
	}
	return &splunk.JobStatus{SID: sid, DispatchState: splunk.DispatchDone, IsDone: true, ResultCount: 2}, nil
}

func (f *Fake) JobResults(_ context.Context, _ string, opts splunk.ResultsOptions) ([]byte, error) {
	f.record("JobResults")
	f.mu.Lock()
	f.lastResult = opts
	f.mu.Unlock()
	body, ok := f.Results[opts.OutputMode]
	if !ok {
		return nil, fmt.Errorf("no results for output mode %q", opts.OutputMode)
	}
	return body, nil
}

func (f *Fake) ListSavedSearches(context.Context) ([]splunk.SavedSearch, error) {
	f.record("ListSavedSearches")
	return f.SavedSearches, nil
}

func (f *Fake) DispatchSavedSearch(_ context.Context, name string, opts splunk.SearchOptions) (string, error) {
	f.record("DispatchSavedSearch")
	f.mu.Lock()
	f.lastSearch = opts
	f.mu.Unlock()
	return "sid-saved-" + name, nil
}

func (f *Fake) ListIndexes(context.Context) ([]splunk.Index, error) {
	f.record("ListIndexes")
	return f.Indexes, nil
}

func (f *Fake) ServerInfo(context.Context) (*splunk.ServerInfo, error) {
	f.record("ServerInfo")
	return f.Info, nil
}

// Connected returns a Manager already configured against f.
func Connected(ctx context.Context, f *Fake) (*session.Manager, error) {
	m := session.NewManager(f.Factory())
	err := m.Configure(ctx, session.ConnectionParams{Host: "splunk.local", Username: f.Username, Password: f.Password})
	return m, err
}
