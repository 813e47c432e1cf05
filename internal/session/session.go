// Package session owns the single authenticated Splunk handle and exposes
// blocking operations over it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// ErrNotConnected is returned by data operations while no session is set.
var ErrNotConnected = errors.New("not connected to Splunk: call configure first")

// ErrSavedSearchNotFound is returned when RunSavedSearch gets an unknown name.
var ErrSavedSearchNotFound = errors.New("saved search not found")

// Status texts reported by Manager.Status.
const (
	StatusConnected    = "Connected"
	StatusNotConnected = "Not connected"
)

// State is the lifecycle state of the session.
type State int

const (
	StateUnset State = iota
	StateAuthenticating
	StateReady
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateReady:
		return "ready"
	default:
		return "unset"
	}
}

// Service is the Splunk API surface the manager drives. *splunk.Client
// implements it.
type Service interface {
	Login(ctx context.Context, username, password string) error
	CreateJob(ctx context.Context, query string, opts splunk.SearchOptions) (string, error)
	WaitForJob(ctx context.Context, sid string) (*splunk.JobStatus, error)
	JobResults(ctx context.Context, sid string, opts splunk.ResultsOptions) ([]byte, error)
	ListSavedSearches(ctx context.Context) ([]splunk.SavedSearch, error)
	DispatchSavedSearch(ctx context.Context, name string, opts splunk.SearchOptions) (string, error)
	ListIndexes(ctx context.Context) ([]splunk.Index, error)
	ServerInfo(ctx context.Context) (*splunk.ServerInfo, error)
}

// Factory builds an unauthenticated Service for the given connection.
type Factory func(params ConnectionParams) Service

// NewSplunkFactory returns a Factory producing *splunk.Client values with the
// given options applied.
func NewSplunkFactory(opts ...splunk.Option) Factory {
	return func(params ConnectionParams) Service {
		return splunk.New(params.BaseURL(), opts...)
	}
}

// SearchResult is the outcome of a finished search job.
type SearchResult struct {
	SID         string
	OutputMode  string
	ResultCount int64
	Body        []byte // raw results body in OutputMode
}

// Manager holds at most one authenticated Service.
type Manager struct {
	factory  Factory
	validate *validator.Validate

	// configMu serializes Configure calls.
	configMu sync.Mutex

	mu     sync.RWMutex
	state  State
	svc    Service
	params ConnectionParams // password cleared
	gen    uint64           // bumped on every state change

	infoGroup singleflight.Group
}

// NewManager creates a Manager in the Unset state.
func NewManager(factory Factory) *Manager {
	return &Manager{
		factory:  factory,
		validate: newValidator(),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Status returns "Connected" when a session is ready, "Not connected" otherwise.
func (m *Manager) Status() string {
	if m.State() == StateReady {
		return StatusConnected
	}
	return StatusNotConnected
}

// Connection returns the parameters of the ready session, without password.
func (m *Manager) Connection() (ConnectionParams, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params, m.state == StateReady
}

func (m *Manager) set(state State, svc Service, params ConnectionParams) {
	m.mu.Lock()
	m.state = state
	m.svc = svc
	m.params = params
	m.gen++
	m.mu.Unlock()
}

// service returns the ready Service or ErrNotConnected.
func (m *Manager) service() (Service, error) {
	svc, _, err := m.current()
	return svc, err
}

// current returns the ready Service together with its session generation.
func (m *Manager) current() (Service, uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateReady || m.svc == nil {
		return nil, 0, ErrNotConnected
	}
	return m.svc, m.gen, nil
}

// Configure replaces the session with a new one authenticated with params.
// On login failure the session is cleared.
func (m *Manager) Configure(ctx context.Context, params ConnectionParams) error {
	params = params.WithDefaults()
	params.Host = strings.TrimSpace(params.Host)
	if err := validateParams(m.validate, params); err != nil {
		return err
	}

	m.configMu.Lock()
	defer m.configMu.Unlock()

	m.set(StateAuthenticating, nil, ConnectionParams{})

	svc := m.factory(params)
	if err := svc.Login(ctx, params.Username, params.Password); err != nil {
		m.set(StateUnset, nil, ConnectionParams{})
		slog.Warn("splunk login failed",
			slog.String("url", params.BaseURL()),
			slog.String("username", params.Username),
			slog.String("error", err.Error()),
		)
		return err
	}

	params.Password = ""
	m.set(StateReady, svc, params)
	slog.Info("connected to splunk",
		slog.String("url", params.BaseURL()),
		slog.String("username", params.Username),
	)
	return nil
}

// Search runs an ad-hoc query to completion and fetches its results.
func (m *Manager) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	params.Query = strings.TrimSpace(params.Query)
	if err := validateParams(m.validate, params); err != nil {
		return nil, err
	}
	svc, err := m.service()
	if err != nil {
		return nil, err
	}

	sid, err := svc.CreateJob(ctx, NormalizeQuery(params.Query), splunk.SearchOptions{
		EarliestTime: params.EarliestTime,
		LatestTime:   params.LatestTime,
	})
	if err != nil {
		return nil, err
	}
	return m.collect(ctx, svc, sid, params.MaxCount, params.OutputMode)
}

// SavedSearches lists every saved search.
func (m *Manager) SavedSearches(ctx context.Context) ([]splunk.SavedSearch, error) {
	svc, err := m.service()
	if err != nil {
		return nil, err
	}
	return svc.ListSavedSearches(ctx)
}

// RunSavedSearch dispatches the named saved search, waits for it and fetches
// its JSON results. The name is checked against the saved-search list first so
// an unknown name never reaches the dispatch endpoint.
func (m *Manager) RunSavedSearch(ctx context.Context, params RunSavedSearchParams) (*SearchResult, error) {
	if err := validateParams(m.validate, params); err != nil {
		return nil, err
	}
	svc, err := m.service()
	if err != nil {
		return nil, err
	}

	searches, err := svc.ListSavedSearches(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, s := range searches {
		if s.Name == params.Name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSavedSearchNotFound, params.Name)
	}

	sid, err := svc.DispatchSavedSearch(ctx, params.Name, splunk.SearchOptions{
		EarliestTime: params.EarliestTime,
		LatestTime:   params.LatestTime,
	})
	if err != nil {
		return nil, err
	}
	return m.collect(ctx, svc, sid, params.MaxCount, splunk.OutputJSON)
}

// Indexes lists every index.
func (m *Manager) Indexes(ctx context.Context) ([]splunk.Index, error) {
	svc, err := m.service()
	if err != nil {
		return nil, err
	}
	return svc.ListIndexes(ctx)
}

// ServerInfo fetches server details. Concurrent callers on the same session
// share one request; a caller that gives up does not cancel it for the others.
func (m *Manager) ServerInfo(ctx context.Context) (*splunk.ServerInfo, error) {
	svc, gen, err := m.current()
	if err != nil {
		return nil, err
	}

	shared := context.WithoutCancel(ctx)
	ch := m.infoGroup.DoChan("server-info:"+strconv.FormatUint(gen, 10), func() (any, error) {
		return svc.ServerInfo(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*splunk.ServerInfo), nil
	}
}

func (m *Manager) collect(ctx context.Context, svc Service, sid string, count int, mode string) (*SearchResult, error) {
	status, err := svc.WaitForJob(ctx, sid)
	if err != nil {
		return nil, err
	}
	body, err := svc.JobResults(ctx, sid, splunk.ResultsOptions{Count: count, OutputMode: mode})
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		SID:         sid,
		OutputMode:  mode,
		ResultCount: status.ResultCount,
		Body:        body,
	}, nil
}

// NormalizeQuery prefixes q with the search command unless it already starts
// with "search" or a pipe.
func NormalizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if strings.HasPrefix(q, "|") {
		return q
	}
	if fields := strings.Fields(q); len(fields) > 0 && strings.EqualFold(fields[0], "search") {
		return q
	}
	return "search " + q
}
