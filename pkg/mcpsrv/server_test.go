package mcpsrv

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/internal/session/sessiontest"
)

type countInput struct{}

type countOutput struct {
	Count int `json:"count"`
}

func setSplunkEnv(t *testing.T, password string) {
	t.Setenv("SPLUNK_HOST", "splunk.local")
	t.Setenv("SPLUNK_USERNAME", "admin")
	t.Setenv("SPLUNK_PASSWORD", password)
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "splunk-mcp.log"))
}

func newTestServer(t *testing.T, fake *sessiontest.Fake, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{withSessionFactory(fake.Factory())}, opts...)
	s, err := NewServer(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func connectClient(t *testing.T, s *Server) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverT, clientT := sdkmcp.NewInMemoryTransports()
	ss, err := s.internal.MCPServer().Connect(ctx, serverT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	cs, err := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil).Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestServer_ConnectFromEnv(t *testing.T) {
	setSplunkEnv(t, "changeme")
	fake := sessiontest.New()
	s := newTestServer(t, fake)

	require.NoError(t, s.Connect(context.Background()))
	assert.Equal(t, session.StateReady, s.Deps().Session.State())

	params, ok := s.Deps().Session.Connection()
	require.True(t, ok)
	assert.Equal(t, 8089, params.Port)
	assert.Equal(t, "https", params.Scheme)
	assert.Empty(t, params.Password)
}

func TestServer_ConnectBadCredentials(t *testing.T) {
	setSplunkEnv(t, "wrong")
	s := newTestServer(t, sessiontest.New())

	require.Error(t, s.Connect(context.Background()))
	assert.Equal(t, session.StateUnset, s.Deps().Session.State())
}

func TestServer_ConnectMissingSettings(t *testing.T) {
	t.Setenv("SPLUNK_HOST", "")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "splunk-mcp.log"))
	fake := sessiontest.New()
	s := newTestServer(t, fake)

	require.Error(t, s.Connect(context.Background()))
	assert.Zero(t, fake.CallCount("Login"))
}

func TestServer_AutoConnectOverride(t *testing.T) {
	setSplunkEnv(t, "changeme")
	t.Setenv("SPLUNK_AUTOCONNECT", "true")

	s := newTestServer(t, sessiontest.New(), WithAutoConnect(false))
	assert.False(t, s.autoConnect)
}

func TestServer_WithDepsTool(t *testing.T) {
	setSplunkEnv(t, "changeme")
	fake := sessiontest.New()
	s := newTestServer(t, fake,
		WithoutBuiltinPrompts(),
		WithDepsTool(
			&sdkmcp.Tool{Name: "index_count", Description: "Count indexes"},
			func(d *Deps) func(context.Context, *sdkmcp.CallToolRequest, countInput) (*sdkmcp.CallToolResult, countOutput, error) {
				return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ countInput) (*sdkmcp.CallToolResult, countOutput, error) {
					indexes, err := d.Session.Indexes(ctx)
					if err != nil {
						return nil, countOutput{}, err
					}
					return nil, countOutput{Count: len(indexes)}, nil
				}
			},
		),
	)
	require.NoError(t, s.Connect(context.Background()))
	cs := connectClient(t, s)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "index_count"})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out countOutput
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*sdkmcp.TextContent).Text), &out))
	assert.Equal(t, 2, out.Count)

	tools, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 6, "five builtin tools plus index_count")
}

func TestServer_WithoutBuiltinTools(t *testing.T) {
	setSplunkEnv(t, "changeme")
	s := newTestServer(t, sessiontest.New(),
		WithoutBuiltinTools(),
		WithTool(&sdkmcp.Tool{Name: "ping", Description: "Ping"},
			func(context.Context, *sdkmcp.CallToolRequest, countInput) (*sdkmcp.CallToolResult, countOutput, error) {
				return nil, countOutput{Count: 1}, nil
			}),
	)
	cs := connectClient(t, s)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, "ping", res.Tools[0].Name)
}

func TestServer_JobCacheDisabled(t *testing.T) {
	setSplunkEnv(t, "changeme")
	t.Setenv("JOB_CACHE_MAX_ITEMS", "0")
	fake := sessiontest.New()
	s := newTestServer(t, fake)

	assert.Nil(t, s.Deps().Jobs)
	require.NoError(t, s.Connect(context.Background()))

	cs := connectClient(t, s)
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "search",
		Arguments: map[string]any{"query": "index=main"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	templates, err := cs.ListResourceTemplates(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, templates.ResourceTemplates)
}
