package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/splunk-mcp/internal/cache"
	"github.com/usestring/splunk-mcp/internal/config"
	"github.com/usestring/splunk-mcp/internal/logging"
	"github.com/usestring/splunk-mcp/internal/mcp"
	"github.com/usestring/splunk-mcp/internal/mcp/tools"
	"github.com/usestring/splunk-mcp/internal/session"
	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// Server is the Splunk MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal    *mcp.Server
	deps        *Deps
	autoConnect bool
	logCleanup  func() error
}

// NewServer creates a new MCP server with builtin Splunk tools.
//
// Configuration is loaded from the environment (see internal/config). The
// server starts disconnected; the configure tool, or auto-connect in Run,
// establishes the Splunk session.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	factory := cfg.factory
	if factory == nil {
		factory = session.NewSplunkFactory(clientOptions(cfg)...)
	}

	// JOB_CACHE_MAX_ITEMS <= 0 disables the job cache and its resources.
	var jobCache *cache.JobCache
	if cfg.config.JobCacheMaxItems > 0 {
		jobCache, err = cache.NewJobCache(cfg.config.JobCacheMaxItems)
		if err != nil {
			_ = logCleanup()
			return nil, fmt.Errorf("failed to create job cache: %w", err)
		}
	}

	deps := &Deps{
		Session: session.NewManager(factory),
		Jobs:    jobCache,
		Config:  cfg.config,
	}
	toolDeps := &tools.Deps{
		Session: deps.Session,
		Jobs:    deps.Jobs,
		Config:  deps.Config,
	}

	internalOpts := []mcp.ServerOption{mcp.WithVersion(cfg.version)}
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Tools that need Deps are bound once deps exist.
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	autoConnect := cfg.config.SplunkAutoConnect
	if cfg.autoConnect != nil {
		autoConnect = *cfg.autoConnect
	}

	return &Server{
		internal:    internal,
		deps:        deps,
		autoConnect: autoConnect,
		logCleanup:  logCleanup,
	}, nil
}

// clientOptions maps configuration onto Splunk client options.
func clientOptions(cfg *serverConfig) []splunk.Option {
	c := cfg.config
	opts := []splunk.Option{
		splunk.WithPollInterval(c.JobPollInitial, c.JobPollMax),
		splunk.WithJobTimeout(c.JobTimeout),
	}
	if cfg.httpClient != nil {
		return append(opts, splunk.WithHTTPClient(cfg.httpClient))
	}
	return append(opts,
		splunk.WithInsecureSkipVerify(c.SplunkInsecureSkipVerify),
		splunk.WithTimeout(c.HTTPClientTimeout),
	)
}

// Connect authenticates with the Splunk settings from the environment. It
// returns an error when they are incomplete or the login fails.
func (s *Server) Connect(ctx context.Context) error {
	c := s.deps.Config
	if !c.HasCredentials() {
		return fmt.Errorf("SPLUNK_HOST, SPLUNK_USERNAME and SPLUNK_PASSWORD must be set")
	}
	return s.deps.Session.Configure(ctx, session.ConnectionParams{
		Host:     c.SplunkHost,
		Port:     c.SplunkPort,
		Username: c.SplunkUsername,
		Password: c.SplunkPassword,
		Scheme:   c.SplunkScheme,
	})
}

// Run starts the MCP server with stdio transport.
// When auto-connect is enabled and credentials are configured it first
// connects to Splunk; a failed login is logged and the server still starts.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.autoConnect && s.deps.Config.HasCredentials() {
		if err := s.Connect(ctx); err != nil {
			slog.Warn("auto-connect failed, use the configure tool to connect",
				slog.String("error", err.Error()),
			)
		}
	}
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
