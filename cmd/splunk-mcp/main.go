package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/usestring/splunk-mcp/pkg/mcpsrv"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

type options struct {
	envFiles      []string
	logLevel      string
	logFile       string
	noAutoConnect bool
}

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "splunk-mcp",
		Short: "MCP server exposing Splunk search over stdio",
		Long: "splunk-mcp serves the Model Context Protocol on stdin/stdout and forwards\n" +
			"tool calls (configure, search, list_saved_searches, run_saved_search,\n" +
			"list_indexes) to the Splunk REST API.\n\n" +
			"Settings come from the environment (SPLUNK_HOST, SPLUNK_USERNAME,\n" +
			"SPLUNK_PASSWORD, LOG_LEVEL, ...), optionally loaded from .env files.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "load environment variables from `file` (repeatable; existing variables win)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to `path` with rotation (overrides LOG_FILE)")
	flags.BoolVar(&opts.noAutoConnect, "no-autoconnect", false, "do not connect to Splunk at startup even if credentials are set")

	return cmd
}

func run(ctx context.Context, opts options) error {
	if err := loadEnvFiles(opts.envFiles); err != nil {
		return err
	}

	// Configuration is loaded from environment variables:
	// - SPLUNK_HOST, SPLUNK_PORT, SPLUNK_USERNAME, SPLUNK_PASSWORD, SPLUNK_SCHEME
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - etc. (see internal/config for all options)
	srvOpts := []mcpsrv.Option{
		mcpsrv.WithVersion(version),
		mcpsrv.WithLogLevel(opts.logLevel),
		mcpsrv.WithLogFile(opts.logFile),
	}
	if opts.noAutoConnect {
		srvOpts = append(srvOpts, mcpsrv.WithAutoConnect(false))
	}

	server, err := mcpsrv.NewServer(srvOpts...)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	slog.Info("starting splunk MCP server on stdio", slog.String("version", version))
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// loadEnvFiles loads each file into the environment without overriding
// variables that are already set.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
	}
	return nil
}
