package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/distclient/internal/cliconfig"
	"github.com/bft-labs/distclient/pkg/distclient"
	"github.com/bft-labs/distclient/pkg/log"
)

const longHelp = `Query the distribution backend from the terminal.

Log in once; the session is persisted (file, sqlite or redis) and shared
with every other distclient process using the same namespace.

Configuration is read from $HOME/.distclient/config.toml, then DISTCLIENT_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  distclient login --base-url http://localhost:8000 --email me@example.com
  distclient partners --company acme --limit 50
  distclient operations --start 2024-01-01 --end 2024-01-31 --xlsx ops.xlsx
  distclient dashboard --period 3m --json
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries state shared by all subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	output  outputOptions

	logger log.Logger
	client *distclient.Client
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "distclient",
		Short:         "Query the distribution backend from the terminal",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.distclient/config.toml)")
	f.StringVar(&a.cfg.BaseURL, "base-url", a.cfg.BaseURL, "backend base URL")
	f.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "HTTP timeout")
	f.StringVar(&a.cfg.SessionBackend, "session-backend", a.cfg.SessionBackend, "session storage: file, sqlite or redis")
	f.StringVar(&a.cfg.SessionDir, "session-dir", a.cfg.SessionDir, "directory for file and sqlite session storage")
	f.StringVar(&a.cfg.Namespace, "namespace", a.cfg.Namespace, "session namespace")
	f.StringVar(&a.cfg.RedisAddr, "redis-addr", a.cfg.RedisAddr, "redis address for the redis session backend")
	f.StringVar(&a.cfg.RedisPassword, "redis-password", a.cfg.RedisPassword, "redis password")
	f.IntVar(&a.cfg.RedisDB, "redis-db", a.cfg.RedisDB, "redis database number")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&a.cfg.LogBackend, "log-backend", a.cfg.LogBackend, "log backend: zerolog or zap")
	f.BoolVar(&a.cfg.WatchSession, "watch-session", a.cfg.WatchSession, "republish login state changes made by other processes while a command runs")
	f.BoolVar(&a.output.json, "json", false, "print results as JSON")
	f.StringVar(&a.output.xlsx, "xlsx", "", "write results to an Excel workbook")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newStatusCommand(a),
		newWhoamiCommand(a),
		newWatchCommand(a),
		newDashboardCommand(a),
		newPartnersCommand(a),
		newProductsCommand(a),
		newOperationsCommand(a),
		newOperationCommand(a),
	)
	return root
}

// setup resolves configuration and opens the client.
func (a *app) setup(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := cliconfig.Resolve(&a.cfg, a.cfgPath, changed); err != nil {
		return err
	}

	logger, err := log.New(a.cfg.LogBackend, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration",
		log.String("base_url", a.cfg.BaseURL),
		log.String("session_backend", a.cfg.SessionBackend),
		log.String("namespace", a.cfg.Namespace),
	)

	client, err := distclient.New(cmd.Context(), a.cfg.Library(), distclient.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.client = client

	if a.cfg.WatchSession && cmd.Name() != "watch" {
		ctx := cmd.Context()
		go func() {
			if err := client.WatchSession(ctx); err != nil {
				logger.Warn("session watch stopped", log.Err(err))
			}
		}()
	}
	return nil
}

func (a *app) teardown() error {
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}

func main() {
	a := &app{cfg: cliconfig.DefaultConfig()}
	root := newRootCommand(a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		_ = a.teardown()
		logger := a.logger
		if logger == nil {
			logger = log.NewZerologAdapter()
		}
		logger.Error("distclient", log.Err(err))
		os.Exit(1)
	}
}
