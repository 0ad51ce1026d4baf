package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/siteledger/internal/app"
	"github.com/rpggio/siteledger/internal/config"
	"github.com/rpggio/siteledger/internal/sqlite"
	"github.com/spf13/cobra"
)

// runtime carries what PersistentPreRunE prepared for a subcommand.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		_ = rt.closers[i].Close()
	}
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	var (
		logLevel string
		dbPath   string
	)

	root := &cobra.Command{
		Use:           "siteledger",
		Short:         "Construction site daily log, attendance and material reconciliation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("db") {
				cfg.DB.Path = dbPath
			}
			rt.cfg = cfg

			// stdout carries JSON-RPC in mcp mode and JSON in dashboard mode.
			logWriter := io.Writer(os.Stderr)
			if cmd.Name() == "serve" {
				logWriter = os.Stdout
			}
			if logPath := os.Getenv(config.EnvPrefix + "LOG_PATH"); logPath != "" {
				fileWriter, file, err := newLogFileWriter(logPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
				} else {
					rt.closers = append(rt.closers, file)
					logWriter = fileWriter
				}
			}
			rt.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
				Level: parseLogLevel(cfg.Log.Level),
			}))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			rt.close()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path")

	root.AddCommand(
		newServeCmd(rt),
		newMCPCmd(rt),
		newMigrateCmd(rt),
		newDashboardCmd(rt),
	)
	return root
}

// openApp opens the database, applies pending migrations and wires the
// services.
func (rt *runtime) openApp() (*app.App, error) {
	db, err := rt.openDB()
	if err != nil {
		return nil, err
	}
	applied, err := db.RunMigrations()
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if len(applied) > 0 {
		rt.logger.Info("applied migrations", "versions", applied)
	}
	return app.New(db, rt.cfg.Workflow, rt.logger), nil
}

func (rt *runtime) openDB() (*sqlite.DB, error) {
	if err := ensureDBDir(rt.cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(rt.cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	rt.closers = append(rt.closers, db)
	return db, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
