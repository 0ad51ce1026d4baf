package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/reconcile"
)

// Reconciler defines the read-side operations exposed as tools.
type Reconciler interface {
	Dashboard(ctx context.Context, f reconcile.Filter) (*reconcile.Dashboard, error)
	AttendanceStats(ctx context.Context, date, projectName string) (reconcile.Stats, error)
	SafetyIssueCount(ctx context.Context) (int, error)
	SafetyIssueLogs(ctx context.Context) ([]worklog.WorkLog, error)
	InventorySummary(ctx context.Context) (material.Summary, error)
	MaterialImpact(ctx context.Context) ([]reconcile.Impact, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all services needed by MCP.
type Services struct {
	Reconciler Reconciler
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "siteledger",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
