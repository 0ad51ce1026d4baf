// Package app assembles the services, the REST router and the MCP server
// from one database handle.
package app

import (
	"context"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/siteledger/internal/config"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/mcp"
	"github.com/rpggio/siteledger/internal/reconcile"
	"github.com/rpggio/siteledger/internal/sqlite"
	"github.com/rpggio/siteledger/internal/transport"
)

// Version is reported by the MCP server.
var Version = "dev"

// App holds the wired services.
type App struct {
	Projects   *project.Service
	WorkLogs   *worklog.Service
	Attendance *attendance.Service
	Materials  *material.Service
	Requests   *material.RequestService
	Activity   *activity.Service
	Engine     *reconcile.Engine

	logger *slog.Logger
}

// New wires every service over db. Workflow switches come from wf.
func New(db *sqlite.DB, wf config.WorkflowConfig, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	projectSvc := project.NewService(sqlite.NewProjectRepository(db), activitySvc, logger)
	attendanceSvc := attendance.NewService(sqlite.NewAttendanceRepository(db), activitySvc, logger)
	materialSvc := material.NewService(sqlite.NewMaterialRepository(db), activitySvc,
		material.Options{DeriveStatus: wf.DeriveMaterialStatus}, logger)

	guard := material.PermissiveGuard()
	if wf.StrictRequestTransitions {
		guard = material.StrictGuard()
	}
	requestSvc := material.NewRequestService(sqlite.NewMaterialRequestRepository(db), activitySvc, guard, logger)

	worklogSvc := worklog.NewService(sqlite.NewWorkLogRepository(db), projectSvc, attendanceSvc, activitySvc, logger).
		WithDefaultUnit(wf.DefaultUnit)
	if wf.LinkStockConsumption {
		worklogSvc = worklogSvc.WithStockConsumer(worklog.StockConsumerFunc(
			func(ctx context.Context, name string, quantity float64) error {
				_, err := materialSvc.Consume(ctx, name, quantity)
				return err
			}))
	}

	engine := reconcile.NewEngine(projectSvc, attendanceSvc, materialSvc, logger)

	return &App{
		Projects:   projectSvc,
		WorkLogs:   worklogSvc,
		Attendance: attendanceSvc,
		Materials:  materialSvc,
		Requests:   requestSvc,
		Activity:   activitySvc,
		Engine:     engine,
		logger:     logger,
	}
}

// RESTServices returns the services the REST router serves.
func (a *App) RESTServices() transport.Services {
	return transport.Services{
		Projects:   a.Projects,
		WorkLogs:   a.WorkLogs,
		Attendance: a.Attendance,
		Materials:  a.Materials,
		Requests:   a.Requests,
		Activity:   a.Activity,
		Reconciler: a.Engine,
	}
}

// MCPServer builds the MCP server over the engine.
func (a *App) MCPServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Reconciler: a.Engine,
			Activity:   a.Activity,
		},
		Version: Version,
		Logger:  a.logger,
	})
}

// Handler returns the REST router, with the streamable MCP endpoint mounted
// at /mcp when withMCP is set.
func (a *App) Handler(withMCP bool) http.Handler {
	mounts := map[string]http.Handler{}
	if withMCP {
		server := a.MCPServer()
		mounts["/mcp"] = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return server },
			&sdkmcp.StreamableHTTPOptions{Stateless: true},
		)
	}
	return transport.NewServer(a.RESTServices(), a.logger, mounts)
}
