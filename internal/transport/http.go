package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/reconcile"
)

// ProjectService manages the project tree.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	AddTask(ctx context.Context, projectID string, req project.TaskRequest) (*project.Task, error)
	SetTaskCompletion(ctx context.Context, projectID, taskID string, completed bool) error
}

// WorkLogService writes work logs.
type WorkLogService interface {
	Create(ctx context.Context, projectID, taskID string, in worklog.Input) (*worklog.WorkLog, error)
	Update(ctx context.Context, projectID, taskID, logID string, in worklog.Input) (*worklog.WorkLog, error)
	SubmitForApproval(ctx context.Context, log worklog.WorkLog) (*worklog.WorkLog, error)
}

// AttendanceService reads and saves daily sheets.
type AttendanceService interface {
	RecordsForDate(ctx context.Context, date string) ([]attendance.Record, error)
	SaveDay(ctx context.Context, date string, records []attendance.Record) error
}

// MaterialService is the material ledger.
type MaterialService interface {
	ListMaterials(ctx context.Context) ([]material.Material, error)
	Upsert(ctx context.Context, m material.Material) (*material.Material, error)
	Summary(ctx context.Context) (material.Summary, error)
}

// RequestService manages material requests.
type RequestService interface {
	List(ctx context.Context) ([]material.Request, error)
	Get(ctx context.Context, id string) (*material.Request, error)
	Create(ctx context.Context, req material.Request) (*material.Request, error)
	Update(ctx context.Context, id string, req material.Request) (*material.Request, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService reads the activity trail.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Reconciler computes read-time aggregates.
type Reconciler interface {
	Dashboard(ctx context.Context, f reconcile.Filter) (*reconcile.Dashboard, error)
	SafetyIssueLogs(ctx context.Context) ([]worklog.WorkLog, error)
	MaterialImpact(ctx context.Context) ([]reconcile.Impact, error)
}

// Services groups everything the REST API serves.
type Services struct {
	Projects   ProjectService
	WorkLogs   WorkLogService
	Attendance AttendanceService
	Materials  MaterialService
	Requests   RequestService
	Activity   ActivityService
	Reconciler Reconciler
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer creates the REST router with middleware. Extra handlers (such as
// the MCP endpoint) are mounted by path.
func NewServer(svc Services, logger *slog.Logger, mounts map[string]http.Handler) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.listProjects)
			r.Post("/", srv.createProject)
			r.Get("/{projectID}", srv.getProject)
			r.Post("/{projectID}/tasks", srv.addTask)
			r.Put("/{projectID}/tasks/{taskID}", srv.setTaskCompletion)
			r.Post("/{projectID}/tasks/{taskID}/worklogs", srv.createWorkLog)
			r.Put("/{projectID}/tasks/{taskID}/worklogs/{logID}", srv.updateWorkLog)
		})

		r.Route("/worklogs", func(r chi.Router) {
			r.Get("/", srv.dashboard)
			r.Post("/submit", srv.submitWorkLog)
			r.Get("/safety-issues", srv.safetyIssues)
		})

		r.Get("/attendance", srv.getAttendance)
		r.Post("/attendance", srv.saveAttendance)

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", srv.listMaterials)
			r.Post("/", srv.createMaterial)
			r.Get("/summary", srv.materialSummary)
			r.Get("/impact", srv.materialImpact)
			r.Put("/{materialID}", srv.updateMaterial)
		})

		r.Route("/material-requests", func(r chi.Router) {
			r.Get("/", srv.listRequests)
			r.Post("/", srv.createRequest)
			r.Get("/{requestID}", srv.getRequest)
			r.Put("/{requestID}", srv.updateRequest)
			r.Delete("/{requestID}", srv.deleteRequest)
		})

		r.Get("/activity", srv.listActivity)
	})

	for path, h := range mounts {
		r.Mount(path, h)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
