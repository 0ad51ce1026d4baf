package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/reconcile"
)

// ListProjects fetches every project with its tasks and logs.
func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	var out []project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []project.Project{}
	}
	return out, nil
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id string) (*project.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: project id is required", faults.ErrValidation)
	}
	var out project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+escape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	var out project.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTask adds a task to a project.
func (c *Client) AddTask(ctx context.Context, projectID string, req project.TaskRequest) (*project.Task, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("%w: project id is required", faults.ErrValidation)
	}
	var out project.Task
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+escape(projectID)+"/tasks", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetTaskCompletion toggles a task's completion flag.
func (c *Client) SetTaskCompletion(ctx context.Context, projectID, taskID string, completed bool) error {
	if err := requireLinkage(projectID, taskID); err != nil {
		return err
	}
	body := map[string]bool{"isCompleted": completed}
	return c.do(ctx, http.MethodPut, taskPath(projectID, taskID), nil, body, nil)
}

// CreateWorkLog adds a log under a task. Blank ids fail before any request.
func (c *Client) CreateWorkLog(ctx context.Context, projectID, taskID string, in worklog.Input) (*worklog.WorkLog, error) {
	if err := requireLinkage(projectID, taskID); err != nil {
		return nil, err
	}
	var out worklog.WorkLog
	if err := c.do(ctx, http.MethodPost, taskPath(projectID, taskID)+"/worklogs", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkLog edits a log. Blank ids fail before any request.
func (c *Client) UpdateWorkLog(ctx context.Context, projectID, taskID, logID string, in worklog.Input) (*worklog.WorkLog, error) {
	if err := requireLinkage(projectID, taskID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(logID) == "" {
		return nil, fmt.Errorf("%w: log id is required", faults.ErrValidation)
	}
	var out worklog.WorkLog
	path := taskPath(projectID, taskID) + "/worklogs/" + escape(logID)
	if err := c.do(ctx, http.MethodPut, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitForApproval submits a draft log. The log must carry project, task
// and log ids; any missing one fails before any request.
func (c *Client) SubmitForApproval(ctx context.Context, log worklog.WorkLog) (*worklog.WorkLog, error) {
	if worklog.ResolveID(log.ProjectID) == "" || worklog.ResolveID(log.TaskID) == "" || worklog.ResolveID(log.ID) == "" {
		return nil, worklog.ErrMissingIdentifiers
	}
	var out worklog.WorkLog
	if err := c.do(ctx, http.MethodPost, "/api/worklogs/submit", nil, log, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the server-computed work log overview.
func (c *Client) Dashboard(ctx context.Context, f reconcile.Filter) (*reconcile.Dashboard, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	var out reconcile.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/worklogs", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordsForDate fetches the attendance sheet for a day.
func (c *Client) RecordsForDate(ctx context.Context, date string) ([]attendance.Record, error) {
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: date is required", faults.ErrValidation)
	}
	var out attendance.Day
	if err := c.do(ctx, http.MethodGet, "/api/attendance", url.Values{"date": {date}}, nil, &out); err != nil {
		return nil, err
	}
	if out.Employees == nil {
		out.Employees = []attendance.Record{}
	}
	return out.Employees, nil
}

// SaveAttendance replaces the sheet for a day.
func (c *Client) SaveAttendance(ctx context.Context, date string, records []attendance.Record) error {
	if records == nil {
		records = []attendance.Record{}
	}
	return c.do(ctx, http.MethodPost, "/api/attendance", nil, attendance.Day{Date: date, Employees: records}, nil)
}

// ListMaterials fetches the ledger.
func (c *Client) ListMaterials(ctx context.Context) ([]material.Material, error) {
	var out []material.Material
	if err := c.do(ctx, http.MethodGet, "/api/materials", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []material.Material{}
	}
	return out, nil
}

// SaveMaterial creates a material when m has no id and updates it otherwise.
func (c *Client) SaveMaterial(ctx context.Context, m material.Material) (*material.Material, error) {
	var out material.Material
	var err error
	if strings.TrimSpace(m.ID) == "" {
		err = c.do(ctx, http.MethodPost, "/api/materials", nil, m, &out)
	} else {
		err = c.do(ctx, http.MethodPut, "/api/materials/"+escape(m.ID), nil, m, &out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MaterialSummary fetches inventory statistics.
func (c *Client) MaterialSummary(ctx context.Context) (material.Summary, error) {
	var out material.Summary
	err := c.do(ctx, http.MethodGet, "/api/materials/summary", nil, nil, &out)
	return out, err
}

// MaterialImpact fetches the usage-versus-stock report.
func (c *Client) MaterialImpact(ctx context.Context) ([]reconcile.Impact, error) {
	var out []reconcile.Impact
	if err := c.do(ctx, http.MethodGet, "/api/materials/impact", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRequests fetches material requests, newest first.
func (c *Client) ListRequests(ctx context.Context) ([]material.Request, error) {
	var out []material.Request
	if err := c.do(ctx, http.MethodGet, "/api/material-requests", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRequest files a material request.
func (c *Client) CreateRequest(ctx context.Context, req material.Request) (*material.Request, error) {
	var out material.Request
	if err := c.do(ctx, http.MethodPost, "/api/material-requests", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequest edits a material request.
func (c *Client) UpdateRequest(ctx context.Context, id string, req material.Request) (*material.Request, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: request id is required", faults.ErrValidation)
	}
	var out material.Request
	if err := c.do(ctx, http.MethodPut, "/api/material-requests/"+escape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRequest removes a material request.
func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: request id is required", faults.ErrValidation)
	}
	return c.do(ctx, http.MethodDelete, "/api/material-requests/"+escape(id), nil, nil, nil)
}

// RecentActivity fetches the activity trail.
func (c *Client) RecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	q := url.Values{}
	if opts.EntityType != "" {
		q.Set("entityType", opts.EntityType)
	}
	if opts.EntityID != "" {
		q.Set("entityId", opts.EntityID)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var out []activity.Entry
	if err := c.do(ctx, http.MethodGet, "/api/activity", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func requireLinkage(projectID, taskID string) error {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(taskID) == "" {
		return worklog.ErrMissingLinkage
	}
	return nil
}

func taskPath(projectID, taskID string) string {
	return "/api/projects/" + escape(projectID) + "/tasks/" + escape(taskID)
}
