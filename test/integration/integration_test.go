package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/siteledger/internal/client"
	"github.com/rpggio/siteledger/internal/config"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/reconcile"
	"github.com/rpggio/siteledger/internal/testserver"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	ts     *testserver.TestServer
	client *client.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ts := testserver.New(t)
	return &testEnv{ts: ts, client: client.New(ts.URL(), 5*time.Second)}
}

func (env *testEnv) seedTask(t *testing.T, projectName string) (*project.Project, *project.Task) {
	t.Helper()
	ctx := context.Background()
	proj, err := env.client.CreateProject(ctx, project.CreateRequest{Name: projectName, Status: project.StatusInProgress})
	require.NoError(t, err)
	task, err := env.client.AddTask(ctx, proj.ID, project.TaskRequest{Name: "Foundation"})
	require.NoError(t, err)
	return proj, task
}

// siteASheet is 10 records for Site A on 2024-05-01: 7 counted present.
func siteASheet() []attendance.Record {
	statuses := []attendance.Status{
		attendance.StatusAbsent, attendance.StatusPresent, attendance.StatusLate,
		attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusHalfDay,
		attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent,
		attendance.StatusPresent,
	}
	records := make([]attendance.Record, 0, len(statuses)+2)
	for i, st := range statuses {
		records = append(records, attendance.Record{
			EmployeeID: fmt.Sprintf("e%02d", i),
			Name:       fmt.Sprintf("Worker %d", i),
			Project:    "Site A",
			Status:     st,
		})
	}
	// Another project's crew on the same day.
	records = append(records,
		attendance.Record{EmployeeID: "x1", Name: "Other", Project: "Site B", Status: attendance.StatusPresent},
		attendance.Record{EmployeeID: "x2", Name: "Other 2", Project: "Site AB", Status: attendance.StatusPresent},
	)
	return records
}

func TestIntegration_AttendanceJoin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	proj, task := env.seedTask(t, "Site A")

	require.NoError(t, env.client.SaveAttendance(ctx, "2024-05-01", siteASheet()))
	_, err := env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{Date: "2024-05-01", WorkProgress: "excavation"})
	require.NoError(t, err)

	// Server-side engine.
	dash, err := env.client.Dashboard(ctx, reconcile.Filter{})
	require.NoError(t, err)
	require.Len(t, dash.Logs, 1)
	require.Equal(t, reconcile.Stats{Present: 7, Total: 10}, dash.Logs[0].Attendance)

	// Same engine run client-side over the REST sources.
	engine := reconcile.NewEngine(env.client, env.client, env.client, nil)
	remote, err := engine.Dashboard(ctx, reconcile.Filter{Search: "site"})
	require.NoError(t, err)
	require.Len(t, remote.Logs, 1)
	require.Equal(t, reconcile.Stats{Present: 7, Total: 10}, remote.Logs[0].Attendance)

	stats, err := engine.AttendanceStats(ctx, "2024-05-01", "Site A")
	require.NoError(t, err)
	require.Equal(t, reconcile.Stats{Present: 7, Total: 10}, stats)
}

func TestIntegration_AttendanceJoinIgnoresOrdering(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	proj, task := env.seedTask(t, "Site A")

	sheet := siteASheet()
	for i, j := 0, len(sheet)-1; i < j; i, j = i+1, j-1 {
		sheet[i], sheet[j] = sheet[j], sheet[i]
	}
	require.NoError(t, env.client.SaveAttendance(ctx, "2024-05-01", sheet))
	_, err := env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{Date: "2024-05-01"})
	require.NoError(t, err)

	dash, err := env.client.Dashboard(ctx, reconcile.Filter{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, dash.Logs, 1)
	require.Equal(t, reconcile.Stats{Present: 7, Total: 10}, dash.Logs[0].Attendance)
}

func TestIntegration_StockIsNotLinkedByDefault(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	proj, task := env.seedTask(t, "Site A")

	m, err := env.client.SaveMaterial(ctx, material.Material{
		Name: "Cement", CurrentStock: 5, ReorderLevel: 10, Status: material.StatusInStock, Unit: "bags",
	})
	require.NoError(t, err)

	_, err = env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{
		Date:          "2024-05-01",
		MaterialsUsed: []worklog.UsageInput{{MaterialName: "Cement", QuantityUsed: "3"}},
	})
	require.NoError(t, err)

	materials, err := env.client.ListMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	require.Equal(t, m.ID, materials[0].ID)
	require.InDelta(t, 5, materials[0].CurrentStock, 0.001)
	require.Equal(t, material.StatusInStock, materials[0].Status)

	impact, err := env.client.MaterialImpact(ctx)
	require.NoError(t, err)
	require.Len(t, impact, 1)
	require.InDelta(t, 3, impact[0].Consumed, 0.001)
	require.InDelta(t, 2, impact[0].ProjectedStock, 0.001)
	require.True(t, impact[0].BelowReorder)
}

func TestIntegration_StockLinkageWhenEnabled(t *testing.T) {
	ctx := context.Background()
	wf := config.Default().Workflow
	wf.LinkStockConsumption = true
	ts := testserver.NewWithWorkflow(t, wf)
	env := &testEnv{ts: ts, client: client.New(ts.URL(), 5*time.Second)}
	proj, task := env.seedTask(t, "Site A")

	_, err := env.client.SaveMaterial(ctx, material.Material{Name: "Cement", CurrentStock: 5, ReorderLevel: 10})
	require.NoError(t, err)
	_, err = env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{
		Date: "2024-05-01",
		MaterialsUsed: []worklog.UsageInput{
			{MaterialName: " cement ", QuantityUsed: "3"},
			{MaterialName: "Cement", QuantityUsed: "a few"},
		},
	})
	require.NoError(t, err)

	materials, err := env.client.ListMaterials(ctx)
	require.NoError(t, err)
	require.InDelta(t, 2, materials[0].CurrentStock, 0.001)
}

func TestIntegration_MaterialsUsedRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	proj, task := env.seedTask(t, "Site A")

	created, err := env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{
		Date:          "2024-05-01",
		MaterialsUsed: []worklog.UsageInput{{MaterialName: "Cement", QuantityUsed: "5"}},
	})
	require.NoError(t, err)

	reloaded, err := env.ts.App.WorkLogs.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []worklog.MaterialUsage{{Name: "Cement", Quantity: "5", Unit: "Nos"}}, reloaded.MaterialsUsed)
}

func TestIntegration_SubmitForApproval(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	proj, task := env.seedTask(t, "Site A")

	created, err := env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{
		Date:         "2024-05-01",
		WorkProgress: "rebar tied",
		SafetyIssues: "loose scaffold plank",
	})
	require.NoError(t, err)

	for _, broken := range []worklog.WorkLog{
		{ID: created.ID, TaskID: task.ID},
		{ID: created.ID, ProjectID: proj.ID},
		{ProjectID: proj.ID, TaskID: task.ID},
		{ID: created.ID, ProjectID: proj.ID, TaskID: "no-such-task"},
		{ID: created.ID, ProjectID: "no-such-project", TaskID: task.ID},
	} {
		_, err := env.ts.App.WorkLogs.SubmitForApproval(ctx, broken)
		require.ErrorIs(t, err, faults.ErrInvalidState)
	}

	submitted, err := env.client.SubmitForApproval(ctx, *created)
	require.NoError(t, err)
	require.Equal(t, worklog.StatusSubmitted, submitted.Status)

	reloaded, err := env.ts.App.WorkLogs.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, worklog.StatusSubmitted, reloaded.Status)
	require.Equal(t, created.WorkProgress, reloaded.WorkProgress)
	require.Equal(t, created.SafetyIssues, reloaded.SafetyIssues)
	require.Equal(t, created.Date, reloaded.Date)

	dash, err := env.client.Dashboard(ctx, reconcile.Filter{Status: reconcile.AllStatus})
	require.NoError(t, err)
	require.Equal(t, 1, dash.Counts.Total)
	require.Equal(t, 1, dash.Counts.Pending)
	require.Equal(t, 1, dash.SafetyIssues)

	entries, err := env.client.RecentActivity(ctx, activity.ListOptions{EntityType: activity.EntityWorkLog, EntityID: created.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeWorkLogSubmitted, entries[0].Type)
}

func TestIntegration_StrictRequestTransitions(t *testing.T) {
	ctx := context.Background()
	wf := config.Default().Workflow
	wf.StrictRequestTransitions = true
	ts := testserver.NewWithWorkflow(t, wf)
	c := client.New(ts.URL(), 5*time.Second)

	_, err := c.CreateRequest(ctx, material.Request{MaterialName: "Sand", Quantity: 2, Status: material.RequestDelivered})
	require.True(t, client.IsStatus(err, 409))

	req, err := c.CreateRequest(ctx, material.Request{MaterialName: "Sand", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, material.RequestPending, req.Status)

	req.Status = material.RequestDelivered
	_, err = c.UpdateRequest(ctx, req.ID, *req)
	require.ErrorIs(t, err, faults.ErrNetwork)
	require.True(t, client.IsStatus(err, 409))

	req.Status = material.RequestApproved
	req, err = c.UpdateRequest(ctx, req.ID, *req)
	require.NoError(t, err)
	require.Equal(t, material.RequestApproved, req.Status)
}

func TestIntegration_PermissiveRequestTransitions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	req, err := env.client.CreateRequest(ctx, material.Request{MaterialName: "Sand", Quantity: 2})
	require.NoError(t, err)

	for _, st := range []material.RequestStatus{material.RequestDelivered, material.RequestPending} {
		req.Status = st
		req, err = env.client.UpdateRequest(ctx, req.ID, *req)
		require.NoError(t, err)
		require.Equal(t, st, req.Status)
	}
}

func TestIntegration_MCPOverHTTP(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	proj, task := env.seedTask(t, "Site A")
	require.NoError(t, env.client.SaveAttendance(ctx, "2024-05-01", siteASheet()))
	_, err := env.client.CreateWorkLog(ctx, proj.ID, task.ID, worklog.Input{Date: "2024-05-01", SafetyIssues: " none "})
	require.NoError(t, err)

	mcpClient := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "integration", Version: "0.0.1"}, nil)
	cs, err := mcpClient.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: env.ts.URL() + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "attendance_stats",
		Arguments: map[string]any{"date": "2024-05-01", "project": "Site A"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	var stats reconcile.Stats
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*sdkmcp.TextContent).Text), &stats))
	require.Equal(t, reconcile.Stats{Present: 7, Total: 10}, stats)

	res, err = cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "safety_issue_count", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.JSONEq(t, `{"count":0}`, res.Content[0].(*sdkmcp.TextContent).Text)
}
