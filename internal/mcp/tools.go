package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/reconcile"
)

// DashboardParams filters the worklog_dashboard tool. Empty fields match everything.
type DashboardParams struct {
	Status string `json:"status,omitempty" jsonschema:"work log status (draft, submitted, approved) or 'All Status'"`
	Search string `json:"search,omitempty" jsonschema:"case-insensitive substring of the project name"`
	Date   string `json:"date,omitempty" jsonschema:"ISO day (YYYY-MM-DD) to restrict logs to"`
}

// AttendanceStatsParams selects the day and project for attendance_stats.
type AttendanceStatsParams struct {
	Date    string `json:"date" jsonschema:"ISO day (YYYY-MM-DD)"`
	Project string `json:"project" jsonschema:"project name as recorded on attendance rows"`
}

// NoParams is the input of tools that take no arguments.
type NoParams struct{}

// RecentActivityParams narrows the recent_activity feed.
type RecentActivityParams struct {
	EntityType string `json:"entity_type,omitempty" jsonschema:"filter by entity type (worklog, material, material_request, attendance, task)"`
	EntityID   string `json:"entity_id,omitempty" jsonschema:"filter by entity id"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

// SafetyIssueResult is the output of safety_issue_count.
type SafetyIssueResult struct {
	Count int `json:"count"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "worklog_dashboard",
		Description: "List work logs with attendance figures, dashboard counters and the safety-issue count",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DashboardParams) (*sdkmcp.CallToolResult, any, error) {
		dash, err := svc.Reconciler.Dashboard(ctx, reconcile.Filter{Status: in.Status, Search: in.Search, Date: in.Date})
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, dash, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "attendance_stats",
		Description: "Count present and total workers for a project on a day",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AttendanceStatsParams) (*sdkmcp.CallToolResult, any, error) {
		stats, err := svc.Reconciler.AttendanceStats(ctx, in.Date, in.Project)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, stats, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "safety_issue_count",
		Description: "Count work logs across all projects that record a safety issue",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, any, error) {
		count, err := svc.Reconciler.SafetyIssueCount(ctx)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, SafetyIssueResult{Count: count}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "inventory_summary",
		Description: "Inventory statistics: total materials, total value, low and out of stock counts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, any, error) {
		sum, err := svc.Reconciler.InventorySummary(ctx)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, sum, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "material_impact",
		Description: "Compare material usage recorded in work logs against ledger stock without changing it",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, any, error) {
		impact, err := svc.Reconciler.MaterialImpact(ctx)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, impact, nil
	})

	if svc.Activity == nil {
		return
	}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "Recent write activity, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, any, error) {
		entries, err := svc.Activity.Recent(ctx, activity.ListOptions{
			EntityType: in.EntityType,
			EntityID:   in.EntityID,
			Limit:      in.Limit,
		})
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, entries, nil
	})
}
