package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `siteledger reconciles construction-site daily work logs against attendance and the material ledger.

Model:
- Project: a site with tasks. Each task carries dated work logs.
- Work log: progress notes, weather, safety issues, materials used. Status draft -> submitted -> approved.
- Attendance: one sheet per day of employees with status Present, Absent, Late or Half Day, each tagged with a project name.
- Material ledger: current stock, reorder level, unit price per material.

Tools are read-only:
1) worklog_dashboard for the filtered log list with present/total workers per log.
2) attendance_stats for one (date, project) pair. Present counts Present, Late and Half Day.
3) safety_issue_count and inventory_summary for the headline numbers.
4) material_impact to compare recorded usage with ledger stock. Stock is never changed by logging usage.
5) recent_activity to see what was written recently.

Docs:
- siteledger://docs/reconciliation
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "siteledger://docs/reconciliation",
		Name:        "docs_reconciliation",
		Title:       "Reconciliation rules",
		Description: "How work logs, attendance and materials are joined and counted.",
		Content: `# Reconciliation rules

## Attendance join

A work log is matched to attendance rows by its calendar day and its project name.
Project names are compared after trimming, ignoring case.
Total is every row for that project on that day. Present counts Present, Late and Half Day.
A day whose attendance cannot be loaded counts as 0 of 0.

## Dashboard counters

- total: every log.
- week: logs dated within the current Sunday to Saturday week.
- pending: logs with status submitted.
- draft: logs with status draft.

## Safety issues

A log has a safety issue when the field is non-blank and is not "None" in any casing.

## Materials

Usage rows are free text. Quantities that do not parse as numbers are reported as unparsed rows.
Usage names are matched to ledger materials case-insensitively after trimming.
Projected stock is current stock minus recorded consumption; it is a report only.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
