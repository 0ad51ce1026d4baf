package project_test

import (
	"testing"

	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/stretchr/testify/require"
)

func TestFlattenWorkLogs(t *testing.T) {
	projects := []project.Project{
		{ID: "p1", Name: "Site A", Tasks: []project.Task{
			{ID: "t1", Name: "Foundation", WorkLogs: []worklog.WorkLog{{ID: "l1"}, {ID: "l2"}}},
			{ID: "t2", Name: "Framing"},
		}},
		{ID: "p2", Name: "Site B", Tasks: []project.Task{
			{ID: "t3", Name: "Roofing", WorkLogs: []worklog.WorkLog{{ID: "l3", ProjectName: "stale"}}},
		}},
	}

	logs := project.FlattenWorkLogs(projects)
	require.Len(t, logs, 3)
	require.Equal(t, []string{"l1", "l2", "l3"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})
	require.Equal(t, "Site A", logs[1].ProjectName)
	require.Equal(t, "Foundation", logs[1].TaskName)
	require.Equal(t, "p2", logs[2].ProjectID)
	require.Equal(t, "Site B", logs[2].ProjectName)
	require.Equal(t, "t3", logs[2].TaskID)

	// the tree itself is untouched
	require.Equal(t, "stale", projects[1].Tasks[0].WorkLogs[0].ProjectName)
}

func TestFlattenWorkLogs_Empty(t *testing.T) {
	logs := project.FlattenWorkLogs(nil)
	require.NotNil(t, logs)
	require.Empty(t, logs)
}
