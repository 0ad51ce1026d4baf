package project_test

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestProject_AssignedWorkerCount(t *testing.T) {
	proj := project.Project{ID: "p1", Name: "Site A", AssignedWorkers: []string{"e1", "e2", "e3"}}
	require.Equal(t, 3, proj.AssignedWorkerCount())
	require.Equal(t, 0, project.Project{}.AssignedWorkerCount())

	raw, err := json.Marshal(proj)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Equal(t, float64(3), fields["assignedWorkerCount"])
	require.Equal(t, "p1", fields["_id"])

	var back project.Project
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, proj.AssignedWorkers, back.AssignedWorkers)
	require.Equal(t, 3, back.AssignedWorkerCount())
}
