package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/repository"
	"github.com/rpggio/siteledger/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaults(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil)
	proj, err := svc.Create(ctx, project.CreateRequest{Name: "  Riverside Tower "})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Riverside Tower", proj.Name)
	require.Equal(t, project.StatusPlanning, proj.Status)
	require.NotNil(t, proj.Tasks)
	require.NotNil(t, proj.AssignedWorkers)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, project.CreateRequest{Name: ""})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	require.ErrorIs(t, err, faults.ErrValidation)

	_, err = svc.Create(ctx, project.CreateRequest{Name: "X", Status: "Abandoned"})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_AddTaskUnknownProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return((*project.Project)(nil), repository.ErrNotFound)

	svc := project.NewService(repo, nil, nil)
	_, err := svc.AddTask(ctx, "missing", project.TaskRequest{Name: "Roofing"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	repo.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestProjectService_SetTaskCompletion(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("SetTaskCompletion", ctx, "p1", "t1", mock.MatchedBy(func(at *time.Time) bool { return at != nil })).Return(nil).Once()
	repo.On("SetTaskCompletion", ctx, "p1", "t1", (*time.Time)(nil)).Return(nil).Once()
	repo.On("SetTaskCompletion", ctx, "p1", "t9", mock.Anything).Return(repository.ErrNotFound)

	svc := project.NewService(repo, nil, nil)
	require.NoError(t, svc.SetTaskCompletion(ctx, "p1", "t1", true))
	require.NoError(t, svc.SetTaskCompletion(ctx, "p1", "t1", false))
	require.ErrorIs(t, svc.SetTaskCompletion(ctx, "p1", "t9", true), project.ErrTaskNotFound)
	repo.AssertExpectations(t)
}
