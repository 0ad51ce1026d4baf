package worklog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/rpggio/siteledger/internal/repository"
	"github.com/rpggio/siteledger/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var siteATask = &worklog.TaskRef{ProjectID: "p1", ProjectName: "Site A", TaskID: "t1", TaskName: "Foundation"}

func siteASheet() []attendance.Record {
	return []attendance.Record{
		{EmployeeID: "e1", Name: "Asha", Project: "Site A", Status: attendance.StatusPresent},
		{EmployeeID: "e2", Name: "Ravi", Project: "site a ", Status: attendance.StatusLate},
		{EmployeeID: "e3", Name: "Meena", Project: "Site A", Status: attendance.StatusAbsent},
		{EmployeeID: "e4", Name: "Kiran", Project: "Site B", Status: attendance.StatusPresent},
	}
}

func TestWorkLogService_CreateDraft(t *testing.T) {
	ctx := context.Background()

	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	sheet := &mocks.AttendanceSource{}
	tasks.On("LocateTask", ctx, "p1", "t1").Return(siteATask, nil)
	sheet.On("RecordsForDate", ctx, "2024-05-01").Return(siteASheet(), nil)
	logs.On("Create", ctx, mock.AnythingOfType("*worklog.WorkLog")).Return(nil)

	svc := worklog.NewService(logs, tasks, sheet, nil, nil)
	created, err := svc.Create(ctx, "p1", "t1", worklog.Input{
		Date:          "2024-05-01T09:30:00Z",
		WorkProgress:  "Poured footings",
		MaterialsUsed: []worklog.UsageInput{{MaterialName: "Cement", QuantityUsed: "5"}},
	})
	require.NoError(t, err)

	require.NotEmpty(t, created.ID)
	require.Equal(t, worklog.StatusDraft, created.Status)
	require.Equal(t, "2024-05-01", created.Date)
	require.Equal(t, "Site A", created.ProjectName)
	require.Equal(t, "Foundation", created.TaskName)
	require.Equal(t, worklog.NoSafetyIssue, created.SafetyIssues)
	require.Equal(t, []worklog.MaterialUsage{{Name: "Cement", Quantity: "5", Unit: "Nos"}}, created.MaterialsUsed)
	require.Equal(t, []worklog.WorkerRef{
		{EmployeeID: "e1", Name: "Asha", Status: attendance.StatusPresent},
		{EmployeeID: "e2", Name: "Ravi", Status: attendance.StatusLate},
	}, created.WorkersPresent)
	logs.AssertExpectations(t)
}

func TestWorkLogService_CreateMissingLinkage(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}

	svc := worklog.NewService(logs, tasks, nil, nil, nil)
	_, err := svc.Create(ctx, "", "t1", worklog.Input{Date: "2024-05-01"})
	require.ErrorIs(t, err, worklog.ErrMissingLinkage)
	require.ErrorIs(t, err, faults.ErrValidation)

	_, err = svc.Create(ctx, "p1", " ", worklog.Input{Date: "2024-05-01"})
	require.ErrorIs(t, err, worklog.ErrMissingLinkage)
	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWorkLogService_CreateUnknownTask(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	tasks.On("LocateTask", ctx, "p1", "nope").Return((*worklog.TaskRef)(nil), repository.ErrNotFound)

	svc := worklog.NewService(logs, tasks, nil, nil, nil)
	_, err := svc.Create(ctx, "p1", "nope", worklog.Input{Date: "2024-05-01"})
	require.ErrorIs(t, err, worklog.ErrTaskNotFound)
}

func TestWorkLogService_CreateAttendanceFailureIsSoft(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	sheet := &mocks.AttendanceSource{}
	tasks.On("LocateTask", ctx, "p1", "t1").Return(siteATask, nil)
	sheet.On("RecordsForDate", ctx, "2024-05-01").Return(nil, errors.New("backend down"))
	logs.On("Create", ctx, mock.Anything).Return(nil)

	svc := worklog.NewService(logs, tasks, sheet, nil, nil)
	created, err := svc.Create(ctx, "p1", "t1", worklog.Input{Date: "2024-05-01"})
	require.NoError(t, err)
	require.NotNil(t, created.WorkersPresent)
	require.Empty(t, created.WorkersPresent)
}

func TestWorkLogService_CreateConsumesStockWhenLinked(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	stock := &mocks.StockConsumer{}
	tasks.On("LocateTask", ctx, "p1", "t1").Return(siteATask, nil)
	logs.On("Create", ctx, mock.Anything).Return(nil)
	stock.On("Consume", ctx, "Cement", 5.0).Return(nil)

	svc := worklog.NewService(logs, tasks, nil, nil, nil).WithStockConsumer(stock)
	_, err := svc.Create(ctx, "p1", "t1", worklog.Input{
		Date: "2024-05-01",
		MaterialsUsed: []worklog.UsageInput{
			{MaterialName: "Cement", QuantityUsed: "5"},
			{MaterialName: "Gravel", QuantityUsed: "some"},
		},
	})
	require.NoError(t, err)
	stock.AssertExpectations(t)
	stock.AssertNumberOfCalls(t, "Consume", 1)
}

func TestWorkLogService_UpdateKeepsStatus(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	tasks.On("LocateTask", ctx, "p1", "t1").Return(siteATask, nil)
	logs.On("Get", ctx, "log-1").Return(&worklog.WorkLog{ID: "log-1", TaskID: "t1", Status: worklog.StatusSubmitted}, nil)
	logs.On("Update", ctx, mock.Anything).Return(nil)

	svc := worklog.NewService(logs, tasks, nil, nil, nil)
	updated, err := svc.Update(ctx, "p1", "t1", "log-1", worklog.Input{Date: "2024-05-02", SafetyIssues: "Open trench"})
	require.NoError(t, err)
	require.Equal(t, worklog.StatusSubmitted, updated.Status)
	require.Equal(t, "Open trench", updated.SafetyIssues)
	require.Equal(t, "2024-05-02", updated.Date)
}

func TestWorkLogService_UpdateApprovedIsLocked(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	tasks.On("LocateTask", ctx, "p1", "t1").Return(siteATask, nil)
	logs.On("Get", ctx, "log-1").Return(&worklog.WorkLog{ID: "log-1", TaskID: "t1", Status: worklog.StatusApproved}, nil)

	svc := worklog.NewService(logs, tasks, nil, nil, nil)
	_, err := svc.Update(ctx, "p1", "t1", "log-1", worklog.Input{Date: "2024-05-02"})
	require.ErrorIs(t, err, worklog.ErrLogLocked)
	logs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestWorkLogService_UpdateWrongTask(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	tasks := &mocks.ProjectRepository{}
	tasks.On("LocateTask", ctx, "p1", "t1").Return(siteATask, nil)
	logs.On("Get", ctx, "log-9").Return(&worklog.WorkLog{ID: "log-9", TaskID: "t2", Status: worklog.StatusDraft}, nil)

	svc := worklog.NewService(logs, tasks, nil, nil, nil)
	_, err := svc.Update(ctx, "p1", "t1", "log-9", worklog.Input{Date: "2024-05-02"})
	require.ErrorIs(t, err, worklog.ErrLogNotFound)
}

func TestWorkLogService_SubmitMissingIdentifiers(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	svc := worklog.NewService(logs, &mocks.ProjectRepository{}, nil, nil, nil)

	for _, l := range []worklog.WorkLog{
		{ProjectID: "p1", TaskID: "t1"},
		{ID: "log-1", TaskID: "t1"},
		{ID: "log-1", ProjectID: "p1"},
	} {
		_, err := svc.SubmitForApproval(ctx, l)
		require.ErrorIs(t, err, worklog.ErrMissingIdentifiers)
		require.ErrorIs(t, err, faults.ErrInvalidState)
	}
	logs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkLogService_SubmitChangesOnlyStatus(t *testing.T) {
	ctx := context.Background()
	stored := worklog.WorkLog{
		ID:           "log-1",
		ProjectID:    "p1",
		ProjectName:  "Site A",
		TaskID:       "t1",
		TaskName:     "Foundation",
		Date:         "2024-05-01",
		WorkProgress: "Framing",
		SafetyIssues: "None",
		Status:       worklog.StatusDraft,
	}
	logs := &mocks.WorkLogRepository{}
	logs.On("Get", ctx, "log-1").Return(&stored, nil)
	logs.On("UpdateStatus", ctx, "log-1", worklog.StatusSubmitted).Return(nil)

	// Body fields other than the identifiers are ignored.
	in := worklog.WorkLog{
		ID:           "log-1",
		ProjectID:    "p1",
		TaskID:       "t1",
		WorkProgress: "Something else",
		SafetyIssues: "Fire",
	}
	svc := worklog.NewService(logs, &mocks.ProjectRepository{}, nil, nil, nil)
	out, err := svc.SubmitForApproval(ctx, in)
	require.NoError(t, err)

	want := stored
	want.Status = worklog.StatusSubmitted
	require.Equal(t, want, *out)
	logs.AssertExpectations(t)
}

func TestWorkLogService_SubmitForeignLinkage(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	logs.On("Get", ctx, "log-1").Return(&worklog.WorkLog{ID: "log-1", ProjectID: "p1", TaskID: "t1", Status: worklog.StatusDraft}, nil)
	svc := worklog.NewService(logs, &mocks.ProjectRepository{}, nil, nil, nil)

	for _, l := range []worklog.WorkLog{
		{ID: "log-1", ProjectID: "p2", TaskID: "t1"},
		{ID: "log-1", ProjectID: "p1", TaskID: "t9"},
		{ID: "log-1", ProjectID: "bogus", TaskID: "bogus"},
	} {
		_, err := svc.SubmitForApproval(ctx, l)
		require.ErrorIs(t, err, worklog.ErrMissingIdentifiers)
		require.ErrorIs(t, err, faults.ErrInvalidState)
	}
	logs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkLogService_SubmitApprovedRejected(t *testing.T) {
	ctx := context.Background()
	logs := &mocks.WorkLogRepository{}
	logs.On("Get", ctx, "log-1").Return(&worklog.WorkLog{ID: "log-1", ProjectID: "p1", TaskID: "t1", Status: worklog.StatusApproved}, nil)

	svc := worklog.NewService(logs, &mocks.ProjectRepository{}, nil, nil, nil)
	_, err := svc.SubmitForApproval(ctx, worklog.WorkLog{ID: "log-1", ProjectID: "p1", TaskID: "t1"})
	require.ErrorIs(t, err, worklog.ErrInvalidTransition)
}
