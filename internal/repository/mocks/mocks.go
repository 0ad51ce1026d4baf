package mocks

import (
	"context"
	"time"

	"github.com/rpggio/siteledger/internal/domain/activity"
	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) CreateTask(ctx context.Context, task *project.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *ProjectRepository) SetTaskCompletion(ctx context.Context, projectID, taskID string, completedAt *time.Time) error {
	args := m.Called(ctx, projectID, taskID, completedAt)
	return args.Error(0)
}

func (m *ProjectRepository) LocateTask(ctx context.Context, projectID, taskID string) (*worklog.TaskRef, error) {
	args := m.Called(ctx, projectID, taskID)
	if ref, ok := args.Get(0).(*worklog.TaskRef); ok {
		return ref, args.Error(1)
	}
	return nil, args.Error(1)
}

// WorkLogRepository is a mock for worklog.Repository.
type WorkLogRepository struct {
	mock.Mock
}

func (m *WorkLogRepository) Create(ctx context.Context, log *worklog.WorkLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *WorkLogRepository) Get(ctx context.Context, id string) (*worklog.WorkLog, error) {
	args := m.Called(ctx, id)
	if log, ok := args.Get(0).(*worklog.WorkLog); ok {
		return log, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkLogRepository) Update(ctx context.Context, log *worklog.WorkLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *WorkLogRepository) UpdateStatus(ctx context.Context, id string, status worklog.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// AttendanceRepository is a mock for attendance.Repository.
type AttendanceRepository struct {
	mock.Mock
}

func (m *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	args := m.Called(ctx, date)
	if list, ok := args.Get(0).([]attendance.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AttendanceRepository) ReplaceDay(ctx context.Context, date string, records []attendance.Record) error {
	args := m.Called(ctx, date, records)
	return args.Error(0)
}

// AttendanceSource is a mock for worklog.AttendanceSource and the
// reconciliation attendance source.
type AttendanceSource struct {
	mock.Mock
}

func (m *AttendanceSource) RecordsForDate(ctx context.Context, date string) ([]attendance.Record, error) {
	args := m.Called(ctx, date)
	if list, ok := args.Get(0).([]attendance.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MaterialRepository is a mock for material.Repository.
type MaterialRepository struct {
	mock.Mock
}

func (m *MaterialRepository) List(ctx context.Context) ([]material.Material, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]material.Material); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MaterialRepository) Get(ctx context.Context, id string) (*material.Material, error) {
	args := m.Called(ctx, id)
	if mat, ok := args.Get(0).(*material.Material); ok {
		return mat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MaterialRepository) Create(ctx context.Context, mat *material.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}

func (m *MaterialRepository) Update(ctx context.Context, mat *material.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}

// MaterialRequestRepository is a mock for material.RequestRepository.
type MaterialRequestRepository struct {
	mock.Mock
}

func (m *MaterialRequestRepository) List(ctx context.Context) ([]material.Request, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]material.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MaterialRequestRepository) Get(ctx context.Context, id string) (*material.Request, error) {
	args := m.Called(ctx, id)
	if req, ok := args.Get(0).(*material.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MaterialRequestRepository) Create(ctx context.Context, req *material.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MaterialRequestRepository) Update(ctx context.Context, req *material.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MaterialRequestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// StockConsumer is a mock for worklog.StockConsumer.
type StockConsumer struct {
	mock.Mock
}

func (m *StockConsumer) Consume(ctx context.Context, name string, quantity float64) error {
	args := m.Called(ctx, name, quantity)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
