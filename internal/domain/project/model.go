package project

import (
	"encoding/json"
	"time"

	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// Status is the delivery state of a project.
type Status string

const (
	StatusPlanning   Status = "Planning"
	StatusInProgress Status = "In Progress"
	StatusOnHold     Status = "On Hold"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is a known project status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

// Project is a construction project with its task tree.
type Project struct {
	ID              string    `json:"_id"`
	Name            string    `json:"name" validate:"required"`
	Status          Status    `json:"status"`
	Priority        string    `json:"priority,omitempty"`
	AssignedWorkers []string  `json:"assignedWorkers"`
	StartDate       string    `json:"startDate,omitempty"`
	EndDate         string    `json:"endDate,omitempty"`
	Tasks           []Task    `json:"tasks"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AssignedWorkerCount is the number of workers on the project.
func (p Project) AssignedWorkerCount() int {
	return len(p.AssignedWorkers)
}

// MarshalJSON adds the read-only assignedWorkerCount next to the roster.
func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	return json.Marshal(struct {
		plain
		AssignedWorkerCount int `json:"assignedWorkerCount"`
	}{plain(p), p.AssignedWorkerCount()})
}

// Task is a unit of work on a project. Work logs hang off tasks.
type Task struct {
	ID            string            `json:"_id"`
	ProjectID     string            `json:"projectId"`
	Name          string            `json:"name" validate:"required"`
	IsCompleted   bool              `json:"isCompleted"`
	CompletedDate *time.Time        `json:"completedDate,omitempty"`
	WorkLogs      []worklog.WorkLog `json:"workLogs"`
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name            string   `json:"name" validate:"required"`
	Status          Status   `json:"status"`
	Priority        string   `json:"priority"`
	AssignedWorkers []string `json:"assignedWorkers"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
}

// TaskRequest defines task creation inputs.
type TaskRequest struct {
	Name string `json:"name" validate:"required"`
}
