package worklog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rpggio/siteledger/internal/domain/attendance"
)

// Status is the lifecycle state of a work log.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
)

// Valid reports whether s is a known work log status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusSubmitted || s == StatusApproved
}

const (
	// NoSafetyIssue is the stored sentinel for "nothing to report". Historical
	// data uses it in any casing and with stray whitespace.
	NoSafetyIssue = "None"
	// DefaultUnit is the unit given to usage rows that arrive without one.
	DefaultUnit = "Nos"
)

// MaterialUsage is one persisted row of materials consumed by the work.
type MaterialUsage struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// WorkerRef is the snapshot of one present worker taken when a log is saved.
type WorkerRef struct {
	EmployeeID string            `json:"employeeId"`
	Name       string            `json:"name"`
	Status     attendance.Status `json:"status"`
}

// WorkLog is a dated record of work done on one task. ProjectID, ProjectName,
// TaskID and TaskName are denormalized from the parent task for display and
// for the attendance join.
type WorkLog struct {
	ID             string          `json:"_id"`
	ProjectID      string          `json:"projectId"`
	ProjectName    string          `json:"projectName"`
	TaskID         string          `json:"taskId"`
	TaskName       string          `json:"taskName"`
	Date           string          `json:"date"`
	WorkProgress   string          `json:"workProgress"`
	SafetyIssues   string          `json:"safetyIssues"`
	Weather        string          `json:"weather"`
	MaterialsUsed  []MaterialUsage `json:"materialsUsed"`
	Images         []string        `json:"images"`
	WorkersPresent []WorkerRef     `json:"workersPresent"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// HasSafetyIssue reports whether the log records a real safety issue: the
// field is non-blank and not the "none" sentinel in any casing.
func (l WorkLog) HasSafetyIssue() bool {
	v := strings.ToLower(strings.TrimSpace(l.SafetyIssues))
	return v != "" && v != strings.ToLower(NoSafetyIssue)
}

// ResolveID applies the identifier fallback chain: the first non-blank id
// wins.
func ResolveID(ids ...string) string {
	return firstNonBlank(ids...)
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// UnmarshalJSON accepts the legacy identifier keys: "_id" wins, then "id",
// then "logId".
func (l *WorkLog) UnmarshalJSON(data []byte) error {
	type plain WorkLog
	var wire struct {
		plain
		LegacyID string `json:"id"`
		LogID    string `json:"logId"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*l = WorkLog(wire.plain)
	l.ID = ResolveID(wire.plain.ID, wire.LegacyID, wire.LogID)
	return nil
}

// Input is the editable part of a work log as submitted by the site form.
type Input struct {
	Date          string       `json:"date"`
	WorkProgress  string       `json:"workProgress"`
	SafetyIssues  string       `json:"safetyIssues"`
	Weather       string       `json:"weather"`
	MaterialsUsed []UsageInput `json:"materialsUsed"`
	Images        []string     `json:"images"`
}

// UsageInput is a usage row as sent by either form generation: the newer
// {materialName, quantityUsed} shape or the persisted {name, quantity, unit}.
type UsageInput struct {
	MaterialName string   `json:"materialName,omitempty"`
	QuantityUsed Quantity `json:"quantityUsed,omitempty"`
	Name         string   `json:"name,omitempty"`
	Quantity     Quantity `json:"quantity,omitempty"`
	Unit         string   `json:"unit,omitempty"`
}

// Quantity is a usage amount kept verbatim as text. It decodes from a JSON
// string or number.
type Quantity string

// UnmarshalJSON accepts "5", 5 and 5.5.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = Quantity(n.String())
	return nil
}

// TaskRef locates the task a log belongs to, with names for denormalization.
type TaskRef struct {
	ProjectID   string
	ProjectName string
	TaskID      string
	TaskName    string
}
