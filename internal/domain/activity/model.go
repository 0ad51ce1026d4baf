package activity

import "time"

// Type names the write action an entry records.
type Type string

const (
	TypeWorkLogCreated       Type = "worklog_created"
	TypeWorkLogUpdated       Type = "worklog_updated"
	TypeWorkLogSubmitted     Type = "worklog_submitted"
	TypeMaterialCreated      Type = "material_created"
	TypeMaterialUpdated      Type = "material_updated"
	TypeStockConsumed        Type = "stock_consumed"
	TypeRequestCreated       Type = "request_created"
	TypeRequestUpdated       Type = "request_updated"
	TypeRequestDeleted       Type = "request_deleted"
	TypeAttendanceSaved      Type = "attendance_saved"
	TypeProjectCreated       Type = "project_created"
	TypeTaskCreated          Type = "task_created"
	TypeTaskCompletionChange Type = "task_completion_changed"
)

// Entity types.
const (
	EntityWorkLog         = "worklog"
	EntityMaterial        = "material"
	EntityMaterialRequest = "material_request"
	EntityAttendance      = "attendance"
	EntityProject         = "project"
	EntityTask            = "task"
)

// Entry is one line of the append-only activity trail.
type Entry struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Type       Type      `json:"type"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"` // JSON string
	CreatedAt  time.Time `json:"createdAt"`
}
