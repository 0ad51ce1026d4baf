package attendance

import "strings"

// Status is an employee's presence for one day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half Day"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// CountsAsPresent reports whether the employee was on site at all that day.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// Record is one employee's attendance for a single calendar date. Project is
// a free-text label: some senders put the project name, others its id.
type Record struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Name       string `json:"name"`
	Project    string `json:"project"`
	Status     Status `json:"status" validate:"required"`
	CheckIn    string `json:"checkIn,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Day is the full attendance sheet for one date.
type Day struct {
	Date      string   `json:"date"`
	Employees []Record `json:"employees"`
}

// ProjectKey normalizes a project label for matching: trimmed, lower-cased.
func ProjectKey(project string) string {
	return strings.ToLower(strings.TrimSpace(project))
}
