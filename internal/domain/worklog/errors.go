package worklog

import (
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

var (
	// ErrLogNotFound indicates the work log doesn't exist.
	ErrLogNotFound = fmt.Errorf("%w: work log not found", faults.ErrNotFound)
	// ErrTaskNotFound indicates the parent project/task pair doesn't exist.
	ErrTaskNotFound = fmt.Errorf("%w: task not found", faults.ErrNotFound)
	// ErrMissingLinkage indicates a create/update without project or task id.
	ErrMissingLinkage = fmt.Errorf("%w: project and task are required", faults.ErrValidation)
	// ErrMissingIdentifiers indicates a submit without project, task or log id.
	ErrMissingIdentifiers = fmt.Errorf("%w: work log is missing project, task or log id", faults.ErrInvalidState)
	// ErrInvalidTransition indicates a lifecycle move the workflow forbids.
	ErrInvalidTransition = fmt.Errorf("%w: invalid work log transition", faults.ErrInvalidState)
	// ErrLogLocked indicates an edit to an approved log.
	ErrLogLocked = fmt.Errorf("%w: approved work logs cannot be edited", faults.ErrInvalidState)
)
