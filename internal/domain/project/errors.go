package project

import (
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("%w: project not found", faults.ErrNotFound)
	// ErrTaskNotFound indicates the task doesn't exist on the project.
	ErrTaskNotFound = fmt.Errorf("%w: task not found", faults.ErrNotFound)
	// ErrInvalidInput indicates invalid project or task input.
	ErrInvalidInput = fmt.Errorf("%w: invalid project input", faults.ErrValidation)
)
