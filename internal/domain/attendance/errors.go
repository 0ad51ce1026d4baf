package attendance

import (
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

var (
	// ErrInvalidRecord indicates an attendance record failed validation.
	ErrInvalidRecord = fmt.Errorf("%w: invalid attendance record", faults.ErrValidation)
	// ErrInvalidStatus indicates an unknown attendance status.
	ErrInvalidStatus = fmt.Errorf("%w: invalid attendance status", faults.ErrValidation)
)
