package material

import (
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

var (
	// ErrMaterialNotFound indicates the material doesn't exist.
	ErrMaterialNotFound = fmt.Errorf("%w: material not found", faults.ErrNotFound)
	// ErrRequestNotFound indicates the material request doesn't exist.
	ErrRequestNotFound = fmt.Errorf("%w: material request not found", faults.ErrNotFound)
	// ErrInvalidInput indicates invalid material or request input.
	ErrInvalidInput = fmt.Errorf("%w: invalid material input", faults.ErrValidation)
	// ErrInvalidTransition indicates a request status change the guard table rejects.
	ErrInvalidTransition = fmt.Errorf("%w: invalid material request transition", faults.ErrInvalidState)
)
