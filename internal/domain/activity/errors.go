package activity

import (
	"fmt"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

// ErrInvalidInput indicates an empty activity entry.
var ErrInvalidInput = fmt.Errorf("%w: invalid activity input", faults.ErrValidation)
