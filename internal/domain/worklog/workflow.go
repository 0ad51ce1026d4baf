package worklog

import "fmt"

// ValidateTransition checks a lifecycle move. Logs go draft -> submitted ->
// approved and never back; staying in the same state is allowed.
func ValidateTransition(from, to Status) error {
	if from == to {
		return nil
	}
	valid := false
	switch from {
	case StatusDraft:
		valid = to == StatusSubmitted
	case StatusSubmitted:
		valid = to == StatusApproved
	}
	if !valid {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
