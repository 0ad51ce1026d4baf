package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/material"
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// APIError is the JSON body of every failed request.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to an HTTP status and error body.
func MapError(err error) (int, *APIError) {
	switch {
	case errors.Is(err, worklog.ErrMissingLinkage):
		return http.StatusBadRequest, &APIError{Code: "MISSING_LINKAGE", Message: err.Error(), RecoveryHint: "Select a project and task first"}
	case errors.Is(err, worklog.ErrMissingIdentifiers):
		return http.StatusConflict, &APIError{Code: "MISSING_IDENTIFIERS", Message: err.Error(), RecoveryHint: "Reload the log before submitting"}
	case errors.Is(err, worklog.ErrLogLocked):
		return http.StatusConflict, &APIError{Code: "LOG_LOCKED", Message: err.Error(), RecoveryHint: "Approved logs are read-only"}
	case errors.Is(err, worklog.ErrInvalidTransition), errors.Is(err, material.ErrInvalidTransition):
		return http.StatusConflict, &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Check valid transitions"}
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, project.ErrTaskNotFound), errors.Is(err, worklog.ErrTaskNotFound):
		return http.StatusNotFound, &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Refresh the project list"}
	case errors.Is(err, faults.ErrNotFound):
		return http.StatusNotFound, &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling"}
	case errors.Is(err, faults.ErrValidation):
		return http.StatusBadRequest, &APIError{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, faults.ErrInvalidState):
		return http.StatusConflict, &APIError{Code: "INVALID_STATE", Message: err.Error()}
	default:
		return http.StatusInternalServerError, &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := MapError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", apiErr.Code, "error", err)
	}
	writeJSON(w, status, apiErr)
}

var errBadBody = fmt.Errorf("%w: malformed request body", faults.ErrValidation)

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}
