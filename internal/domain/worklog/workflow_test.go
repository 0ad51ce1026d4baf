package worklog_test

import (
	"testing"

	"github.com/rpggio/siteledger/internal/domain/faults"
	"github.com/rpggio/siteledger/internal/domain/worklog"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	require.NoError(t, worklog.ValidateTransition(worklog.StatusDraft, worklog.StatusSubmitted))
	require.NoError(t, worklog.ValidateTransition(worklog.StatusSubmitted, worklog.StatusApproved))
	require.NoError(t, worklog.ValidateTransition(worklog.StatusSubmitted, worklog.StatusSubmitted))

	err := worklog.ValidateTransition(worklog.StatusApproved, worklog.StatusSubmitted)
	require.ErrorIs(t, err, worklog.ErrInvalidTransition)
	require.ErrorIs(t, err, faults.ErrInvalidState)

	require.Error(t, worklog.ValidateTransition(worklog.StatusDraft, worklog.StatusApproved))
	require.Error(t, worklog.ValidateTransition(worklog.StatusSubmitted, worklog.StatusDraft))
}
