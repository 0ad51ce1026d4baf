package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/siteledger/internal/domain/attendance"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_ReplaceDay(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	first := []attendance.Record{
		{EmployeeID: "e1", Name: "Asha", Project: "Site A", Status: attendance.StatusPresent, CheckIn: "08:00"},
		{EmployeeID: "e2", Name: "Ravi", Project: "Site A", Status: attendance.StatusAbsent, Reason: "Sick"},
	}
	require.NoError(t, repo.ReplaceDay(ctx, "2024-05-01", first))
	require.NoError(t, repo.ReplaceDay(ctx, "2024-05-02", first[:1]))

	got, err := repo.ListByDate(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, first, got)

	second := []attendance.Record{{EmployeeID: "e3", Name: "Meena", Project: "Site B", Status: attendance.StatusLate}}
	require.NoError(t, repo.ReplaceDay(ctx, "2024-05-01", second))

	got, err = repo.ListByDate(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, second, got)

	other, err := repo.ListByDate(ctx, "2024-05-02")
	require.NoError(t, err)
	require.Len(t, other, 1)
}

func TestAttendanceRepository_ReplaceDayIsAtomic(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	good := []attendance.Record{{EmployeeID: "e1", Project: "Site A", Status: attendance.StatusPresent}}
	require.NoError(t, repo.ReplaceDay(ctx, "2024-05-01", good))

	bad := []attendance.Record{
		{EmployeeID: "e2", Project: "Site A", Status: attendance.StatusPresent},
		{EmployeeID: "e3", Project: "Site A", Status: "Vacation"},
	}
	require.Error(t, repo.ReplaceDay(ctx, "2024-05-01", bad))

	got, err := repo.ListByDate(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Equal(t, good, got)
}

func TestAttendanceRepository_EmptyDay(t *testing.T) {
	db := NewTestDB(t)
	got, err := NewAttendanceRepository(db).ListByDate(context.Background(), "2030-01-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
