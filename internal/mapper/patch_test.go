package mapper_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/mapper"
)

func TestPatchCarriesOnlySetFields(t *testing.T) {
	patch := mapper.NewPatch().
		Set("projectName", "Renamed").
		Set("progress", 0).
		Set("isEditingConfirmedByClient", false).
		Set("notes", nil)

	require.Equal(t, 4, patch.Len())
	require.Equal(t,
		[]string{"is_editing_confirmed_by_client", "notes", "progress", "project_name"},
		patch.Columns())

	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	row := patch.Row(now)

	require.Equal(t, "Renamed", row["project_name"])
	require.Equal(t, float64(0), row["progress"])
	require.Equal(t, false, row["is_editing_confirmed_by_client"])
	require.Contains(t, row, "notes")
	require.Nil(t, row["notes"])
	require.Equal(t, mapper.Timestamp(now), row["updated_at"])
}

func TestPatchReducesValuesToJSON(t *testing.T) {
	patch := mapper.NewPatch().
		Set("totalCost", decimal.RequireFromString("2500.00")).
		Set("activeSubStatuses", []string{"Editing"})

	row := patch.Row(time.Now())
	require.Equal(t, "2500", row["total_cost"])
	require.Equal(t, []any{"Editing"}, row["active_sub_statuses"])
}

func TestPatchRowDoesNotConsume(t *testing.T) {
	patch := mapper.NewPatch().Set("name", "A")
	_ = patch.Row(time.Now())
	row := patch.Row(time.Now())
	require.Equal(t, "A", row["name"])
}
