package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slurmframe/slurmframe/pkg/clean"
	"github.com/slurmframe/slurmframe/pkg/column"
)

func TestKindOfDefaults(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, KindDuration, r.KindOf("Elapsed"))
	assert.Equal(t, KindMemory, r.KindOf("ReqMem"))
	assert.Equal(t, KindDateTime, r.KindOf("Start"))
	assert.Equal(t, KindCategory, r.KindOf("State"))
	assert.Equal(t, KindString, r.KindOf("SomethingNew"))
}

func TestKindOfOverrides(t *testing.T) {
	r := NewRegistry(map[string]Kind{"Elapsed": KindString})
	assert.Equal(t, KindString, r.KindOf("Elapsed"))
	assert.Equal(t, KindDuration, r.KindOf("Timelimit"))
}

func TestKindValid(t *testing.T) {
	assert.True(t, KindDuration.Valid())
	assert.True(t, KindMemory.Valid())
	assert.False(t, Kind("bogus").Valid())
}

func TestApply(t *testing.T) {
	header := []string{"JobID", "State", "ReqMem", "Elapsed", "NCPUS", "Start"}
	rows := [][]string{
		{"101", "COMPLETED", "4Gn", "1-02:03:04", "8", "2024-03-01T10:00:00"},
		{"102", "FAILED", "2Gc", "15:00", "4", "2024-03-01T11:00:00"},
		{"103", "PENDING", "", "Unknown", "", "Unknown"},
	}

	frame, err := Apply(header, rows, nil, clean.DefaultOptions())
	require.NoError(t, err)

	// ReqMem expands into magnitude plus per-CPU flag
	require.Equal(t, []string{"JobID", "State", "ReqMem", "ReqMemPerCPU", "Elapsed", "NCPUS", "Start"}, frame.Names())
	require.Equal(t, 3, frame.Len())

	state, ok := frame.Column(1).(*column.CategoryColumn)
	require.True(t, ok)
	assert.Equal(t, "COMPLETED", state.String(0))

	mem, ok := frame.Column(2).(*column.IntColumn)
	require.True(t, ok)
	assert.Equal(t, int64(4)<<30, mem.Int(0))
	assert.True(t, mem.IsNull(2))

	perCPU, ok := frame.Column(3).(*column.BoolColumn)
	require.True(t, ok)
	assert.False(t, perCPU.Bool(0))
	assert.True(t, perCPU.Bool(1))

	elapsed, ok := frame.Column(4).(*column.DurationColumn)
	require.True(t, ok)
	assert.Equal(t, 26*time.Hour+3*time.Minute+4*time.Second, elapsed.Duration(0))
	assert.True(t, elapsed.IsNull(2))

	ncpus, ok := frame.Column(5).(*column.IntColumn)
	require.True(t, ok)
	assert.Equal(t, int64(8), ncpus.Int(0))
	assert.True(t, ncpus.IsNull(2))
}

func TestApplyShortRowsPadWithNulls(t *testing.T) {
	header := []string{"JobID", "State"}
	rows := [][]string{{"101"}}

	frame, err := Apply(header, rows, nil, nil)
	require.NoError(t, err)
	assert.True(t, frame.Column(1).IsNull(0))
}

func TestApplyLongRowFails(t *testing.T) {
	header := []string{"JobID"}
	rows := [][]string{{"101", "extra"}}

	_, err := Apply(header, rows, nil, nil)
	require.Error(t, err)
}

func TestFrameRow(t *testing.T) {
	header := []string{"JobID", "NCPUS"}
	rows := [][]string{{"101", "8"}, {"102", "junk"}}

	frame, err := Apply(header, rows, nil, nil)
	require.NoError(t, err)

	row := frame.Row(0)
	assert.Equal(t, "101", row["JobID"])
	assert.Equal(t, int64(8), row["NCPUS"])

	row = frame.Row(1)
	assert.Nil(t, row["NCPUS"], "failed cells surface as nil")
}
