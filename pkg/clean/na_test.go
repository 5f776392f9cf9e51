package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/testutil"
)

// converted column with nulls at every position of orig, mimicking a batch
// where all three cells failed conversion
func allNullInts(n int) *column.IntColumn {
	c := column.NewIntColumn(n)
	for i := 0; i < n; i++ {
		c.AppendNull()
	}
	return c
}

func TestCheckNAIgnore(t *testing.T) {
	logs := testutil.CaptureLogs(t)

	orig := column.FromStrings([]string{"", "Unknown", "garbage"})
	count, err := CheckNA(orig, allNullInts(3), &Options{Policy: PolicyIgnore})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Zero(t, logs.Len(), "ignore must not log")
}

func TestCheckNAWarn(t *testing.T) {
	logs := testutil.CaptureLogs(t)

	orig := column.FromStrings([]string{"", "Unknown", "garbage"})
	count, err := CheckNA(orig, allNullInts(3), &Options{Policy: PolicyWarn})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.EqualValues(t, 1, ctx["count"])
	assert.Equal(t, []interface{}{"garbage"}, ctx["values"])
}

func TestCheckNAError(t *testing.T) {
	testutil.CaptureLogs(t)

	orig := column.FromStrings([]string{"", "Unknown", "garbage"})
	_, err := CheckNA(orig, allNullInts(3), &Options{Policy: PolicyError})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "garbage")
}

func TestCheckNANoViolations(t *testing.T) {
	logs := testutil.CaptureLogs(t)

	orig := column.FromStrings([]string{"", "NaN"})
	count, err := CheckNA(orig, allNullInts(2), &Options{Policy: PolicyError})
	require.NoError(t, err, "markers alone must never fail the check")
	assert.Equal(t, 0, count)
	assert.Zero(t, logs.Len())
}

func TestCheckNACustomMarkers(t *testing.T) {
	orig := column.FromStrings([]string{"-", "Unknown"})
	count, err := CheckNA(orig, allNullInts(2), &Options{NAMarkers: []string{"-"}})
	require.NoError(t, err)
	// with the override in force "Unknown" is no longer a valid marker
	assert.Equal(t, 1, count)
}

func TestCheckNASampleBounded(t *testing.T) {
	logs := testutil.CaptureLogs(t)

	orig := column.NewStringColumn(30)
	for i := 0; i < 30; i++ {
		orig.Append(string(rune('a'+i)) + "!")
	}
	count, err := CheckNA(orig, allNullInts(30), &Options{Policy: PolicyWarn})
	require.NoError(t, err)
	assert.Equal(t, 30, count)

	entries := logs.All()
	require.Len(t, entries, 1)
	values := entries[0].ContextMap()["values"].([]interface{})
	assert.Len(t, values, 20)
}

func TestCheckNAUnknownPolicy(t *testing.T) {
	orig := column.FromStrings([]string{"x"})
	_, err := CheckNA(orig, allNullInts(1), &Options{Policy: "shrug"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestCheckNALengthMismatch(t *testing.T) {
	orig := column.FromStrings([]string{"x", "y"})
	_, err := CheckNA(orig, allNullInts(1), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
