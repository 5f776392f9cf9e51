package clean

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
)

func TestParseDurationGrammars(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"2-03:04:05", 2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second},
		{"2-03:04", 2*24*time.Hour + 3*time.Hour + 4*time.Minute},
		{"2-03", 2*24*time.Hour + 3*time.Hour},
		{"03:04:05", 3*time.Hour + 4*time.Minute + 5*time.Second},
		{"04:05", 4*time.Minute + 5*time.Second},
		{"10", 10 * time.Minute},
		{"1:02:03.5", time.Hour + 2*time.Minute + 3*time.Second + 500*time.Millisecond},
		{"0:30.25", 30*time.Second + 250*time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, ok, err := ParseDuration(tt.in)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestParseDurationNAMarkers(t *testing.T) {
	for _, in := range []string{"", "Unknown", "NaT"} {
		d, ok, err := ParseDuration(in)
		require.NoError(t, err, "input %q", in)
		assert.False(t, ok, "input %q should be null", in)
		assert.Equal(t, time.Duration(0), d)
	}
}

func TestParseDurationBogus(t *testing.T) {
	_, ok, err := ParseDuration("bogus")
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFormat))
	assert.Contains(t, err.Error(), "bogus")
}

func TestToDurationSoftFailure(t *testing.T) {
	v := column.FromStrings([]string{"10", "bogus", "Unknown", "1-00"})
	x, err := ToDuration(v, nil)
	require.NoError(t, err)

	require.Equal(t, 4, x.Len())
	assert.Equal(t, 10*time.Minute, x.Duration(0))
	assert.True(t, x.IsNull(1))
	assert.True(t, x.IsNull(2))
	assert.Equal(t, 24*time.Hour, x.Duration(3))
}

func TestToDurationErrorPolicy(t *testing.T) {
	v := column.FromStrings([]string{"10", "bogus"})
	_, err := ToDuration(v, &Options{Policy: PolicyError})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	// NA markers stay soft under the error policy
	v = column.FromStrings([]string{"10", "Unknown"})
	x, err := ToDuration(v, &Options{Policy: PolicyError})
	require.NoError(t, err)
	assert.True(t, x.IsNull(1))
}

func TestFormatDurationValue(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{10 * time.Minute, "00:10:00"},
		{2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second, "2-03:04:05"},
		{23*time.Hour + 59*time.Minute + 59*time.Second, "23:59:59"},
		{24 * time.Hour, "1-00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDurationValue(tt.in), "input %v", tt.in)
	}
}

func TestFormatDurationNulls(t *testing.T) {
	c := column.NewDurationColumn(2)
	c.Append(0)
	c.AppendNull()

	s := FormatDuration(c)
	assert.Equal(t, "00:00:00", s.String(0))
	assert.Equal(t, "NA", s.String(1))
	assert.False(t, s.IsNull(1), "the NA cell is a literal string, not a null")
}

// Formatting the parse result of any grammar and re-parsing must preserve
// the total elapsed time.
func TestDurationRoundTrip(t *testing.T) {
	for _, in := range []string{"2-03:04:05", "2-03:04", "2-03", "03:04:05", "04:05", "10"} {
		d, ok, err := ParseDuration(in)
		require.NoError(t, err)
		require.True(t, ok)

		d2, ok, err := ParseDuration(FormatDurationValue(d))
		require.NoError(t, err, "re-parse of %q", in)
		require.True(t, ok)
		assert.Equal(t, d, d2, "round trip of %q", in)
	}
}

// Fractional seconds survive parsing but the canonical format is
// whole-second, so formatting truncates and a re-parse lands on the
// truncated value.
func TestDurationRoundTripTruncatesFractions(t *testing.T) {
	d, ok, err := ParseDuration("0:30.25")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second+250*time.Millisecond, d)

	formatted := FormatDurationValue(d)
	assert.Equal(t, "00:00:30", formatted)

	d2, ok, err := ParseDuration(formatted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, d2)
}
