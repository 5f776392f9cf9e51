package clean

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/metrics"
)

// The six scheduler duration grammars, tried in priority order. They are
// mutually exclusive by structure, so the order mostly documents what is
// recognized: days-hours:minutes:seconds, days-hours:minutes, days-hours,
// hours:minutes:seconds, minutes:seconds, bare minutes. Seconds may carry
// a fractional part.
var durationGrammars = []struct {
	re    *regexp.Regexp
	build func(m []string) (time.Duration, error)
}{
	{
		re: regexp.MustCompile(`^(\d+)-(\d+):(\d+):([0-9.]+)$`),
		build: func(m []string) (time.Duration, error) {
			return buildDuration(m[1], m[2], m[3], m[4])
		},
	},
	{
		re: regexp.MustCompile(`^(\d+)-(\d+):(\d+)$`),
		build: func(m []string) (time.Duration, error) {
			return buildDuration(m[1], m[2], m[3], "")
		},
	},
	{
		re: regexp.MustCompile(`^(\d+)-(\d+)$`),
		build: func(m []string) (time.Duration, error) {
			return buildDuration(m[1], m[2], "", "")
		},
	},
	{
		re: regexp.MustCompile(`^(\d+):(\d+):([0-9.]+)$`),
		build: func(m []string) (time.Duration, error) {
			return buildDuration("", m[1], m[2], m[3])
		},
	},
	{
		re: regexp.MustCompile(`^(\d+):([0-9.]+)$`),
		build: func(m []string) (time.Duration, error) {
			return buildDuration("", "", m[1], m[2])
		},
	},
	{
		re: regexp.MustCompile(`^(\d+)$`),
		build: func(m []string) (time.Duration, error) {
			return buildDuration("", "", m[1], "")
		},
	},
}

// buildDuration assembles a duration from decimal field strings; empty
// fields count as zero. Seconds may be fractional and are rounded to the
// nearest nanosecond.
func buildDuration(days, hours, minutes, seconds string) (time.Duration, error) {
	var d time.Duration
	if days != "" {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil {
			return 0, err
		}
		d += time.Duration(n) * 24 * time.Hour
	}
	if hours != "" {
		n, err := strconv.ParseInt(hours, 10, 64)
		if err != nil {
			return 0, err
		}
		d += time.Duration(n) * time.Hour
	}
	if minutes != "" {
		n, err := strconv.ParseInt(minutes, 10, 64)
		if err != nil {
			return 0, err
		}
		d += time.Duration(n) * time.Minute
	}
	if seconds != "" {
		f, err := strconv.ParseFloat(seconds, 64)
		if err != nil {
			return 0, err
		}
		d += time.Duration(math.Round(f * float64(time.Second)))
	}
	return d, nil
}

// matchDuration tries the six grammars in order; ok is false when none
// matched or the matched fields did not parse as numbers.
func matchDuration(s string) (time.Duration, bool) {
	for _, g := range durationGrammars {
		if m := g.re.FindStringSubmatch(s); m != nil {
			d, err := g.build(m)
			if err != nil {
				return 0, false
			}
			return d, true
		}
	}
	return 0, false
}

// ParseDuration converts a single scheduler duration string into an elapsed
// time. It recognizes the six scheduler grammars; an input from the default
// NA-marker set yields a null result (ok false, nil error); anything else
// that matches no grammar is a format error naming the offending string.
//
// This is the strict scalar entry point; for whole columns use ToDuration,
// which reports unparseable cells through the NA validator instead.
func ParseDuration(s string) (d time.Duration, ok bool, err error) {
	if d, matched := matchDuration(s); matched {
		return d, true, nil
	}
	for _, m := range DefaultNAMarkers {
		if s == m {
			return 0, false, nil
		}
	}
	return 0, false, errors.Newf(errors.ErrorTypeFormat,
		"unknown format for scheduler duration: %q", s)
}

// ToDuration converts a column of scheduler duration strings into elapsed
// times. Cells matching none of the six grammars become null and are
// surfaced through the NA-check policy; under PolicyError a column with a
// malformed non-NA cell fails the whole conversion.
func ToDuration(v *column.StringColumn, opts *Options) (*column.DurationColumn, error) {
	opts = opts.orDefault()
	out := column.NewDurationColumn(v.Len())
	ok, null := 0, 0
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			null++
			continue
		}
		if d, matched := matchDuration(v.String(i)); matched {
			out.Append(d)
			ok++
		} else {
			out.AppendNull()
			null++
		}
	}
	metrics.RecordCells("duration", ok, null)

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// FormatDurationValue renders an elapsed time in the scheduler's canonical
// form D-HH:MM:SS, omitting the leading day segment entirely when the value
// is under one day. Fractional seconds are truncated.
func FormatDurationValue(d time.Duration) string {
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	if days > 0 {
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatDuration renders a duration column in canonical scheduler form.
// Null durations format to the literal string "NA". Formatting the result
// of parsing any of the six grammars and re-parsing it yields the same
// total elapsed time.
func FormatDuration(v *column.DurationColumn) *column.StringColumn {
	out := column.NewStringColumn(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.Append("NA")
			continue
		}
		out.Append(FormatDurationValue(v.Duration(i)))
	}
	return out
}
