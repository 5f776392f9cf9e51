package clean

import (
	"math"
	"strconv"
	"time"

	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/metrics"
)

// timeLayouts are the timestamp shapes seen in scheduler accounting dumps,
// tried in order.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToInt converts numeric strings into nullable integers. Fractional inputs
// are accepted only with opts.Round set; otherwise a non-integral cell
// becomes null. Cells that fail conversion or fall outside the int64
// range become null, subject to the NA-check policy.
func ToInt(v *column.StringColumn, opts *Options) (*column.IntColumn, error) {
	opts = opts.orDefault()
	out := column.NewIntColumn(v.Len())
	ok, null := 0, 0
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			null++
			continue
		}
		f, err := strconv.ParseFloat(v.String(i), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			out.AppendNull()
			null++
			continue
		}
		if opts.Round {
			f = math.Round(f)
		}
		if f != math.Trunc(f) || !fitsInt64(f) {
			out.AppendNull()
			null++
			continue
		}
		out.Append(int64(f))
		ok++
	}
	metrics.RecordCells("int", ok, null)

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ToFloat converts numeric strings into nullable floats. A literal NaN
// parse counts as null so that marker strings like "nan" stay missing
// instead of turning into a poisoned value.
func ToFloat(v *column.StringColumn, opts *Options) (*column.FloatColumn, error) {
	opts = opts.orDefault()
	out := column.NewFloatColumn(v.Len())
	ok, null := 0, 0
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			null++
			continue
		}
		f, err := strconv.ParseFloat(v.String(i), 64)
		if err != nil || math.IsNaN(f) {
			out.AppendNull()
			null++
			continue
		}
		out.Append(f)
		ok++
	}
	metrics.RecordCells("float", ok, null)

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ToDateTime converts scheduler timestamp strings into nullable timestamps.
// Inputs are interpreted as UTC unless they carry an explicit offset.
func ToDateTime(v *column.StringColumn, opts *Options) (*column.TimeColumn, error) {
	opts = opts.orDefault()
	out := column.NewTimeColumn(v.Len())
	ok, null := 0, 0
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			null++
			continue
		}
		t, matched := parseTime(v.String(i))
		if !matched {
			out.AppendNull()
			null++
			continue
		}
		out.Append(t)
		ok++
	}
	metrics.RecordCells("datetime", ok, null)

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Factorize converts a string column into a dictionary-encoded category
// column. Every value is a valid category, so the NA check only counts
// nulls carried over from the input.
func Factorize(v *column.StringColumn, opts *Options) (*column.CategoryColumn, error) {
	opts = opts.orDefault()
	out := column.NewCategoryColumn(v.Len())
	ok, null := 0, 0
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			null++
			continue
		}
		out.Append(v.String(i))
		ok++
	}
	metrics.RecordCells("category", ok, null)

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ToString copies a string column unchanged. It exists so that field
// registries can treat every coercion uniformly.
func ToString(v *column.StringColumn, _ *Options) (*column.StringColumn, error) {
	out := column.NewStringColumn(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			continue
		}
		out.Append(v.String(i))
	}
	return out, nil
}

// ToStringUnknown copies a string column, mapping recognized NA markers
// ("Unknown", "", ...) to null. By construction every resulting null is a
// legitimate missing value, so the NA check never fires on its output.
func ToStringUnknown(v *column.StringColumn, opts *Options) (*column.StringColumn, error) {
	opts = opts.orDefault()
	markers := opts.markerSet()
	out := column.NewStringColumn(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			continue
		}
		if _, isNA := markers[v.String(i)]; isNA {
			out.AppendNull()
			continue
		}
		out.Append(v.String(i))
	}

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
