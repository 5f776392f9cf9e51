package clean

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/metrics"
)

// siExponent maps a lowercased SI suffix to its magnitude exponent. Note
// that in scheduler accounting output lowercase m means mega, not milli.
var siExponent = map[string]int{
	"": 0, "k": 1, "m": 2, "g": 3, "t": 4, "p": 5, "e": 6,
}

var (
	siPattern  = regexp.MustCompile(`^([0-9.]+) ?([kmgtpeKMGTPE]?)$`)
	memPattern = regexp.MustCompile(`^([0-9.]+ ?[kmgtpeKMGTPE]?)([cnCN]?)$`)
)

// SIFactor returns the multiplicative factor of a single-letter SI suffix,
// case-insensitive, in the decimal (1000-based) or binary (1024-based)
// variant. The empty suffix is factor 1. Unknown suffixes are a
// configuration error.
func SIFactor(suffix string, useBinary bool) (float64, error) {
	exp, ok := siExponent[strings.ToLower(suffix)]
	if !ok {
		return 0, errors.Newf(errors.ErrorTypeConfig, "unknown SI suffix %q", suffix)
	}
	base := 1000.0
	if useBinary {
		base = 1024.0
	}
	return math.Pow(base, float64(exp)), nil
}

// NormSIFloat converts strings with SI magnitude suffixes (12M, 2.4G, "1 k")
// into floats. The suffix factor is decimal or binary per opts.UseBinary,
// and the result is rescaled into opts.ReturnIn units when set. Cells that
// do not match the pattern become null, subject to the NA-check policy.
func NormSIFloat(v *column.StringColumn, opts *Options) (*column.FloatColumn, error) {
	opts = opts.orDefault()
	// An unknown target unit is a programming error regardless of the
	// column contents, so resolve it before touching any cell.
	scale := 1.0
	if opts.ReturnIn != "" {
		var err error
		scale, err = SIFactor(opts.ReturnIn, opts.UseBinary)
		if err != nil {
			return nil, err
		}
	}

	out := column.NewFloatColumn(v.Len())
	ok, null := 0, 0
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			out.AppendNull()
			null++
			continue
		}
		m := siPattern.FindStringSubmatch(v.String(i))
		if m == nil {
			out.AppendNull()
			null++
			continue
		}
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			// matched the pattern but is not a number, e.g. "1.2.3"
			out.AppendNull()
			null++
			continue
		}
		factor, _ := SIFactor(m[2], opts.UseBinary)
		out.Append(num * factor / scale)
		ok++
	}
	metrics.RecordCells("si", ok, null)

	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// NormSI converts SI-suffixed strings into nullable integers: the float
// result of NormSIFloat rounded to the nearest whole unit. This is the
// common path for core counts and byte sizes, which are whole-valued in
// their reporting unit. Magnitudes beyond the int64 range become null
// rather than wrapping around; the NA check runs on the integer output so
// such cells are reported like any other failed conversion.
func NormSI(v *column.StringColumn, opts *Options) (*column.IntColumn, error) {
	opts = opts.orDefault()
	inner := *opts
	inner.Policy = PolicyIgnore
	f, err := NormSIFloat(v, &inner)
	if err != nil {
		return nil, err
	}
	out := column.NewIntColumn(f.Len())
	for i := 0; i < f.Len(); i++ {
		if f.IsNull(i) {
			out.AppendNull()
			continue
		}
		r := math.Round(f.Float(i))
		if !fitsInt64(r) {
			out.AppendNull()
			continue
		}
		out.Append(int64(r))
	}
	if _, err := CheckNA(v, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// fitsInt64 reports whether a rounded float converts to int64 without
// overflow. 1<<63 is exact in float64, so the open upper bound is safe.
func fitsInt64(f float64) bool {
	return f >= -9223372036854775808.0 && f < 9223372036854775808.0
}

// Memory converts scheduler memory specifications like 1.5G, 300Mn or 2Gc
// into a magnitude column plus a per-CPU flag column. The trailing c/C
// qualifier marks a per-CPU quantity, n/N (or nothing) a per-node one.
// Both outputs stay index-aligned with the input. Memory magnitudes scale
// by powers of 1024 unless opts says otherwise.
func Memory(v *column.StringColumn, opts *Options) (*column.IntColumn, *column.BoolColumn, error) {
	if opts == nil {
		opts = MemoryOptions()
	}

	magnitude := column.NewStringColumn(v.Len())
	perCPU := column.NewBoolColumn(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.IsNull(i) {
			magnitude.AppendNull()
			perCPU.Append(false)
			continue
		}
		m := memPattern.FindStringSubmatch(v.String(i))
		if m == nil {
			magnitude.AppendNull()
			perCPU.Append(false)
			continue
		}
		magnitude.Append(m[1])
		perCPU.Append(m[2] == "c" || m[2] == "C")
	}

	// Parse magnitudes leniently, then validate nulls against the
	// original strings so that "12X" is reported as "12X", not as a
	// silently dropped cell.
	inner := *opts
	inner.Policy = PolicyIgnore
	x, err := NormSI(magnitude, &inner)
	if err != nil {
		return nil, nil, err
	}
	if _, err := CheckNA(v, x, opts); err != nil {
		return nil, nil, err
	}
	return x, perCPU, nil
}

// MemoryOptions returns the option defaults for Memory conversions:
// binary scaling, since scheduler memory fields are 1024-based.
func MemoryOptions() *Options {
	return &Options{Policy: PolicyIgnore, UseBinary: true}
}
