// Package fields maps sacct accounting columns to their cleaning
// conversions so a whole dump can be turned into typed columns in one
// call. Each field names a Kind; unknown fields default to plain strings.
package fields

import (
	"github.com/slurmframe/slurmframe/pkg/clean"
	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
)

// Kind identifies which cleaning conversion a field uses
type Kind string

const (
	KindString        Kind = "string"
	KindStringUnknown Kind = "string_unknown"
	KindCategory      Kind = "category"
	KindInt           Kind = "int"
	KindFloat         Kind = "float"
	KindSI            Kind = "si"
	KindMemory        Kind = "memory"
	KindDuration      Kind = "duration"
	KindDateTime      Kind = "datetime"
)

// defaultKinds covers the sacct fields the accounting pipeline consumes.
// Fields absent here are passed through as strings.
var defaultKinds = map[string]Kind{
	"JobID":      KindString,
	"JobIDRaw":   KindString,
	"JobName":    KindStringUnknown,
	"NodeList":   KindStringUnknown,
	"User":       KindCategory,
	"Account":    KindCategory,
	"Partition":  KindCategory,
	"QOS":        KindCategory,
	"State":      KindCategory,
	"ExitCode":   KindCategory,
	"Submit":     KindDateTime,
	"Eligible":   KindDateTime,
	"Start":      KindDateTime,
	"End":        KindDateTime,
	"Elapsed":    KindDuration,
	"Timelimit":  KindDuration,
	"TotalCPU":   KindDuration,
	"UserCPU":    KindDuration,
	"SystemCPU":  KindDuration,
	"CPUTime":    KindDuration,
	"Suspended":  KindDuration,
	"Reserved":   KindDuration,
	"NCPUS":      KindInt,
	"AllocCPUS":  KindInt,
	"ReqCPUS":    KindInt,
	"NNodes":     KindInt,
	"AllocNodes": KindInt,
	"ReqNodes":   KindInt,
	"Priority":   KindInt,
	"NTasks":     KindInt,
	"ReqMem":     KindMemory,
	"MaxRSS":     KindSI,
	"MaxVMSize":  KindSI,
	"AveRSS":     KindSI,
	"AveVMSize":  KindSI,
}

// Registry resolves field names to kinds, with per-run overrides on top of
// the defaults.
type Registry struct {
	overrides map[string]Kind
}

// NewRegistry creates a registry; overrides may be nil
func NewRegistry(overrides map[string]Kind) *Registry {
	return &Registry{overrides: overrides}
}

// KindOf returns the conversion kind of a field name
func (r *Registry) KindOf(name string) Kind {
	if r != nil {
		if k, ok := r.overrides[name]; ok {
			return k
		}
	}
	if k, ok := defaultKinds[name]; ok {
		return k
	}
	return KindString
}

// Valid reports whether k names a known kind
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindStringUnknown, KindCategory, KindInt, KindFloat,
		KindSI, KindMemory, KindDuration, KindDateTime:
		return true
	}
	return false
}

// Convert applies the kind's conversion to one raw column. Memory fields
// produce a second, per-CPU flag column; every other kind produces exactly
// one output.
func (k Kind) Convert(name string, raw *column.StringColumn, opts *clean.Options) (named []NamedColumn, err error) {
	switch k {
	case KindString:
		c, err := clean.ToString(raw, opts)
		return one(name, c), err
	case KindStringUnknown:
		c, err := clean.ToStringUnknown(raw, opts)
		return one(name, c), err
	case KindCategory:
		c, err := clean.Factorize(raw, opts)
		return one(name, c), err
	case KindInt:
		c, err := clean.ToInt(raw, opts)
		return one(name, c), err
	case KindFloat:
		c, err := clean.ToFloat(raw, opts)
		return one(name, c), err
	case KindSI:
		c, err := clean.NormSI(raw, siOptions(opts))
		return one(name, c), err
	case KindMemory:
		mem, perCPU, err := clean.Memory(raw, siOptions(opts))
		if err != nil {
			return nil, err
		}
		return []NamedColumn{{name, mem}, {name + "PerCPU", perCPU}}, nil
	case KindDuration:
		c, err := clean.ToDuration(raw, opts)
		return one(name, c), err
	case KindDateTime:
		c, err := clean.ToDateTime(raw, opts)
		return one(name, c), err
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown field kind %q for %q", string(k), name)
	}
}

// siOptions derives the options for byte-sized fields: same policy and
// markers, binary scaling.
func siOptions(opts *clean.Options) *clean.Options {
	out := clean.MemoryOptions()
	if opts != nil {
		out.Policy = opts.Policy
		out.NAMarkers = opts.NAMarkers
		out.ReturnIn = opts.ReturnIn
	}
	return out
}

// NamedColumn pairs an output column with its name
type NamedColumn struct {
	Name   string
	Column column.Column
}

func one(name string, c column.Column) []NamedColumn {
	return []NamedColumn{{Name: name, Column: c}}
}
