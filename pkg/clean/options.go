// Package clean provides the data-cleaning transforms used to turn raw
// workload-scheduler accounting strings into typed columns: SI-suffix and
// memory-spec parsing, scheduler duration parsing and formatting, generic
// numeric/datetime/categorical coercion, and NA validation.
//
// Every function is a stateless batch transform: each call is independent,
// preserves row count and row order, and is safe to invoke concurrently.
// Cells that fail conversion become null in the output; whether that is
// tolerated, logged, or fatal is controlled by the NA-check policy.
package clean

import (
	"github.com/slurmframe/slurmframe/pkg/errors"
)

// Policy controls how the NA validator reacts to unexpected null cells
type Policy string

const (
	// PolicyIgnore counts violations silently
	PolicyIgnore Policy = "ignore"
	// PolicyWarn logs violations and continues
	PolicyWarn Policy = "warn"
	// PolicyError logs violations and fails the conversion
	PolicyError Policy = "error"
)

// DefaultNAMarkers is the default set of strings recognized as legitimate
// missing values rather than parse failures.
var DefaultNAMarkers = []string{"", "Unknown", "NA", "NAN", "NaN", "NAT", "NaT", "nan"}

// Options carries the per-call knobs shared by the coercers. The zero
// value/nil means: ignore policy, default NA markers, decimal SI scaling,
// no target-unit rescale, no rounding.
type Options struct {
	// Policy is the NA-check policy; empty means PolicyIgnore
	Policy Policy

	// NAMarkers overrides the recognized missing-value strings for this
	// call; nil means DefaultNAMarkers
	NAMarkers []string

	// UseBinary scales SI suffixes by powers of 1024 instead of 1000
	UseBinary bool

	// ReturnIn rescales SI results into the unit of the given suffix
	// ('', k, M, G, T, P, E); unknown suffixes are a configuration error
	ReturnIn string

	// Round rounds fractional numerics before integer coercion
	Round bool
}

// DefaultOptions returns the default option set
func DefaultOptions() *Options {
	return &Options{Policy: PolicyIgnore}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}

func (o *Options) policy() (Policy, error) {
	switch o.Policy {
	case "", PolicyIgnore:
		return PolicyIgnore, nil
	case PolicyWarn, PolicyError:
		return o.Policy, nil
	default:
		return "", errors.Newf(errors.ErrorTypeConfig, "unknown NA-check policy %q", o.Policy)
	}
}

// markerSet materializes the effective NA-marker set for lookup
func (o *Options) markerSet() map[string]struct{} {
	markers := o.NAMarkers
	if markers == nil {
		markers = DefaultNAMarkers
	}
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[m] = struct{}{}
	}
	return set
}
