package clean

import (
	"sort"

	"go.uber.org/zap"

	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/logger"
	"github.com/slurmframe/slurmframe/pkg/metrics"
)

// sampleLimit bounds how many distinct unexpected values are reported
const sampleLimit = 20

// CheckNA verifies that null cells in a converted column were legitimately
// missing in the original input rather than silently corrupted: it counts
// positions where converted is null but the original string is not a
// recognized NA marker.
//
// Under PolicyIgnore the count is returned silently. Under PolicyWarn the
// count and a bounded sample of distinct offending values are logged.
// Under PolicyError the same message is logged and a validation error is
// returned. The data itself is never modified.
func CheckNA(orig *column.StringColumn, converted column.Column, opts *Options) (int, error) {
	opts = opts.orDefault()
	policy, err := opts.policy()
	if err != nil {
		return 0, err
	}
	if orig.Len() != converted.Len() {
		return 0, errors.Newf(errors.ErrorTypeConfig,
			"column length mismatch: %d original vs %d converted", orig.Len(), converted.Len())
	}

	markers := opts.markerSet()
	count := 0
	seen := make(map[string]struct{})
	for i := 0; i < converted.Len(); i++ {
		if !converted.IsNull(i) {
			continue
		}
		v := orig.String(i)
		if _, ok := markers[v]; ok {
			continue
		}
		count++
		seen[v] = struct{}{}
	}

	if count == 0 || policy == PolicyIgnore {
		return count, nil
	}

	metrics.NAViolations.WithLabelValues(string(policy)).Add(float64(count))

	sample := make([]string, 0, len(seen))
	for v := range seen {
		sample = append(sample, v)
	}
	sort.Strings(sample)
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}

	fields := []zap.Field{
		zap.Int("count", count),
		zap.Strings("values", sample),
		zap.Strings("valid_na", opts.naMarkers()),
	}
	if policy == PolicyWarn {
		logger.Warn("unexpected NA entries after conversion", fields...)
		return count, nil
	}

	logger.Error("unexpected NA entries after conversion", fields...)
	return count, errors.Newf(errors.ErrorTypeValidation,
		"%d unexpected NA entries, sample %v", count, sample)
}

func (o *Options) naMarkers() []string {
	if o.NAMarkers == nil {
		return DefaultNAMarkers
	}
	return o.NAMarkers
}
