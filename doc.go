// Package slurmframe turns workload-scheduler (Slurm sacct) accounting
// dumps into typed tabular data.
//
// Accounting logs report everything as strings: core counts and byte sizes
// in compact SI-suffix notation (12M, 1.5Gc), elapsed times in six
// scheduler duration grammars (2-03:04:05, 15:00, bare minutes), and
// missing values as loosely standardized markers ("Unknown", "NA", "NaT").
// The packages here parse those strings into nullable columnar batches
// while validating that every null in the output was a legitimate missing
// value in the input.
//
// # Packages
//
//   - pkg/column: nullable columnar batch types with validity bitmaps
//   - pkg/clean: the cleaning transforms (SI, memory, durations, coercers,
//     NA validation)
//   - pkg/fields: sacct field registry mapping column names to conversions
//   - pkg/compression: in-process codecs for archived dumps
//   - pkg/progress, pkg/shell: terminal progress bar and pipeline runner
//     used by the loading step
//   - pkg/errors, pkg/logger, pkg/metrics, pkg/config: ambient support
//
// # Quick Start
//
// Parse one SI-suffixed column:
//
//	v := column.FromStrings([]string{"12M", "1.5G", "Unknown"})
//	x, err := clean.NormSI(v, &clean.Options{Policy: clean.PolicyWarn})
//
// Or clean a whole dump through the field registry:
//
//	frame, err := fields.Apply(header, rows, nil, clean.DefaultOptions())
package slurmframe
