package fields

import (
	"github.com/slurmframe/slurmframe/pkg/clean"
	"github.com/slurmframe/slurmframe/pkg/column"
	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/metrics"
)

// Frame is an ordered set of equally long typed columns assembled from one
// accounting dump.
type Frame struct {
	names   []string
	columns []column.Column
	rows    int
}

// Names returns the output column names in order
func (f *Frame) Names() []string { return f.names }

// Column returns the column at position i
func (f *Frame) Column(i int) column.Column { return f.columns[i] }

// NumColumns returns the number of output columns
func (f *Frame) NumColumns() int { return len(f.columns) }

// Len returns the row count
func (f *Frame) Len() int { return f.rows }

// Row materializes row i as a name-to-value map; null cells map to nil
func (f *Frame) Row(i int) map[string]interface{} {
	out := make(map[string]interface{}, len(f.columns))
	for c, col := range f.columns {
		out[f.names[c]] = col.Value(i)
	}
	return out
}

// Apply cleans a whole dump: header names the fields, rows carry the raw
// cells. Rows shorter than the header are padded with nulls; longer rows
// are a data error. The registry may be nil for defaults.
func Apply(header []string, rows [][]string, reg *Registry, opts *clean.Options) (*Frame, error) {
	raw := make([]*column.StringColumn, len(header))
	for i := range header {
		raw[i] = column.NewStringColumn(len(rows))
	}
	for r, row := range rows {
		if len(row) > len(header) {
			return nil, errors.Newf(errors.ErrorTypeData,
				"row %d has %d cells, header has %d", r, len(row), len(header))
		}
		for c := range header {
			if c < len(row) {
				raw[c].Append(row[c])
			} else {
				raw[c].AppendNull()
			}
		}
	}

	frame := &Frame{rows: len(rows)}
	for i, name := range header {
		kind := reg.KindOf(name)
		converted, err := kind.Convert(name, raw[i], opts)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "convert field "+name)
		}
		for _, nc := range converted {
			frame.names = append(frame.names, nc.Name)
			frame.columns = append(frame.columns, nc.Column)
		}
	}
	metrics.RowsCleaned.Add(float64(len(rows)))
	return frame, nil
}
