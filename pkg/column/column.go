// Package column provides nullable columnar batches for cleaned
// accounting-log data. Every column preserves row count and row order;
// cells that failed conversion are tracked through a bit-packed validity
// mask rather than sentinel values.
package column

import (
	"math"
	"time"
)

// ColumnType represents the data type of a column
type ColumnType int

const (
	ColumnTypeString ColumnType = iota
	ColumnTypeInt
	ColumnTypeFloat
	ColumnTypeBool
	ColumnTypeTime
	ColumnTypeDuration
	ColumnTypeCategory
)

// Column is the base interface for all column types
type Column interface {
	Type() ColumnType
	Len() int
	IsNull(i int) bool
	// Value returns the cell at i as an interface value, nil when null
	Value(i int) interface{}
	MemoryUsage() int64
}

// StringColumn stores raw string cells, the input form of every transform
type StringColumn struct {
	values []string
	valid  *Bitmap
}

// NewStringColumn creates an empty string column
func NewStringColumn(capacity int) *StringColumn {
	return &StringColumn{
		values: make([]string, 0, capacity),
		valid:  NewBitmap(capacity),
	}
}

// FromStrings builds a fully valid string column from a slice
func FromStrings(values []string) *StringColumn {
	c := NewStringColumn(len(values))
	for _, v := range values {
		c.Append(v)
	}
	return c
}

func (c *StringColumn) Type() ColumnType { return ColumnTypeString }
func (c *StringColumn) Len() int         { return len(c.values) }
func (c *StringColumn) IsNull(i int) bool {
	return !c.valid.Get(i)
}

func (c *StringColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.values[i]
}

// String returns the cell at i; null cells return the empty string
func (c *StringColumn) String(i int) string { return c.values[i] }

// Append adds a valid cell
func (c *StringColumn) Append(v string) {
	c.values = append(c.values, v)
	c.valid.Append(true)
}

// AppendNull adds a null cell
func (c *StringColumn) AppendNull() {
	c.values = append(c.values, "")
	c.valid.Append(false)
}

func (c *StringColumn) MemoryUsage() int64 {
	var total int64
	for _, v := range c.values {
		total += int64(len(v)) + 16 // string header overhead
	}
	return total + c.valid.MemoryUsage()
}

// IntColumn stores nullable int64 values
type IntColumn struct {
	values []int64
	valid  *Bitmap
}

// NewIntColumn creates an empty integer column
func NewIntColumn(capacity int) *IntColumn {
	return &IntColumn{
		values: make([]int64, 0, capacity),
		valid:  NewBitmap(capacity),
	}
}

func (c *IntColumn) Type() ColumnType  { return ColumnTypeInt }
func (c *IntColumn) Len() int          { return len(c.values) }
func (c *IntColumn) IsNull(i int) bool { return !c.valid.Get(i) }

func (c *IntColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.values[i]
}

// Int returns the cell at i; only meaningful when not null
func (c *IntColumn) Int(i int) int64 { return c.values[i] }

func (c *IntColumn) Append(v int64) {
	c.values = append(c.values, v)
	c.valid.Append(true)
}

func (c *IntColumn) AppendNull() {
	c.values = append(c.values, 0)
	c.valid.Append(false)
}

func (c *IntColumn) MemoryUsage() int64 {
	return int64(len(c.values)*8) + c.valid.MemoryUsage()
}

// FloatColumn stores nullable float64 values. Null cells also carry NaN so
// that accidental reads stay visibly poisoned.
type FloatColumn struct {
	values []float64
	valid  *Bitmap
}

// NewFloatColumn creates an empty float column
func NewFloatColumn(capacity int) *FloatColumn {
	return &FloatColumn{
		values: make([]float64, 0, capacity),
		valid:  NewBitmap(capacity),
	}
}

func (c *FloatColumn) Type() ColumnType  { return ColumnTypeFloat }
func (c *FloatColumn) Len() int          { return len(c.values) }
func (c *FloatColumn) IsNull(i int) bool { return !c.valid.Get(i) }

func (c *FloatColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.values[i]
}

// Float returns the cell at i; NaN when null
func (c *FloatColumn) Float(i int) float64 { return c.values[i] }

func (c *FloatColumn) Append(v float64) {
	c.values = append(c.values, v)
	c.valid.Append(true)
}

func (c *FloatColumn) AppendNull() {
	c.values = append(c.values, math.NaN())
	c.valid.Append(false)
}

func (c *FloatColumn) MemoryUsage() int64 {
	return int64(len(c.values)*8) + c.valid.MemoryUsage()
}

// BoolColumn stores boolean values bit-packed, 64 per uint64
type BoolColumn struct {
	bits  []uint64
	count int
	valid *Bitmap
}

// NewBoolColumn creates an empty boolean column
func NewBoolColumn(capacity int) *BoolColumn {
	return &BoolColumn{
		bits:  make([]uint64, 0, (capacity+63)/64),
		valid: NewBitmap(capacity),
	}
}

func (c *BoolColumn) Type() ColumnType  { return ColumnTypeBool }
func (c *BoolColumn) Len() int          { return c.count }
func (c *BoolColumn) IsNull(i int) bool { return !c.valid.Get(i) }

func (c *BoolColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.Bool(i)
}

// Bool returns the cell at i; false when null
func (c *BoolColumn) Bool(i int) bool {
	return (c.bits[i/64] & (1 << (i % 64))) != 0
}

func (c *BoolColumn) Append(v bool) {
	c.appendBit(v)
	c.valid.Append(true)
}

func (c *BoolColumn) AppendNull() {
	c.appendBit(false)
	c.valid.Append(false)
}

func (c *BoolColumn) appendBit(v bool) {
	wordIndex := c.count / 64
	if wordIndex >= len(c.bits) {
		c.bits = append(c.bits, 0)
	}
	if v {
		c.bits[wordIndex] |= 1 << (c.count % 64)
	}
	c.count++
}

func (c *BoolColumn) MemoryUsage() int64 {
	return int64(len(c.bits)*8) + c.valid.MemoryUsage()
}

// TimeColumn stores nullable timestamps as Unix nanoseconds
type TimeColumn struct {
	values []int64
	valid  *Bitmap
}

// NewTimeColumn creates an empty timestamp column
func NewTimeColumn(capacity int) *TimeColumn {
	return &TimeColumn{
		values: make([]int64, 0, capacity),
		valid:  NewBitmap(capacity),
	}
}

func (c *TimeColumn) Type() ColumnType  { return ColumnTypeTime }
func (c *TimeColumn) Len() int          { return len(c.values) }
func (c *TimeColumn) IsNull(i int) bool { return !c.valid.Get(i) }

func (c *TimeColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.Time(i)
}

// Time returns the cell at i in UTC; zero time when null
func (c *TimeColumn) Time(i int) time.Time {
	if c.IsNull(i) {
		return time.Time{}
	}
	return time.Unix(0, c.values[i]).UTC()
}

func (c *TimeColumn) Append(t time.Time) {
	c.values = append(c.values, t.UnixNano())
	c.valid.Append(true)
}

func (c *TimeColumn) AppendNull() {
	c.values = append(c.values, 0)
	c.valid.Append(false)
}

func (c *TimeColumn) MemoryUsage() int64 {
	return int64(len(c.values)*8) + c.valid.MemoryUsage()
}

// DurationColumn stores nullable elapsed-time values
type DurationColumn struct {
	values []time.Duration
	valid  *Bitmap
}

// NewDurationColumn creates an empty duration column
func NewDurationColumn(capacity int) *DurationColumn {
	return &DurationColumn{
		values: make([]time.Duration, 0, capacity),
		valid:  NewBitmap(capacity),
	}
}

func (c *DurationColumn) Type() ColumnType  { return ColumnTypeDuration }
func (c *DurationColumn) Len() int          { return len(c.values) }
func (c *DurationColumn) IsNull(i int) bool { return !c.valid.Get(i) }

func (c *DurationColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.values[i]
}

// Duration returns the cell at i; zero when null
func (c *DurationColumn) Duration(i int) time.Duration { return c.values[i] }

func (c *DurationColumn) Append(d time.Duration) {
	c.values = append(c.values, d)
	c.valid.Append(true)
}

func (c *DurationColumn) AppendNull() {
	c.values = append(c.values, 0)
	c.valid.Append(false)
}

func (c *DurationColumn) MemoryUsage() int64 {
	return int64(len(c.values)*8) + c.valid.MemoryUsage()
}
