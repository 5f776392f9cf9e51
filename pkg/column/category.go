package column

// CategoryColumn stores strings dictionary-encoded: every distinct value is
// assigned a code once and cells carry codes only. Suited to low-cardinality
// fields such as partition, account or job state.
type CategoryColumn struct {
	dict       map[string]uint32
	categories []string
	codes      []uint32
	valid      *Bitmap
}

// NewCategoryColumn creates an empty category column
func NewCategoryColumn(capacity int) *CategoryColumn {
	return &CategoryColumn{
		dict:  make(map[string]uint32),
		codes: make([]uint32, 0, capacity),
		valid: NewBitmap(capacity),
	}
}

func (c *CategoryColumn) Type() ColumnType  { return ColumnTypeCategory }
func (c *CategoryColumn) Len() int          { return len(c.codes) }
func (c *CategoryColumn) IsNull(i int) bool { return !c.valid.Get(i) }

func (c *CategoryColumn) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	return c.categories[c.codes[i]]
}

// String returns the decoded cell at i; empty string when null
func (c *CategoryColumn) String(i int) string {
	if c.IsNull(i) {
		return ""
	}
	return c.categories[c.codes[i]]
}

// Code returns the dictionary code of cell i; only meaningful when not null
func (c *CategoryColumn) Code(i int) uint32 { return c.codes[i] }

// Categories returns the distinct values in first-seen order
func (c *CategoryColumn) Categories() []string { return c.categories }

// Append adds a valid cell, registering the value in the dictionary if new
func (c *CategoryColumn) Append(v string) {
	code, exists := c.dict[v]
	if !exists {
		code = uint32(len(c.categories))
		c.dict[v] = code
		c.categories = append(c.categories, v)
	}
	c.codes = append(c.codes, code)
	c.valid.Append(true)
}

// AppendNull adds a null cell
func (c *CategoryColumn) AppendNull() {
	c.codes = append(c.codes, 0)
	c.valid.Append(false)
}

func (c *CategoryColumn) MemoryUsage() int64 {
	var total int64
	for _, v := range c.categories {
		total += int64(len(v)) + 16
	}
	total += int64(len(c.codes) * 4)
	return total + c.valid.MemoryUsage()
}
