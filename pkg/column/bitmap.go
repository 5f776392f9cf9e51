package column

// Bitmap is a bit-packed validity mask: 64 cells per uint64. A set bit
// marks the cell at that index as valid (non-null).
type Bitmap struct {
	words []uint64
	count int
}

// NewBitmap creates an empty bitmap
func NewBitmap(capacity int) *Bitmap {
	return &Bitmap{
		words: make([]uint64, 0, (capacity+63)/64),
	}
}

// Len returns the number of cells tracked
func (b *Bitmap) Len() int { return b.count }

// Get reports whether cell i is valid
func (b *Bitmap) Get(i int) bool {
	return (b.words[i/64] & (1 << (i % 64))) != 0
}

// Append records the validity of the next cell
func (b *Bitmap) Append(valid bool) {
	wordIndex := b.count / 64
	if wordIndex >= len(b.words) {
		b.words = append(b.words, 0)
	}
	if valid {
		b.words[wordIndex] |= 1 << (b.count % 64)
	}
	b.count++
}

// CountSet returns the number of valid cells
func (b *Bitmap) CountSet() int {
	n := 0
	for i := 0; i < b.count; i++ {
		if b.Get(i) {
			n++
		}
	}
	return n
}

// MemoryUsage returns the approximate heap footprint in bytes
func (b *Bitmap) MemoryUsage() int64 {
	return int64(len(b.words) * 8)
}
