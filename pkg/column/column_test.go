package column

import (
	"testing"
	"time"
)

func TestBitmap(t *testing.T) {
	b := NewBitmap(4)
	for i := 0; i < 130; i++ {
		b.Append(i%3 == 0)
	}

	if b.Len() != 130 {
		t.Fatalf("expected length 130, got %d", b.Len())
	}
	for i := 0; i < 130; i++ {
		if b.Get(i) != (i%3 == 0) {
			t.Errorf("bit %d: expected %v", i, i%3 == 0)
		}
	}
	if got := b.CountSet(); got != 44 {
		t.Errorf("expected 44 set bits, got %d", got)
	}
}

func TestStringColumn(t *testing.T) {
	c := NewStringColumn(0)
	c.Append("a")
	c.AppendNull()
	c.Append("b")

	if c.Len() != 3 {
		t.Fatalf("expected length 3, got %d", c.Len())
	}
	if c.IsNull(0) || !c.IsNull(1) || c.IsNull(2) {
		t.Errorf("unexpected null pattern")
	}
	if c.Value(1) != nil {
		t.Errorf("null cell should yield nil, got %v", c.Value(1))
	}
	if c.String(2) != "b" {
		t.Errorf("expected 'b', got %q", c.String(2))
	}
}

func TestFromStringsPreservesOrder(t *testing.T) {
	in := []string{"x", "y", "z"}
	c := FromStrings(in)
	for i, want := range in {
		if c.String(i) != want {
			t.Errorf("cell %d: expected %q, got %q", i, want, c.String(i))
		}
	}
}

func TestIntColumnNulls(t *testing.T) {
	c := NewIntColumn(0)
	c.Append(7)
	c.AppendNull()

	if c.Int(0) != 7 {
		t.Errorf("expected 7, got %d", c.Int(0))
	}
	if v := c.Value(1); v != nil {
		t.Errorf("expected nil for null cell, got %v", v)
	}
}

func TestBoolColumnBitPacking(t *testing.T) {
	c := NewBoolColumn(0)
	for i := 0; i < 200; i++ {
		c.Append(i%2 == 1)
	}
	c.AppendNull()

	if c.Len() != 201 {
		t.Fatalf("expected length 201, got %d", c.Len())
	}
	for i := 0; i < 200; i++ {
		if c.Bool(i) != (i%2 == 1) {
			t.Fatalf("cell %d: wrong value", i)
		}
	}
	if !c.IsNull(200) {
		t.Errorf("cell 200 should be null")
	}
}

func TestTimeColumn(t *testing.T) {
	c := NewTimeColumn(0)
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	c.Append(ts)
	c.AppendNull()

	if !c.Time(0).Equal(ts) {
		t.Errorf("expected %v, got %v", ts, c.Time(0))
	}
	if !c.Time(1).IsZero() {
		t.Errorf("null cell should yield zero time")
	}
}

func TestDurationColumn(t *testing.T) {
	c := NewDurationColumn(0)
	c.Append(90 * time.Second)
	c.AppendNull()

	if c.Duration(0) != 90*time.Second {
		t.Errorf("expected 90s, got %v", c.Duration(0))
	}
	if c.Value(1) != nil {
		t.Errorf("expected nil for null cell")
	}
}

func TestCategoryColumnDictionary(t *testing.T) {
	c := NewCategoryColumn(0)
	for _, v := range []string{"normal", "debug", "normal", "normal", "gpu"} {
		c.Append(v)
	}
	c.AppendNull()

	cats := c.Categories()
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d: %v", len(cats), cats)
	}
	if cats[0] != "normal" || cats[1] != "debug" || cats[2] != "gpu" {
		t.Errorf("categories not in first-seen order: %v", cats)
	}
	if c.Code(0) != c.Code(2) || c.Code(0) != c.Code(3) {
		t.Errorf("repeated values should share a code")
	}
	if c.String(4) != "gpu" {
		t.Errorf("expected 'gpu', got %q", c.String(4))
	}
	if !c.IsNull(5) {
		t.Errorf("cell 5 should be null")
	}
}
