// Package progress provides a single-line terminal progress bar for long
// log conversions. Output is carriage-return refreshed and finishes with a
// newline once the final iteration is reported.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Config controls the rendering of a Bar
type Config struct {
	Prefix   string    // text before the bar, default "Progress:"
	Suffix   string    // text after the percentage, default "Complete"
	Width    int       // bar width in characters, default 50
	Fill     rune      // fill character, default '█'
	Decimals int       // decimal places of the percentage, default 1
	Writer   io.Writer // destination, default os.Stdout
}

// Bar renders completion state for a fixed number of iterations. It keeps
// no goroutines and is not safe for concurrent use; call Update from the
// loop that owns the work.
type Bar struct {
	cfg   Config
	total int
}

// NewBar creates a progress bar for total iterations. A nil config uses
// the defaults.
func NewBar(total int, cfg *Config) *Bar {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.Prefix == "" {
		c.Prefix = "Progress:"
	}
	if c.Suffix == "" {
		c.Suffix = "Complete"
	}
	if c.Width <= 0 {
		c.Width = 50
	}
	if c.Fill == 0 {
		c.Fill = '█'
	}
	if c.Decimals < 0 {
		c.Decimals = 0
	} else if c.Decimals == 0 {
		c.Decimals = 1
	}
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	return &Bar{cfg: c, total: total}
}

// Update redraws the bar for the given iteration. Reporting iteration ==
// total completes the bar and emits the trailing newline.
func (b *Bar) Update(iteration int) {
	if b.total <= 0 {
		return
	}
	percent := 100 * float64(iteration) / float64(b.total)
	filled := b.cfg.Width * iteration / b.total
	if filled > b.cfg.Width {
		filled = b.cfg.Width
	}

	bar := strings.Repeat(string(b.cfg.Fill), filled) +
		strings.Repeat("-", b.cfg.Width-filled)
	fmt.Fprintf(b.cfg.Writer, "\r%s |%s| %.*f%% %s",
		b.cfg.Prefix, bar, b.cfg.Decimals, percent, b.cfg.Suffix)

	if iteration >= b.total {
		fmt.Fprintln(b.cfg.Writer)
	}
}
