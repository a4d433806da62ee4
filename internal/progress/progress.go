package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Bar renders a single-line terminal progress bar. Increment is safe to call
// from multiple goroutines, which is how the binary comparator drives it.
type Bar struct {
	total      int64
	current    int64
	width      int
	writer     io.Writer
	mu         sync.Mutex
	lastPath   string
	enabled    bool
	lastUpdate time.Time
}

func New(total int64) *Bar {
	return &Bar{
		total:      total,
		width:      40,
		writer:     os.Stderr,
		enabled:    total > 0,
		lastUpdate: time.Now(),
	}
}

// Increment advances the bar by one finished entry, showing path as the most
// recently processed item.
func (b *Bar) Increment(path string) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	b.lastPath = path

	// Redraw at most every 100ms to avoid flickering.
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu held.
func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	percent := float64(b.current) / float64(b.total) * 100
	filled := int(float64(b.width) * float64(b.current) / float64(b.total))
	if filled > b.width {
		filled = b.width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)

	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d) %s",
		bar, int(percent), b.current, b.total, b.lastPath)
}

func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = b.total
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
