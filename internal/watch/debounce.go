package watch

import "time"

// DefaultDebounceWindow is how long a burst of changes must stay quiet
// before the trailing re-parse runs.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer collapses a burst of change notifications into at most two
// parse runs: one on the leading edge, when the first change arrives
// after a quiet stretch, and one trailing run once the burst has been
// quiet for a full window. An editor save storm therefore costs two
// parses instead of one per write.
//
// The debouncer is pure time arithmetic. It never sleeps and holds no
// timer; the caller feeds it the current time from its own tick loop.
// It is not safe for concurrent use, matching the single-goroutine
// session that owns it.
type Debouncer struct {
	window     time.Duration
	lastFire   time.Time
	lastChange time.Time
	pending    bool
}

// NewDebouncer returns a debouncer with the given quiet window. Zero or
// negative means DefaultDebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Notify records a change observed at now and reports whether the
// caller should parse immediately. The first change after a quiet
// window fires straight away; changes inside a burst are held for Due.
func (d *Debouncer) Notify(now time.Time) bool {
	if !d.pending && now.Sub(d.lastFire) >= d.window {
		d.lastFire = now
		return true
	}
	d.pending = true
	d.lastChange = now
	return false
}

// Due reports whether a held change has gone quiet for a full window
// and should be flushed now. It returns true at most once per burst.
func (d *Debouncer) Due(now time.Time) bool {
	if !d.pending || now.Sub(d.lastChange) < d.window {
		return false
	}
	d.pending = false
	d.lastFire = now
	return true
}

// Reset marks now as a fire, discarding any held change. Manual parse
// triggers call this so the work they just did is not repeated by a
// trailing flush.
func (d *Debouncer) Reset(now time.Time) {
	d.pending = false
	d.lastFire = now
}
