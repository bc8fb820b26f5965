// Package watch drives the re-parse cycle for one document: a polling
// fingerprint check detects writes from any editor, a debouncer
// collapses save bursts, and every cycle is a full fresh parse. All
// parsing happens on the session's own goroutine; consumers receive
// results through a callback or a status channel and never share
// mutable state with the engine.
package watch

import (
	"context"
	"time"

	"github.com/tickdown/tickdown/internal/document"
	"github.com/tickdown/tickdown/internal/logging"
	"github.com/tickdown/tickdown/internal/outline"
	"github.com/tickdown/tickdown/internal/tasks"
)

// DefaultPollInterval is how often the file fingerprint is checked.
const DefaultPollInterval = 250 * time.Millisecond

// Trigger names what caused a parse cycle.
type Trigger string

const (
	// TriggerStart is the initial parse when a session begins.
	TriggerStart Trigger = "start"
	// TriggerChange is a parse caused by an observed file change.
	TriggerChange Trigger = "change"
	// TriggerManual is a parse forced by the user or by a toggle.
	TriggerManual Trigger = "manual"
)

// Status reports one completed parse cycle. When Err is set the
// previous Result remains the consumer's best knowledge of the
// document; the session keeps running either way.
type Status struct {
	Trigger  Trigger
	Result   tasks.Result
	Err      error
	Duration time.Duration
}

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	Parser   tasks.Parser
	Poll     time.Duration
	Debounce time.Duration
	Logger   *logging.SessionLogger
}

// Session watches one document and re-parses it on change. Create with
// NewSession, then drive it with Run or RunWithStatus; both block until
// the context ends.
type Session struct {
	store   *document.Store
	parser  tasks.Parser
	poll    time.Duration
	deb     *Debouncer
	logger  *logging.SessionLogger
	refresh chan struct{}

	last        document.Fingerprint
	statFailing bool
}

// NewSession returns a session over the given store.
func NewSession(store *document.Store, opts Options) *Session {
	poll := opts.Poll
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Session{
		store:   store,
		parser:  opts.Parser,
		poll:    poll,
		deb:     NewDebouncer(opts.Debounce),
		logger:  opts.Logger,
		refresh: make(chan struct{}, 1),
	}
}

// Refresh asks the session for an immediate re-parse, bypassing the
// debounce window. It never blocks and may be called from any
// goroutine; a refresh already queued absorbs further calls.
func (s *Session) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Cycle runs one synchronous read-scan-parse pass and logs it. A read
// failure is returned after logging; it does not stop a running
// session.
func (s *Session) Cycle(trigger Trigger) (tasks.Result, error) {
	start := time.Now()
	snap, err := s.store.Read()
	if err != nil {
		s.logger.Error("read document", err)
		return tasks.Result{}, err
	}
	s.last = snap.Fingerprint

	res := s.parser.Parse(outline.Scan(snap.Lines), snap.Lines)
	s.logger.Cycle(string(trigger), res.TotalOpen, res.TotalCompleted, len(res.Groups), time.Since(start))
	return res, nil
}

// Run parses once immediately, then keeps the document under watch
// until ctx ends, invoking fn after every cycle. fn runs on the
// session goroutine, so it must not call back into the session other
// than Refresh.
func (s *Session) Run(ctx context.Context, fn func(Status)) error {
	s.runCycle(TriggerStart, fn)

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.refresh:
			s.deb.Reset(time.Now())
			s.runCycle(TriggerManual, fn)
		case now := <-ticker.C:
			if s.poke(now) {
				s.runCycle(TriggerChange, fn)
			}
		}
	}
}

// RunWithStatus is Run with results delivered on a channel, which it
// closes on the way out. Sends block until received or the context
// ends, so give the channel a small buffer.
func (s *Session) RunWithStatus(ctx context.Context, ch chan<- Status) error {
	defer close(ch)
	return s.Run(ctx, func(st Status) {
		select {
		case ch <- st:
		case <-ctx.Done():
		}
	})
}

// poke checks the fingerprint at one tick and reports whether a parse
// should run now, feeding observed changes through the debouncer.
func (s *Session) poke(now time.Time) bool {
	fp, err := s.store.Stat()
	if err != nil {
		// The file can be briefly absent mid-save (write-temp-rename
		// editors) or deleted outright. Keep polling; log once per
		// outage rather than once per tick.
		if !s.statFailing {
			s.statFailing = true
			s.logger.Error("stat document", err)
		}
		return false
	}
	s.statFailing = false

	if fp != s.last {
		s.last = fp
		if s.deb.Notify(now) {
			return true
		}
	}
	return s.deb.Due(now)
}

func (s *Session) runCycle(trigger Trigger, fn func(Status)) {
	start := time.Now()
	res, err := s.Cycle(trigger)
	fn(Status{
		Trigger:  trigger,
		Result:   res,
		Err:      err,
		Duration: time.Since(start),
	})
}
