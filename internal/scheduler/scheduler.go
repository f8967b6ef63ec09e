// Package scheduler owns the set of scheduled reminders, ticks once per
// second on a background worker, detects due reminders, and dispatches them
// across a thread boundary to a presenter, accepting snooze/complete
// feedback in return.
package scheduler

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hzerrad/reminderd/internal/cronx"
)

// TickInterval is the worker's wake period. 1 second matches the source's
// CHECK_INTERVAL and spec.md §4.3's TICK_INTERVAL.
const TickInterval = 1 * time.Second

// stopWait bounds how long Stop blocks for the worker to observe the
// cancellation request, mirroring the source's thread.join(timeout=2.0).
const stopWait = 2 * time.Second

// ErrInvalidSchedule is returned by Add when schedule is nil or has no
// firing instant within cronx's search horizon.
var ErrInvalidSchedule = errors.New("scheduler: invalid schedule")

// OnDue is the opaque callback handle supplied by the presenter. The
// scheduler never assumes it is thread-affine; it is invoked with the lock
// released (spec.md §5).
type OnDue func(name string)

// entry is the mutable scheduler state for one reminder (spec.md §3's
// ScheduledEntry), held by Scheduler exclusively.
type entry struct {
	name                 string
	schedule             *cronx.Schedule
	onDue                OnDue
	nextFire             time.Time
	snoozedUntil         time.Time // zero value means "not snoozed"
	lastDispatchedMinute int64
	hasSnooze            bool
}

// StatusRecord reports one reminder's scheduling state for display (the
// source's get_status/_show_status shape).
type StatusRecord struct {
	NextFire      time.Time
	SnoozedUntil  *time.Time
	EffectiveNext time.Time
}

// Scheduler owns the catalogue of scheduled reminders and drives the tick
// loop. Construct with New; it does nothing until Start is called.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string // insertion order, for deterministic Status() iteration

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	logger *log.Logger
}

// New creates a Scheduler. logger receives diagnostics about recovered
// on_due panics; pass log.Default() if the caller has no preference.
func New(logger *log.Logger) *Scheduler {
	return &Scheduler{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Add registers or replaces a reminder. Computes the initial next-fire
// instant as NextAfter(schedule, now()). Replacing a name is atomic from the
// caller's perspective (spec.md §3 invariant 3).
func (s *Scheduler) Add(name string, schedule *cronx.Schedule, onDue OnDue) error {
	if schedule == nil {
		return fmt.Errorf("%w: %s: nil schedule", ErrInvalidSchedule, name)
	}

	next, err := cronx.NextAfter(schedule, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSchedule, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	s.entries[name] = &entry{
		name:     name,
		schedule: schedule,
		onDue:    onDue,
		nextFire: next,
	}

	return nil
}

// Remove deletes a reminder from the schedule. Idempotent.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return
	}
	delete(s.entries, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Snooze postpones name's next dispatch to now + seconds. Idempotent and a
// no-op on an unknown name (spec.md §7's UnknownReminder: logged, no-op).
func (s *Scheduler) Snooze(name string, seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		s.logf("snooze: unknown reminder %q", name)
		return
	}
	e.snoozedUntil = time.Now().Add(time.Duration(seconds) * time.Second)
	e.hasSnooze = true
}

// Complete clears any active snooze and recomputes next_fire relative to
// now. A no-op on an unknown name.
func (s *Scheduler) Complete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		s.logf("complete: unknown reminder %q", name)
		return
	}
	s.recompute(e, time.Now())
}

// recompute clears the snooze and advances next_fire; caller holds s.mu.
func (s *Scheduler) recompute(e *entry, now time.Time) {
	e.hasSnooze = false
	e.snoozedUntil = time.Time{}
	next, err := cronx.NextAfter(e.schedule, now)
	if err != nil {
		s.logf("reminder %q became unsatisfiable: %v", e.name, err)
		return
	}
	e.nextFire = next
}

// Start launches the background tick worker. Idempotent: calling Start on an
// already-running scheduler is a no-op (spec.md §7's SchedulerAlreadyRunning).
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop()
}

// Stop requests the worker to exit and waits up to stopWait for it to do so,
// returning regardless of whether it observed the exit in time.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	select {
	case <-done:
	case <-time.After(stopWait):
	}
}

// Status returns a snapshot of every scheduled reminder's state, keyed by
// name. The result is a map, so it carries no iteration order.
func (s *Scheduler) Status() map[string]StatusRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result := make(map[string]StatusRecord, len(s.order))
	for _, name := range s.order {
		e := s.entries[name]
		record := StatusRecord{
			NextFire:      e.nextFire,
			EffectiveNext: effective(e, now),
		}
		if e.hasSnooze {
			until := e.snoozedUntil
			record.SnoozedUntil = &until
		}
		result[name] = record
	}
	return result
}

func effective(e *entry, now time.Time) time.Time {
	if e.hasSnooze && e.snoozedUntil.After(now) {
		return e.snoozedUntil
	}
	return e.nextFire
}

// runLoop is the worker's tick loop, run on its own goroutine.
func (s *Scheduler) runLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick(time.Now())
		}
	}
}

// tick runs one scan of every entry, dispatching due reminders. Exactly
// spec.md §4.3's algorithm: compute minute_index once, scan entries in
// insertion order under the lock, release the lock before invoking on_due.
func (s *Scheduler) tick(now time.Time) {
	minuteIndex := now.Unix() / 60

	var due []OnDue
	var dueNames []string

	s.mu.Lock()
	for _, name := range s.order {
		e := s.entries[name]

		eff := effective(e, now)
		if eff.After(now) {
			continue
		}
		if e.lastDispatchedMinute == minuteIndex {
			continue
		}

		e.lastDispatchedMinute = minuteIndex
		s.recompute(e, now)

		due = append(due, e.onDue)
		dueNames = append(dueNames, e.name)
	}
	s.mu.Unlock()

	for i, cb := range due {
		s.invoke(cb, dueNames[i])
	}
}

// invoke calls on_due with the lock released, recovering any panic so a
// misbehaving callback cannot take down the worker (spec.md §7's
// CallbackFailure: caught by the worker, logged, the tick continues).
func (s *Scheduler) invoke(cb OnDue, name string) {
	defer func() {
		if r := recover(); r != nil {
			s.logf("on_due(%q) panicked: %v", name, r)
		}
	}()
	cb(name)
}

func (s *Scheduler) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
