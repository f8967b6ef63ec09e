// Package presenter implements the single-threaded serializer that receives
// due-reminder dispatches from the scheduler, enforces at-most-one active
// reminder, queues overflow, and forwards user responses back to the
// scheduler. Grounded on the source's ReminderTrigger /
// _on_reminder_triggered / _process_queue (app.py).
package presenter

import (
	"time"

	"github.com/hzerrad/reminderd/internal/reminder"
)

// requeueDelay is the brief pause before presenting the next queued
// reminder once the active one clears, matching spec.md §4.4's "≈500 ms".
const requeueDelay = 500 * time.Millisecond

// Presenter is the surface the core uses to drive a concrete rendering
// implementation (spec.md §6's "presenter-facing API"). A GUI overlay,
// consoleui's stand-in, or a test double may implement it.
type Presenter interface {
	Present(def reminder.Definition)
}

// Scheduler is the subset of scheduler.Scheduler the Coordinator calls back
// into on user response, kept narrow so presenter does not import scheduler
// and create a cycle.
type Scheduler interface {
	Snooze(name string, seconds int)
	Complete(name string)
}

// msgKind distinguishes the two message shapes the Coordinator's inbox
// carries: a due dispatch from the scheduler, and a user response read back
// from the concrete presenter (e.g. consoleui's stdin reader).
type msgKind int

const (
	msgDue msgKind = iota
	msgComplete
	msgSnooze
)

type coordinatorMsg struct {
	kind     msgKind
	name     string
	duration int // seconds, only for msgSnooze
}

// Coordinator is the presenter's single-threaded event loop. It owns a
// dedicated goroutine modeling the "foreign GUI thread" spec.md §4.4 and §5
// describe: no additional locking is needed because only this goroutine
// ever touches activeName/queue.
type Coordinator struct {
	inbox     chan coordinatorMsg
	stopCh    chan struct{}
	doneCh    chan struct{}
	presenter Presenter
	scheduler Scheduler
	catalogue *reminder.Catalogue

	activeName string
	queue      []string
}

// New creates a Coordinator. Call Start to launch its event loop goroutine.
func New(p Presenter, s Scheduler, cat *reminder.Catalogue) *Coordinator {
	return &Coordinator{
		inbox:     make(chan coordinatorMsg, 256), // generously buffered: a due event is never dropped
		presenter: p,
		scheduler: s,
		catalogue: cat,
	}
}

// Start launches the coordinator's event loop goroutine.
func (c *Coordinator) Start() {
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	go c.loop()
}

// Stop requests the event loop to exit and waits for it to do so.
func (c *Coordinator) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// OnReminderDue is the scheduler's handoff entrypoint — safe to call from
// the scheduler's background worker. It only enqueues; the actual state
// transition runs on the coordinator's own goroutine.
func (c *Coordinator) OnReminderDue(name string) {
	c.inbox <- coordinatorMsg{kind: msgDue, name: name}
}

// OnUserComplete is called by the concrete presenter when the user
// acknowledges the active reminder.
func (c *Coordinator) OnUserComplete(name string) {
	c.inbox <- coordinatorMsg{kind: msgComplete, name: name}
}

// OnUserSnooze is called by the concrete presenter when the user postpones
// the active reminder.
func (c *Coordinator) OnUserSnooze(name string, durationSeconds int) {
	c.inbox <- coordinatorMsg{kind: msgSnooze, name: name, duration: durationSeconds}
}

func (c *Coordinator) loop() {
	defer close(c.doneCh)

	var requeueTimer *time.Timer
	var requeueC <-chan time.Time

	for {
		select {
		case <-c.stopCh:
			if requeueTimer != nil {
				requeueTimer.Stop()
			}
			return
		case msg := <-c.inbox:
			switch msg.kind {
			case msgDue:
				c.handleDue(msg.name)
			case msgComplete:
				c.scheduler.Complete(msg.name)
				c.clearActiveAndScheduleNext(&requeueTimer, &requeueC)
			case msgSnooze:
				c.scheduler.Snooze(msg.name, msg.duration)
				c.clearActiveAndScheduleNext(&requeueTimer, &requeueC)
			}
		case <-requeueC:
			requeueC = nil
			c.presentNext()
		}
	}
}

// handleDue implements spec.md §4.4's state machine: Idle -> Presenting on
// due; Presenting(name) -> Presenting(name), queue.push(other) on a second
// due event.
func (c *Coordinator) handleDue(name string) {
	if c.activeName == "" {
		c.show(name)
		return
	}
	c.queue = append(c.queue, name)
}

// clearActiveAndScheduleNext implements the Presenting -> Idle / Presenting
// transition on user response: idle if the queue is empty, otherwise the
// next queued reminder is presented after requeueDelay.
func (c *Coordinator) clearActiveAndScheduleNext(timer **time.Timer, timerC *<-chan time.Time) {
	c.activeName = ""
	if len(c.queue) == 0 {
		return
	}

	*timer = time.NewTimer(requeueDelay)
	*timerC = (*timer).C
}

func (c *Coordinator) presentNext() {
	if len(c.queue) == 0 {
		return
	}
	next := c.queue[0]
	c.queue = c.queue[1:]
	c.show(next)
}

func (c *Coordinator) show(name string) {
	def, ok := c.catalogue.Get(name)
	if !ok {
		return // spec.md §7 UnknownReminder: logged upstream, no-op here
	}
	c.activeName = name
	c.presenter.Present(def)
}
