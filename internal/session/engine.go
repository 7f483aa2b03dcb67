// Package session runs the focus session state machine: one timed
// interval against a single activity, with pause/resume, that produces
// a session record in today's day session when it ends.
package session

import (
	"time"

	"github.com/a-cup-of-joe/reflection/internal/store"
)

// State of the engine.
type State int

const (
	NoSession State = iota
	Active
	Paused
)

// Engine accumulates elapsed focus time for one activity at a time.
// Elapsed accrual is driven by an external periodic tick; the engine
// itself only reads the wall clock.
type Engine struct {
	store *store.Store

	state      State
	activityID string
	startTime  time.Time
	elapsed    time.Duration
	pausedAt   time.Time
	pauseGap   time.Duration

	subs []func()
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Subscribe registers fn to run after every recorded session.
func (e *Engine) Subscribe(fn func()) {
	e.subs = append(e.subs, fn)
}

func (e *Engine) notify() {
	for _, fn := range e.subs {
		fn()
	}
}

// Start begins a session against activityID. A session already in
// flight is ended (and recorded) first; sessions never overlap.
func (e *Engine) Start(activityID string) {
	if e.state != NoSession {
		e.End()
	}
	e.state = Active
	e.activityID = activityID
	e.startTime = time.Now()
	e.elapsed = 0
	e.pauseGap = 0
}

// Pause stops elapsed accrual. Valid only while active.
func (e *Engine) Pause() {
	if e.state != Active {
		return
	}
	e.syncElapsed()
	e.state = Paused
	e.pausedAt = time.Now()
}

// Resume restarts accrual. Valid only while paused.
func (e *Engine) Resume() {
	if e.state != Paused {
		return
	}
	e.pauseGap += time.Since(e.pausedAt)
	e.state = Active
}

// Toggle pauses an active session or resumes a paused one.
func (e *Engine) Toggle() {
	switch e.state {
	case Active:
		e.Pause()
	case Paused:
		e.Resume()
	}
}

// Tick refreshes the accumulated elapsed time. Called once per second
// by the owning event loop while the program runs; accrual advances
// only through ticks and state transitions, so a paused session stays
// frozen without extra bookkeeping.
func (e *Engine) Tick() {
	if e.state == Active {
		e.syncElapsed()
	}
}

func (e *Engine) syncElapsed() {
	e.elapsed = time.Since(e.startTime) - e.pauseGap
}

// End records the session in today's day session and returns the
// engine to NoSession. Returns nil when no session was in flight.
func (e *Engine) End() *store.Session {
	if e.state == NoSession {
		return nil
	}
	if e.state == Active {
		e.syncElapsed()
	}
	sess := e.store.AddSessionToToday(e.activityID, e.startTime, int64(e.elapsed.Seconds()))
	e.reset()
	e.notify()
	return &sess
}

// Cancel discards the session in flight without recording anything.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.state = NoSession
	e.activityID = ""
	e.elapsed = 0
	e.pauseGap = 0
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// ActivityID returns the activity the in-flight session is bound to.
func (e *Engine) ActivityID() string {
	return e.activityID
}

// Running reports whether a session is in flight, paused or not.
func (e *Engine) Running() bool {
	return e.state != NoSession
}

// Elapsed returns the focus time accrued up to the most recent tick or
// state transition, excluding time spent paused.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}
