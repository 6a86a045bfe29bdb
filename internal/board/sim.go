package board

import (
	"sync"
	"time"
)

// DefaultTickRate is the interval between automatic simulation steps until
// SetTickRate overrides it.
const DefaultTickRate = 800 * time.Millisecond

// minTickRate bounds SetTickRate below so a misconfigured rate cannot spin
// the timer loop.
const minTickRate = 10 * time.Millisecond

// SourceFunc supplies the current task set. The simulator calls it fresh on
// every step so a tick always sees the latest board, never a snapshot
// captured when the run started.
type SourceFunc func() []Task

// Snapshot is the payload delivered to subscribers on every state change.
type Snapshot struct {
	// CompletedIDs is the simulation's completion history in order.
	CompletedIDs []string `json:"completed_ids"`

	// Playing reports whether the automatic stepper is running.
	Playing bool `json:"is_playing"`

	// ExecutionOrder holds the IDs of the tasks still eligible to run,
	// highest-ranked first, with the overlay applied.
	ExecutionOrder []string `json:"execution_order"`
}

// Simulation steps through a board answering "in what order would tasks get
// done if we always picked the highest-priority eligible task". Each step
// marks the top-ranked eligible task complete in a shadow overlay and
// re-resolves statuses, so completing a task can unblock its dependents on
// the next step. The real task set is never mutated.
//
// All methods are safe for concurrent use. Subscriber callbacks are invoked
// outside the internal lock and may call back into the Simulation.
type Simulation struct {
	mu       sync.Mutex
	source   SourceFunc
	tickRate time.Duration

	completed CompletedSet
	history   []string
	playing   bool

	// gen invalidates pending timer callbacks: every pause, reset, and
	// rate change bumps it, so a tick scheduled under an older generation
	// returns without stepping. This is what makes Pause deterministic.
	gen   uint64
	timer *time.Timer

	// initiallyBlocked is the set of task IDs that were restricted before
	// the simulation completed anything. It is captured at construction
	// and on Reset, and deliberately not recomputed while completions
	// exist, so before/after reporting keeps its meaning even if the
	// underlying board changes mid-run.
	initiallyBlocked []string

	subs []func(Snapshot)
}

// NewSimulation creates an idle simulation over the given source.
func NewSimulation(source SourceFunc) *Simulation {
	s := &Simulation{
		source:    source,
		tickRate:  DefaultTickRate,
		completed: make(CompletedSet),
	}
	s.initiallyBlocked = s.blockedNow()
	return s
}

// Subscribe registers fn to receive a Snapshot after every state change.
// There is no unsubscribe; subscriber lifetime matches the simulation's.
func (s *Simulation) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Start begins automatic stepping at the current tick rate. Starting an
// already-running simulation, or one with nothing eligible to run, is a
// no-op.
func (s *Simulation) Start() {
	s.mu.Lock()
	if s.playing || len(s.executionOrderLocked()) == 0 {
		s.mu.Unlock()
		return
	}
	s.playing = true
	s.gen++
	s.scheduleLocked()
	s.notifyAndUnlock()
}

// Pause stops automatic stepping. No step fires after Pause returns: the
// pending timer is stopped and its generation invalidated.
func (s *Simulation) Pause() {
	s.mu.Lock()
	s.stopTimerLocked()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = false
	s.notifyAndUnlock()
}

// Reset clears the completion overlay and history, stops any run, and
// recaptures the initially-blocked snapshot from the current board.
func (s *Simulation) Reset() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.playing = false
	s.completed = make(CompletedSet)
	s.history = nil
	s.initiallyBlocked = s.blockedNow()
	s.notifyAndUnlock()
}

// SetTickRate changes the interval between automatic steps. While running,
// the pending tick is cancelled and rescheduled at the new cadence, so no
// step is skipped or double-fired. Rates below 10ms are clamped.
func (s *Simulation) SetTickRate(d time.Duration) {
	if d < minTickRate {
		d = minTickRate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickRate = d
	if s.playing {
		// Re-arm under a fresh generation so the old cadence cannot fire.
		s.stopTimerLocked()
		s.scheduleLocked()
	}
}

// TickRate returns the current interval between automatic steps.
func (s *Simulation) TickRate() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickRate
}

// Step performs exactly one manual step: the top-ranked eligible task is
// marked complete in the overlay. It returns false when nothing was
// eligible (the simulation is exhausted).
func (s *Simulation) Step() bool {
	s.mu.Lock()
	ok := s.stepLocked()
	if !ok && s.playing {
		s.stopTimerLocked()
		s.playing = false
	}
	s.notifyAndUnlock()
	return ok
}

// Run steps the simulation synchronously until exhaustion and returns the
// completion history. It is the pull-based equivalent of letting the timer
// drain the board, used by non-interactive consumers.
func (s *Simulation) Run() []string {
	for s.Step() {
	}
	return s.History()
}

// Current returns the simulation's current state.
func (s *Simulation) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// History returns the ordered completion history so far.
func (s *Simulation) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Completed reports whether the simulation has completed the given task.
func (s *Simulation) Completed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed[id]
}

// InitiallyBlocked returns the IDs of tasks that were restricted before the
// simulation completed anything, for before/after comparison.
func (s *Simulation) InitiallyBlocked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.initiallyBlocked))
	copy(out, s.initiallyBlocked)
	return out
}

// scheduleLocked arms the timer for one tick under the current generation.
// Caller must hold s.mu.
func (s *Simulation) scheduleLocked() {
	gen := s.gen
	s.timer = time.AfterFunc(s.tickRate, func() { s.tick(gen) })
}

// stopTimerLocked cancels the pending tick and invalidates its generation.
// Caller must hold s.mu.
func (s *Simulation) stopTimerLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// tick is the timer callback: one step, then reschedule. A stale generation
// means the run was paused, reset, or re-paced after this tick was armed, in
// which case it does nothing.
func (s *Simulation) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.playing {
		s.mu.Unlock()
		return
	}

	if s.stepLocked() {
		s.scheduleLocked()
	} else {
		// Exhausted: nothing eligible remains, fall back to idle.
		s.playing = false
	}
	s.notifyAndUnlock()
}

// stepLocked recomputes the execution order with the overlay applied and
// completes its head. Exactly one task per call. Caller must hold s.mu;
// returns false when the order is empty.
func (s *Simulation) stepLocked() bool {
	// While nothing has completed, the start state is still "initial";
	// keep the snapshot in sync with external edits until the first step.
	if len(s.completed) == 0 {
		s.initiallyBlocked = s.blockedNow()
	}

	order := s.executionOrderLocked()
	if len(order) == 0 {
		return false
	}

	head := order[0]
	s.completed[head.ID] = true
	s.history = append(s.history, head.ID)
	return true
}

// executionOrderLocked derives the current execution order from a fresh read
// of the source. Caller must hold s.mu.
func (s *Simulation) executionOrderLocked() []Annotated {
	return ExecutionOrder(Rank(Annotate(s.source(), s.completed)))
}

// blockedNow returns the IDs restricted in the unmodified current board.
func (s *Simulation) blockedNow() []string {
	var blocked []string
	for _, a := range Annotate(s.source(), nil) {
		if a.Blocked() {
			blocked = append(blocked, a.ID)
		}
	}
	return blocked
}

// snapshotLocked builds a Snapshot. Caller must hold s.mu.
func (s *Simulation) snapshotLocked() Snapshot {
	completed := make([]string, len(s.history))
	copy(completed, s.history)

	order := s.executionOrderLocked()
	orderIDs := make([]string, len(order))
	for i, a := range order {
		orderIDs[i] = a.ID
	}

	return Snapshot{
		CompletedIDs:   completed,
		Playing:        s.playing,
		ExecutionOrder: orderIDs,
	}
}

// notifyAndUnlock snapshots state, releases the lock, and fans the snapshot out
// to subscribers. Callbacks run unlocked so they may call back into the
// simulation. Caller must hold s.mu; the lock is released on return.
func (s *Simulation) notifyAndUnlock() {
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
