// Package routine drives Kaprekar's routine as a paced, bounded state
// machine. A Simulator owns at most one run at a time; each run pauses
// between ticks, applies one transform per tick, and stops when it reaches
// kaprekar.Constant or fills its trajectory bound.
package routine

import (
	"context"
	"sync"

	"github.com/thruflo/kaprekar/internal/kaprekar"
	"github.com/thruflo/kaprekar/internal/logging"
)

// DefaultMaxTrajectory bounds a run to 8 values (7 transforms). Every
// non-repdigit start reaches the constant within that many.
const DefaultMaxTrajectory = 8

// Observer receives a snapshot after every state change. Observers are
// called without the simulator's lock held, so they may call Snapshot,
// Start or Reset.
type Observer func(Snapshot)

// Options configures a Simulator.
type Options struct {
	Pacer         Pacer           // Defaults to a TimerPacer with DefaultInterval
	MaxTrajectory int             // Defaults to DefaultMaxTrajectory
	Logger        *logging.Logger // Defaults to a no-op logger
}

// Simulator runs Kaprekar's routine one tick at a time.
type Simulator struct {
	pacer         Pacer
	maxTrajectory int
	log           *logging.Logger

	mu         sync.Mutex
	state      RunState
	trajectory []int
	steps      []kaprekar.Step
	errMsg     string
	version    uint64
	gen        uint64 // bumped by every Start and Reset; stale ticks compare against it
	cancel     context.CancelFunc
	done       chan struct{}

	obsMu     sync.RWMutex
	observers []subscription
	nextObsID int
}

type subscription struct {
	id int
	fn Observer
}

// New creates an idle Simulator.
func New(opts Options) *Simulator {
	pacer := opts.Pacer
	if pacer == nil {
		pacer = NewTimerPacer(DefaultInterval)
	}
	maxTrajectory := opts.MaxTrajectory
	if maxTrajectory <= 0 {
		maxTrajectory = DefaultMaxTrajectory
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Simulator{
		pacer:         pacer,
		maxTrajectory: maxTrajectory,
		log:           logger.Component("routine"),
		state:         StateIdle,
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Simulator) Subscribe(fn Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current observable state.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Start begins a run from input.
//
// Start is only accepted while idle. While a run is ticking it returns
// ErrRunActive; from a terminal state it returns ErrNotIdle. Neither
// changes any state. Bad input moves the simulator to StateInvalid and
// returns an *InputError.
//
// Cancelling ctx tears the run down as if Reset had been called.
func (s *Simulator) Start(ctx context.Context, input string) error {
	s.mu.Lock()
	switch {
	case s.state == StateRunning:
		s.mu.Unlock()
		s.log.Warn("start rejected", "input", input, "reason", ErrRunActive)
		return ErrRunActive
	case s.state != StateIdle:
		st := s.state
		s.mu.Unlock()
		s.log.Warn("start rejected", "input", input, "state", st, "reason", ErrNotIdle)
		return ErrNotIdle
	}

	n, err := ParseInput(input)
	if err != nil {
		s.state = StateInvalid
		s.errMsg = err.Error()
		s.trajectory = nil
		s.steps = nil
		snap := s.changedLocked()
		s.mu.Unlock()

		s.log.Warn("invalid input", "input", input, "error", err)
		s.notify(snap)
		return err
	}

	s.gen++
	gen := s.gen
	s.trajectory = []int{n}
	s.steps = nil
	s.errMsg = ""

	// Nothing to tick toward when the input already is the constant.
	if n == kaprekar.Constant {
		s.state = StateReached
		snap := s.changedLocked()
		s.mu.Unlock()

		s.log.Info("run finished", "run", gen, "state", StateReached, "trajectory", snap.Trajectory)
		s.notify(snap)
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.state = StateRunning
	snap := s.changedLocked()
	s.mu.Unlock()

	s.log.Info("run started", "run", gen, "input", n)
	s.notify(snap)

	go s.run(runCtx, gen, done)
	return nil
}

// Reset cancels any active run and returns to StateIdle with an empty
// trajectory and no error. A tick already past its pause is discarded.
func (s *Simulator) Reset() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	prev := s.state
	s.resetLocked()
	snap := s.changedLocked()
	s.mu.Unlock()

	s.log.Debug("reset", "from", prev)
	s.notify(snap)
}

// Wait blocks until the most recently started tick loop has exited, or ctx
// is done. It returns immediately if no loop was ever started.
func (s *Simulator) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the tick loop for run gen.
func (s *Simulator) run(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	for {
		if err := s.pacer.Pause(ctx); err != nil {
			s.abandon(gen, err)
			return
		}

		snap, ok := s.advance(gen)
		if !ok {
			return
		}
		s.notify(snap)

		if snap.State.Terminal() {
			s.log.Info("run finished", "run", gen, "state", snap.State, "trajectory", snap.Trajectory)
			return
		}
	}
}

// advance applies one transform if gen is still the active run.
func (s *Simulator) advance(gen uint64) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.state != StateRunning {
		return Snapshot{}, false
	}

	current := s.trajectory[len(s.trajectory)-1]
	step := kaprekar.Transform(current)
	s.trajectory = append(s.trajectory, step.Difference)
	s.steps = append(s.steps, step)

	switch {
	case step.Difference == kaprekar.Constant:
		s.state = StateReached
	case len(s.trajectory) >= s.maxTrajectory:
		s.state = StateStalled
	}
	if s.state.Terminal() && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.log.Debug("tick", "run", gen, "input", current, "descending", step.Descending,
		"ascending", step.Ascending, "next", step.Difference)
	return s.changedLocked(), true
}

// abandon handles a pause cut short. If gen is still the active run its
// context was cancelled by the caller, which tears the run down.
func (s *Simulator) abandon(gen uint64, cause error) {
	s.mu.Lock()
	if s.gen != gen || s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.resetLocked()
	snap := s.changedLocked()
	s.mu.Unlock()

	s.log.Info("run cancelled", "run", gen, "cause", cause)
	s.notify(snap)
}

func (s *Simulator) resetLocked() {
	s.state = StateIdle
	s.trajectory = nil
	s.steps = nil
	s.errMsg = ""
}

func (s *Simulator) changedLocked() Snapshot {
	s.version++
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version: s.version,
		State:   s.state,
		Error:   s.errMsg,
	}
	if len(s.trajectory) > 0 {
		snap.Trajectory = append([]int(nil), s.trajectory...)
	}
	if len(s.steps) > 0 {
		snap.Steps = append([]kaprekar.Step(nil), s.steps...)
	}
	return snap
}

func (s *Simulator) notify(snap Snapshot) {
	s.obsMu.RLock()
	subs := make([]subscription, len(s.observers))
	copy(subs, s.observers)
	s.obsMu.RUnlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}
