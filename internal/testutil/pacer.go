package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/thruflo/kaprekar/internal/routine"
)

// GatedPacer is a routine.Pacer that holds every pause until the test calls
// Release.
type GatedPacer struct {
	// IgnoreCancel keeps a pause blocked even after its run is cancelled,
	// modelling a tick already in flight when Reset is called.
	IgnoreCancel bool

	release chan struct{}
	paused  chan struct{}
}

// NewGatedPacer creates a GatedPacer.
func NewGatedPacer() *GatedPacer {
	return &GatedPacer{
		release: make(chan struct{}),
		paused:  make(chan struct{}, 64),
	}
}

// Pause implements routine.Pacer.
func (p *GatedPacer) Pause(ctx context.Context) error {
	p.paused <- struct{}{}

	if p.IgnoreCancel {
		<-p.release
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.release:
		return nil
	}
}

// WaitPaused blocks until a tick loop is parked in Pause.
func (p *GatedPacer) WaitPaused(t *testing.T) {
	t.Helper()
	select {
	case <-p.paused:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the tick loop to pause")
	}
}

// Release lets exactly one parked pause return.
func (p *GatedPacer) Release(t *testing.T) {
	t.Helper()
	select {
	case p.release <- struct{}{}:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out releasing a pause")
	}
}

// Recorder collects every snapshot delivered to it.
type Recorder struct {
	mu    sync.Mutex
	snaps []routine.Snapshot
}

// Observe implements routine.Observer when passed as rec.Observe.
func (r *Recorder) Observe(snap routine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
}

// Snapshots returns a copy of everything recorded so far.
func (r *Recorder) Snapshots() []routine.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]routine.Snapshot(nil), r.snaps...)
}

// States returns the recorded states in delivery order.
func (r *Recorder) States() []routine.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := make([]routine.RunState, len(r.snaps))
	for i, s := range r.snaps {
		states[i] = s.State
	}
	return states
}
