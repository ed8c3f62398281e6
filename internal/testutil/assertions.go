package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/kaprekar/internal/kaprekar"
	"github.com/thruflo/kaprekar/internal/routine"
)

// AssertSnapshot asserts the state and trajectory of a snapshot.
func AssertSnapshot(t *testing.T, snap routine.Snapshot, state routine.RunState, trajectory []int) {
	t.Helper()
	assert.Equal(t, state, snap.State, "state mismatch")
	assert.Equal(t, trajectory, snap.Trajectory, "trajectory mismatch")
}

// AssertIdle asserts that a snapshot is the cleared idle state.
func AssertIdle(t *testing.T, snap routine.Snapshot) {
	t.Helper()
	assert.Equal(t, routine.StateIdle, snap.State, "state mismatch")
	assert.Empty(t, snap.Trajectory, "trajectory should be empty")
	assert.Empty(t, snap.Steps, "steps should be empty")
	assert.Empty(t, snap.Error, "error should be cleared")
}

// AssertStepsConsistent asserts that every step transforms one trajectory
// value into the next.
func AssertStepsConsistent(t *testing.T, snap routine.Snapshot) {
	t.Helper()

	if len(snap.Trajectory) == 0 {
		assert.Empty(t, snap.Steps)
		return
	}
	require.Len(t, snap.Steps, len(snap.Trajectory)-1, "one step per transition")

	for i, step := range snap.Steps {
		assert.Equal(t, snap.Trajectory[i], step.Input, "steps[%d].Input", i)
		assert.Equal(t, snap.Trajectory[i+1], step.Difference, "steps[%d].Difference", i)
		assert.Equal(t, kaprekar.Transform(step.Input), step, "steps[%d]", i)
	}
}
