// Package testutil provides shared test helpers for kaprekar.
//
// # Fixtures
//
// The fixtures.go file provides known runs of the routine:
//
//   - KnownRuns() - inputs with their expected final state and trajectory
//   - InvalidInputs() - inputs that must move a simulator to StateInvalid
//
// # Pacing
//
// The pacer.go file provides GatedPacer, a routine.Pacer whose ticks are
// released one at a time by the test, and Recorder, an observer that keeps
// every snapshot it is given.
//
// # Assertions
//
// The assertions.go file provides snapshot assertions:
//
//   - AssertSnapshot(t, snap, state, trajectory)
//   - AssertIdle(t, snap) - idle, empty trajectory, no error
//   - AssertStepsConsistent(t, snap) - steps line up with the trajectory
//
// # Timeouts
//
// The timeout.go file provides contexts that respect the test deadline:
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.ShortOperationContext(t)
//	    defer cancel()
//	    require.NoError(t, sim.Start(ctx, "3524"))
//	    require.NoError(t, sim.Wait(ctx))
//	}
package testutil
