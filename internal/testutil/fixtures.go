package testutil

import "github.com/thruflo/kaprekar/internal/routine"

// KnownRun is an input together with the run it must produce under the
// default trajectory bound.
type KnownRun struct {
	Name       string
	Input      string
	State      routine.RunState
	Trajectory []int
}

// KnownRuns returns runs whose outcome is fixed by the routine itself.
func KnownRuns() []KnownRun {
	return []KnownRun{
		{
			Name:       "three steps",
			Input:      "3524",
			State:      routine.StateReached,
			Trajectory: []int{3524, 3087, 8352, 6174},
		},
		{
			Name:       "repdigit stalls at zero",
			Input:      "1111",
			State:      routine.StateStalled,
			Trajectory: []int{1111, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			Name:       "zero stalls",
			Input:      "0",
			State:      routine.StateStalled,
			Trajectory: []int{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			Name:       "six transforms",
			Input:      "6",
			State:      routine.StateReached,
			Trajectory: []int{6, 5994, 5355, 1998, 8082, 8532, 6174},
		},
		{
			Name:       "constant on the last allowed value",
			Input:      "14",
			State:      routine.StateReached,
			Trajectory: []int{14, 4086, 8172, 7443, 3996, 6264, 4176, 6174},
		},
		{
			Name:       "short input is padded",
			Input:      "21",
			State:      routine.StateReached,
			Trajectory: []int{21, 2088, 8532, 6174},
		},
		{
			Name:       "leading zeros kept as digits",
			Input:      "0021",
			State:      routine.StateReached,
			Trajectory: []int{21, 2088, 8532, 6174},
		},
		{
			Name:       "already constant",
			Input:      "6174",
			State:      routine.StateReached,
			Trajectory: []int{6174},
		},
	}
}

// InvalidInputs returns inputs that must be rejected.
func InvalidInputs() []string {
	return []string{"", "12a4", "99999", "-12", " 12", "1e3", "12.5", "١٢٣"}
}
