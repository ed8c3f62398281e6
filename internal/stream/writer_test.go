package stream

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/kaprekar/internal/kaprekar"
	"github.com/thruflo/kaprekar/internal/routine"
	"github.com/thruflo/kaprekar/internal/testutil"
)

func TestWriterRecordsRun(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	sim := routine.New(routine.Options{Pacer: routine.ImmediatePacer{}})
	sim.Subscribe(w.Observe)

	ctx, cancel := testutil.RunContext(t)
	defer cancel()
	require.NoError(t, sim.Start(ctx, "3524"))
	require.NoError(t, sim.Wait(ctx))
	require.NoError(t, w.Err())

	events, err := ReadAll(&buf)
	require.NoError(t, err)

	var types []MessageType
	for i, e := range events {
		types = append(types, e.Type)
		assert.Equal(t, uint64(i+1), e.Seq)
		assert.Equal(t, fixed, e.Timestamp)
	}
	assert.Equal(t, []MessageType{
		MessageTypeState,
		MessageTypeStep, MessageTypeState,
		MessageTypeStep, MessageTypeState,
		MessageTypeStep, MessageTypeState,
	}, types)

	step, err := events[3].StepData()
	require.NoError(t, err)
	assert.Equal(t, 1, step.Index)
	assert.Equal(t, kaprekar.Transform(3087), step.Step)

	last, err := events[len(events)-1].StateData()
	require.NoError(t, err)
	assert.Equal(t, "reached", last.State)
	assert.Equal(t, []int{3524, 3087, 8352, 6174}, last.Trajectory)
}

func TestWriterInvalidAndReset(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Observe(routine.Snapshot{Version: 1, State: routine.StateRunning, Trajectory: []int{3524}})
	w.Observe(routine.Snapshot{Version: 2, State: routine.StateRunning, Trajectory: []int{3524, 3087},
		Steps: []kaprekar.Step{kaprekar.Transform(3524)}})
	w.Observe(routine.Snapshot{Version: 3, State: routine.StateIdle})
	w.Observe(routine.Snapshot{Version: 4, State: routine.StateInvalid, Error: "bad"})
	w.Observe(routine.Snapshot{Version: 4, State: routine.StateIdle}) // stale

	events, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, events, 5)

	idle, err := events[3].StateData()
	require.NoError(t, err)
	assert.Equal(t, "idle", idle.State)
	assert.Equal(t, []int{}, idle.Trajectory)

	invalid, err := events[4].StateData()
	require.NoError(t, err)
	assert.Equal(t, "bad", invalid.Error)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterKeepsFirstError(t *testing.T) {
	w := NewWriter(failingWriter{})

	w.Observe(routine.Snapshot{Version: 1, State: routine.StateRunning, Trajectory: []int{3524}})
	w.Observe(routine.Snapshot{Version: 2, State: routine.StateReached, Trajectory: []int{6174}})

	require.Error(t, w.Err())
	assert.Contains(t, w.Err().Error(), "disk full")
	assert.Equal(t, uint64(1), w.seq)
}

func TestEventAccessorsRejectWrongType(t *testing.T) {
	e, err := NewEvent(MessageTypeStep, StepEvent{Step: kaprekar.Transform(6174)})
	require.NoError(t, err)

	_, err = e.StateData()
	assert.Error(t, err)

	step, err := e.StepData()
	require.NoError(t, err)
	assert.Equal(t, 6174, step.Difference)
}

func TestReadAll(t *testing.T) {
	input := `{"seq":1,"type":"state","timestamp":"2026-10-19T12:00:00Z","data":{"version":1,"state":"running","trajectory":[21]}}

{"seq":2,"type":"step","timestamp":"2026-10-19T12:00:01Z","data":{"index":0,"input":21,"ascending":12,"descending":2100,"difference":2088}}
`
	events, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, events, 2)

	step, err := events[1].StepData()
	require.NoError(t, err)
	assert.Equal(t, kaprekar.Transform(21), step.Step)

	_, err = ReadAll(strings.NewReader("{not json}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
