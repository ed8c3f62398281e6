package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/thruflo/kaprekar/internal/routine"
)

// Writer writes a run's events to an io.Writer as NDJSON. Pass Observe to
// routine.Simulator.Subscribe. Stale snapshots are dropped by Version.
type Writer struct {
	mu      sync.Mutex
	enc     *json.Encoder
	now     func() time.Time
	seq     uint64
	version uint64
	steps   int
	err     error
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		enc: json.NewEncoder(w),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Observe writes step events for any transforms not yet written, then a
// state event for snap. Write errors are kept and reported by Err; once one
// occurs nothing more is written.
func (w *Writer) Observe(snap routine.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil || (snap.Version != 0 && snap.Version <= w.version) {
		return
	}
	w.version = snap.Version

	if len(snap.Steps) < w.steps {
		// A reset or new run started over.
		w.steps = 0
	}
	for ; w.steps < len(snap.Steps); w.steps++ {
		if err := w.append(MessageTypeStep, StepEvent{Index: w.steps, Step: snap.Steps[w.steps]}); err != nil {
			return
		}
	}

	_ = w.append(MessageTypeState, newStateEvent(snap))
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Writer) append(msgType MessageType, data any) error {
	e, err := NewEvent(msgType, data)
	if err != nil {
		w.err = err
		return err
	}
	w.seq++
	e.Seq = w.seq
	e.Timestamp = w.now()

	if err := w.enc.Encode(e); err != nil {
		w.err = fmt.Errorf("failed to write event: %w", err)
		return w.err
	}
	return nil
}

// ReadAll decodes every event from an NDJSON stream. Blank lines are
// skipped.
func ReadAll(r io.Reader) ([]*Event, error) {
	var events []*Event
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		e, err := UnmarshalEvent(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		events = append(events, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
