// Package stream encodes a run as newline-delimited JSON events so other
// programs can follow it. Each state change becomes a "state" event; each
// transform applied becomes a "step" event emitted just before it.
package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/thruflo/kaprekar/internal/kaprekar"
	"github.com/thruflo/kaprekar/internal/routine"
)

// MessageType identifies the type of message in the stream.
type MessageType string

const (
	// MessageTypeState is a full snapshot of the simulator.
	MessageTypeState MessageType = "state"
	// MessageTypeStep is one transform applied during a run.
	MessageTypeStep MessageType = "step"
)

// Event represents a message in the stream.
type Event struct {
	// Seq is assigned by the Writer, starting at 1.
	Seq uint64 `json:"seq,omitempty"`

	// Type identifies what kind of event this is.
	Type MessageType `json:"type"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Data contains the type-specific payload.
	// Use the typed accessor methods to get the concrete type.
	Data json.RawMessage `json:"data"`
}

// NewEvent creates a new Event with the given type and data.
func NewEvent(msgType MessageType, data any) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return &Event{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

// UnmarshalEvent deserializes an Event from JSON bytes.
func UnmarshalEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &e, nil
}

// StateEvent is the payload of a state event.
type StateEvent struct {
	Version    uint64 `json:"version"`
	State      string `json:"state"`
	Trajectory []int  `json:"trajectory"`
	Error      string `json:"error,omitempty"`
}

// StepEvent is the payload of a step event. Index is the 0-based position
// of the step within its run.
type StepEvent struct {
	Index int `json:"index"`
	kaprekar.Step
}

func newStateEvent(snap routine.Snapshot) StateEvent {
	trajectory := snap.Trajectory
	if trajectory == nil {
		trajectory = []int{}
	}
	return StateEvent{
		Version:    snap.Version,
		State:      snap.State.String(),
		Trajectory: trajectory,
		Error:      snap.Error,
	}
}

// StateData returns the state data if this is a state event.
func (e *Event) StateData() (*StateEvent, error) {
	if e.Type != MessageTypeState {
		return nil, fmt.Errorf("event is not a state event: %s", e.Type)
	}
	var data StateEvent
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state data: %w", err)
	}
	return &data, nil
}

// StepData returns the step data if this is a step event.
func (e *Event) StepData() (*StepEvent, error) {
	if e.Type != MessageTypeStep {
		return nil, fmt.Errorf("event is not a step event: %s", e.Type)
	}
	var data StepEvent
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal step data: %w", err)
	}
	return &data, nil
}
