package signature

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// EventType is a recorded pointer action.
type EventType string

// Recorded pointer actions.
const (
	EventDown  EventType = "down"
	EventMove  EventType = "move"
	EventUp    EventType = "up"
	EventLeave EventType = "leave"
	EventClear EventType = "clear"
)

// Event is one recorded pointer action in displayed coordinates.
type Event struct {
	Type EventType `json:"type"`
	X    float64   `json:"x,omitempty"`
	Y    float64   `json:"y,omitempty"`
}

// Recording is a pointer event stream captured on a pad of the given
// displayed size.
type Recording struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Events []Event `json:"events"`
}

// ReadRecording decodes a JSON recording.
func ReadRecording(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding recording: %w", err)
	}
	if rec.Width == 0 && rec.Height == 0 {
		rec.Width, rec.Height = BackingWidth, BackingHeight
	}
	return &rec, nil
}

// Replay drives a pad with a recording, starting from base, and returns
// the last emitted signature. A stream that never emits returns base.
// A stroke still open at the end of the stream is finished as if the
// pointer were released.
func Replay(rec *Recording, base domain.EncodedImage) (domain.EncodedImage, error) {
	pad, err := NewPad(rec.Width, rec.Height)
	if err != nil {
		return "", err
	}
	if err := pad.Load(base); err != nil {
		return "", err
	}

	result := base
	for i, ev := range rec.Events {
		switch ev.Type {
		case EventDown:
			pad.Down(ev.X, ev.Y)
		case EventMove:
			pad.Move(ev.X, ev.Y)
		case EventUp, EventLeave:
			sig, emitted, err := pad.Up()
			if err != nil {
				return "", err
			}
			if emitted {
				result = sig
			}
		case EventClear:
			result = pad.Clear()
		default:
			return "", fmt.Errorf("%w: event %d has unknown type %q", domain.ErrInvalidInput, i, ev.Type)
		}
	}

	if pad.State() == StateDrawing {
		sig, _, err := pad.Up()
		if err != nil {
			return "", err
		}
		result = sig
	}
	return result, nil
}
