// Package events records search lifecycle events in a bounded in-memory
// log and mirrors each one to the structured logger.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AaronLay10/vacuumworld/internal/logging"
)

var buffer = NewRingBuffer(256)

type Event struct {
	Timestamp string                 `json:"ts"`
	Level     string                 `json:"level"`
	Name      string                 `json:"event"`
	Message   string                 `json:"msg,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Emit validates the event name, buffers the event, logs it and returns
// its JSON encoding.
func Emit(level, name, msg string, fields map[string]interface{}) ([]byte, error) {
	if err := Validate(name); err != nil {
		return nil, err
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Name:      name,
		Message:   msg,
		Fields:    fields,
	}
	buffer.Add(e)

	entry := logging.At(level).With(logging.Str("event", name))
	for k, v := range fields {
		entry = entry.With(logging.Str(k, fmt.Sprint(v)))
	}
	if msg == "" {
		msg = name
	}
	entry.Msg(msg)

	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return b, nil
}

func Snapshot() []Event {
	return buffer.Snapshot()
}

// RecentEvents returns the last n events. n <= 0, or more than are
// buffered, returns all of them.
func RecentEvents(n int) []Event {
	all := buffer.Snapshot()
	if n <= 0 || n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

// TotalCount is the number of events emitted since startup or the last
// Clear.
func TotalCount() int64 {
	return buffer.Total()
}

// Clear resets the event buffer. Used for testing.
func Clear() {
	buffer.Clear()
}
