package logging

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

func Strategy(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("strategy", name)
	}
}

func Problem(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("problem", name)
	}
}

// Counts adds the node expansion and generation counters.
func Counts(expanded, generated int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("expanded", expanded).Int("generated", generated)
	}
}

// Cost adds a path cost rounded to two decimals.
func Cost(c float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("cost", fmt.Sprintf("%.2f", c))
	}
}

// Duration adds a duration in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}

func Bool(key string, value bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool(key, value)
	}
}

// Err adds an error field; a nil error adds nothing.
func Err(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
