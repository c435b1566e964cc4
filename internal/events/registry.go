package events

import "fmt"

var allowedEvents = map[string]struct{}{
	// search
	"search.started":   {},
	"search.completed": {},
	"search.unsolved":  {},
	"search.failed":    {},

	// report
	"report.published": {},
	"report.error":     {},

	// system
	"system.startup":  {},
	"system.shutdown": {},
	"system.error":    {},
}

func Validate(event string) error {
	if _, ok := allowedEvents[event]; !ok {
		return fmt.Errorf("unknown event: %s", event)
	}
	return nil
}
