// Package notify carries transient user-visible messages out of the service
// layer. The CLI prints them; tests record them.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Level classifies a notification.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Error   Level = "error"
)

// Notifier receives user-visible messages. Implementations must not block.
type Notifier interface {
	Notify(level Level, message string)
}

// Writer prints notifications to an io.Writer, one per line.
type Writer struct {
	W io.Writer
}

func (w *Writer) Notify(level Level, message string) {
	fmt.Fprintf(w.W, "[%s] %s\n", level, message)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(Level, string) {}

// Recorder keeps notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

// Event is one recorded notification.
type Event struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Level: level, Message: message})
}

// Last returns the most recent event, or a zero Event.
func (r *Recorder) Last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Events) == 0 {
		return Event{}
	}
	return r.Events[len(r.Events)-1]
}
