// FILE: macrolog/src/internal/core/record.go
package core

import "time"

// Record represents a single log event produced by one macro invocation.
// It is immutable after construction and discarded after dispatch; only its
// rendered form may outlive it (in the file sink).
type Record struct {
	Time    time.Time
	Name    string
	Level   Level
	Message string
	Display bool
	Notify  bool
}

// NewRecord builds a record stamped with the current wall-clock time.
func NewRecord(name, message string, level Level, display, notify bool) Record {
	return Record{
		Time:    time.Now(),
		Name:    name,
		Level:   level,
		Message: message,
		Display: display,
		Notify:  notify,
	}
}
