package domain

import "time"

// Event is a typed build event posted to the event bus. The bus enforces no
// schema; these are the event shapes the execution layer itself posts.
type Event interface {
	EventTime() time.Time
}

// StepStatus represents the lifecycle state of one executing step.
type StepStatus string

const (
	// StepStarted indicates the step began executing.
	StepStarted StepStatus = "started"
	// StepFinished indicates the step executed successfully.
	StepFinished StepStatus = "finished"
	// StepFailed indicates the step execution failed.
	StepFailed StepStatus = "failed"
	// StepCached indicates the step was skipped because its rule key matched
	// a cache entry.
	StepCached StepStatus = "cached"
)

// IsTerminal reports whether the status is a terminal state.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StepFinished, StepFailed, StepCached:
		return true
	default:
		return false
	}
}

// StepEvent marks a step lifecycle transition for one action.
type StepEvent struct {
	ActionID string
	StepName string
	Status   StepStatus
	Time     time.Time
}

// EventTime returns the event timestamp.
func (e StepEvent) EventTime() time.Time { return e.Time }

// ConsoleEvent carries a console message at a given severity.
type ConsoleEvent struct {
	Level   LogLevel
	Message string
	Time    time.Time
}

// EventTime returns the event timestamp.
func (e ConsoleEvent) EventTime() time.Time { return e.Time }

// ErrorEvent carries an error together with a console message.
type ErrorEvent struct {
	Err     error
	Message string
	Time    time.Time
}

// EventTime returns the event timestamp.
func (e ErrorEvent) EventTime() time.Time { return e.Time }

// LogLevel represents the severity of a console message, mirroring the
// standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
