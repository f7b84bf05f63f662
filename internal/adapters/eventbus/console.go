package eventbus

import (
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// ConsoleListener forwards console and error events to the logger, so bus
// traffic surfaces in the structured log alongside adapter output.
type ConsoleListener struct {
	logger ports.Logger
}

// NewConsoleListener creates a listener writing to the given logger.
func NewConsoleListener(logger ports.Logger) *ConsoleListener {
	return &ConsoleListener{logger: logger}
}

// Handle processes one event. Step events are not logged here; the progress
// listener renders those.
func (l *ConsoleListener) Handle(event domain.Event) {
	switch e := event.(type) {
	case domain.ConsoleEvent:
		switch e.Level {
		case domain.LogLevelWarn:
			l.logger.Warn(e.Message)
		case domain.LogLevelError:
			l.logger.Error(zerr.New(e.Message))
		default:
			l.logger.Info(e.Message)
		}
	case domain.ErrorEvent:
		l.logger.Error(e.Err)
	}
}
