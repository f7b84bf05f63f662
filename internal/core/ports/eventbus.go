package ports

import "go.trai.ch/mason/internal/core/domain"

// EventBus accepts typed build events from concurrently executing steps and
// multiplexes them to listeners. Post must be safe to call from arbitrary
// worker goroutines.
//
//go:generate go run go.uber.org/mock/mockgen -source=eventbus.go -destination=mocks/mock_eventbus.go -package=mocks
type EventBus interface {
	// Post delivers the event to every current listener.
	Post(event domain.Event)

	// Subscribe registers a listener and returns its removal func. The
	// listener may be invoked from any goroutine.
	Subscribe(fn func(domain.Event)) (unsubscribe func())
}
