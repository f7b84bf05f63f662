package eventbus_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/mason/internal/adapters/eventbus"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func stepEvent(action string, status domain.StepStatus) domain.StepEvent {
	return domain.StepEvent{
		ActionID: action,
		StepName: "shell_step",
		Status:   status,
		Time:     time.Now(),
	}
}

func TestBus_DeliversToAllListeners(t *testing.T) {
	bus := eventbus.NewBus()

	var first, second []domain.Event
	bus.Subscribe(func(e domain.Event) { first = append(first, e) })
	bus.Subscribe(func(e domain.Event) { second = append(second, e) })

	bus.Post(stepEvent("//lib:a", domain.StepStarted))
	bus.Post(stepEvent("//lib:a", domain.StepFinished))

	require.Len(t, first, 2)
	require.Len(t, second, 2)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := eventbus.NewBus()

	var got []domain.Event
	unsubscribe := bus.Subscribe(func(e domain.Event) { got = append(got, e) })

	bus.Post(stepEvent("//lib:a", domain.StepStarted))
	unsubscribe()
	unsubscribe() // removal is idempotent
	bus.Post(stepEvent("//lib:a", domain.StepFinished))

	require.Len(t, got, 1)
}

func TestBus_ConcurrentPosters(t *testing.T) {
	bus := eventbus.NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(domain.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			for range 50 {
				bus.Post(stepEvent("//lib:a", domain.StepStarted))
			}
		})
	}
	wg.Wait()

	require.Equal(t, 16*50, count)
}

func TestProgressListener_VertexPerAction(t *testing.T) {
	tape := progrock.NewTape()
	listener := eventbus.NewProgressListener(tape)

	bus := eventbus.NewBus()
	bus.Subscribe(listener.Handle)

	bus.Post(stepEvent("//lib:a", domain.StepStarted))
	bus.Post(stepEvent("//lib:a", domain.StepFinished))
	bus.Post(stepEvent("//lib:b", domain.StepCached))
	bus.Post(stepEvent("//lib:c", domain.StepStarted))
	bus.Post(stepEvent("//lib:c", domain.StepFailed))

	// Terminal events for unknown actions must not crash the listener.
	bus.Post(stepEvent("//lib:unknown", domain.StepFinished))

	require.NoError(t, listener.Close())
}

func TestSpanListener_HandlesFullLifecycles(t *testing.T) {
	listener := eventbus.NewSpanListener(t.Name())

	bus := eventbus.NewBus()
	bus.Subscribe(listener.Handle)

	// No tracer provider installed: spans are no-ops but the bookkeeping
	// still runs.
	bus.Post(stepEvent("//lib:a", domain.StepStarted))
	bus.Post(stepEvent("//lib:a", domain.StepFinished))
	bus.Post(stepEvent("//lib:b", domain.StepStarted))
	bus.Post(stepEvent("//lib:b", domain.StepFailed))
	bus.Post(stepEvent("//lib:c", domain.StepCached))
	bus.Post(stepEvent("//lib:unknown", domain.StepFinished))
}

func TestConsoleListener_ForwardsToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	bus := eventbus.NewBus()
	bus.Subscribe(eventbus.NewConsoleListener(log).Handle)

	log.EXPECT().Info("building 2 rules")
	log.EXPECT().Warn("tool output truncated")
	log.EXPECT().Error(gomock.Any())

	now := time.Now()
	bus.Post(domain.ConsoleEvent{Level: domain.LogLevelInfo, Message: "building 2 rules", Time: now})
	bus.Post(domain.ConsoleEvent{Level: domain.LogLevelWarn, Message: "tool output truncated", Time: now})
	bus.Post(domain.ErrorEvent{Err: errors.New("action failed"), Message: "action failed", Time: now})

	// Step events belong to the progress listener and are ignored here.
	bus.Post(stepEvent("//lib:a", domain.StepStarted))
}

func TestConsoleListener_LogsDebugAsInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	bus := eventbus.NewBus()
	bus.Subscribe(eventbus.NewConsoleListener(log).Handle)

	// Debug messages reach the listener only when a context's verbosity lets
	// them through; the listener itself logs whatever arrives.
	log.EXPECT().Info("resolved toolchain")
	bus.Post(domain.ConsoleEvent{Level: domain.LogLevelDebug, Message: "resolved toolchain", Time: time.Now()})
}
