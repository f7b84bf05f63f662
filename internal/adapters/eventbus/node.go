package eventbus

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vito/progrock"
	"go.trai.ch/mason/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/mason/internal/core/ports"
)

const NodeID graft.ID = "adapter.event_bus"

func init() {
	graft.Register(graft.Node[ports.EventBus]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.EventBus, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			bus := NewBus()
			bus.Subscribe(NewProgressListener(progrock.NewTape()).Handle)
			bus.Subscribe(NewSpanListener("mason").Handle)
			bus.Subscribe(NewConsoleListener(log).Handle)
			return bus, nil
		},
	})
}
