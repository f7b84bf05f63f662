package rulekey

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/hashcache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the rule key factory Graft node.
const NodeID graft.ID = "engine.rule_key_factory"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{hashcache.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			files, err := graft.Dep[ports.FileHashCache](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(NewSHA256, files, NewKeyChain()), nil
		},
	})
}
