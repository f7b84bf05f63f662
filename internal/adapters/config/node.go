package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
)

const NodeID graft.ID = "adapter.rule_loader"

// DefaultFilename is the declaration file mason looks for.
const DefaultFilename = "mason.yaml"

func init() {
	graft.Register(graft.Node[ports.RuleLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.RuleLoader, error) {
			return &FileRuleLoader{Filename: DefaultFilename}, nil
		},
	})
}
