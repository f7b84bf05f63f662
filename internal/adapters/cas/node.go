package cas

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.rule_key_store"

// storeFile is where the rule key store lives, relative to the workspace.
const storeFile = ".mason/rulekeys.json"

func init() {
	graft.Register(graft.Node[ports.RuleKeyStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.RuleKeyStore, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			store, err := NewStore(filepath.Join(cwd, storeFile))
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
