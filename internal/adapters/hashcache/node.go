package hashcache

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.file_hash_cache"

func init() {
	graft.Register(graft.Node[ports.FileHashCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.FileHashCache, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return NewCache(cwd), nil
		},
	})
}
