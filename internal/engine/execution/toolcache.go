package execution

import (
	"errors"
	"sync"

	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// ToolCache keeps warm tool processes alive across the build steps of one
// execution context tree. The cache is reference counted: every context
// holding it owns one reference, and the processes are shut down exactly once,
// when the last reference is released. Which context closes first is
// irrelevant.
type ToolCache struct {
	mu    sync.Mutex
	refs  int
	procs map[string]ports.ToolProcess
}

// NewToolCache creates a cache owned by a single reference.
func NewToolCache() *ToolCache {
	return &ToolCache{refs: 1, procs: make(map[string]ports.ToolProcess)}
}

// AddRef registers another owner and returns the cache.
func (c *ToolCache) AddRef() *ToolCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs++
	return c
}

// Get returns the cached process for key, starting one via start on first
// use. A process started once is shared by every subsequent Get for the same
// key until the cache is released.
func (c *ToolCache) Get(key string, start func() (ports.ToolProcess, error)) (ports.ToolProcess, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs <= 0 {
		return nil, zerr.With(zerr.New("tool cache already released"), "tool", key)
	}
	if proc, ok := c.procs[key]; ok {
		return proc, nil
	}
	proc, err := start()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start tool"), "tool", key)
	}
	c.procs[key] = proc
	return proc, nil
}

// Release drops one reference. When the last reference is released every
// cached process is closed; their errors are combined. Releasing more
// references than were retained is a defect and reported as an error.
func (c *ToolCache) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs <= 0 {
		return zerr.New("tool cache released more often than retained")
	}
	c.refs--
	if c.refs > 0 {
		return nil
	}
	var errs []error
	for _, proc := range c.procs {
		if err := proc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.procs = nil
	return errors.Join(errs...)
}
