// Package hashcache memoizes file content hashes for one build invocation.
package hashcache

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.FileHashCache = (*Cache)(nil)

// Cache implements ports.FileHashCache with xxhash content digests. Every
// file is read at most once per build; repeated lookups are memoized. Paths
// are resolved relative to the workspace root.
type Cache struct {
	root string

	mu      sync.Mutex
	files   map[string]domain.ContentHash
	members map[string]map[string]domain.ContentHash
}

// NewCache creates a cache rooted at the given workspace directory.
func NewCache(root string) *Cache {
	return &Cache{
		root:    root,
		files:   make(map[string]domain.ContentHash),
		members: make(map[string]map[string]domain.ContentHash),
	}
}

// HashOf returns the content hash of the file at path.
func (c *Cache) HashOf(path string) (domain.ContentHash, error) {
	c.mu.Lock()
	if h, ok := c.files[path]; ok {
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	h, err := c.computeFileHash(c.resolve(path))
	if err != nil {
		return "", zerr.With(err, "path", path)
	}

	c.mu.Lock()
	c.files[path] = h
	c.mu.Unlock()
	return h, nil
}

// HashOfArchiveMember returns the content hash of one member inside a zip
// archive. The archive is indexed once; every member hash is computed on that
// first pass.
func (c *Cache) HashOfArchiveMember(archivePath, memberPath string) (domain.ContentHash, error) {
	c.mu.Lock()
	index, ok := c.members[archivePath]
	c.mu.Unlock()

	if !ok {
		var err error
		index, err = c.indexArchive(c.resolve(archivePath))
		if err != nil {
			return "", zerr.With(err, "archive", archivePath)
		}
		c.mu.Lock()
		c.members[archivePath] = index
		c.mu.Unlock()
	}

	h, ok := index[memberPath]
	if !ok {
		return "", zerr.With(zerr.With(zerr.New("archive member not found"), "archive", archivePath), "member", memberPath)
	}
	return h, nil
}

// Prime hashes the given paths ahead of time, bounded by CPU count, so that
// fingerprint computation afterwards is synchronous and I/O free.
func (c *Cache) Prime(ctx context.Context, paths []string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		g.Go(func() error {
			_, err := c.HashOf(path)
			return err
		})
	}
	return g.Wait()
}

func (c *Cache) resolve(path string) string {
	if filepath.IsAbs(path) || c.root == "" {
		return path
	}
	return filepath.Join(c.root, path)
}

func (c *Cache) computeFileHash(path string) (domain.ContentHash, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.Wrap(err, "failed to open file")
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.Wrap(err, "failed to hash file content")
	}
	return domain.ContentHash(fmt.Sprintf("%016x", hasher.Sum64())), nil
}

func (c *Cache) indexArchive(path string) (map[string]domain.ContentHash, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open archive")
	}
	defer r.Close() //nolint:errcheck // Best effort close in defer

	index := make(map[string]domain.ContentHash, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		h, err := c.hashArchiveFile(f)
		if err != nil {
			return nil, zerr.With(err, "member", f.Name)
		}
		index[f.Name] = h
	}
	return index, nil
}

func (c *Cache) hashArchiveFile(f *zip.File) (domain.ContentHash, error) {
	rc, err := f.Open()
	if err != nil {
		return "", zerr.Wrap(err, "failed to open archive member")
	}
	defer rc.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, rc); err != nil { //nolint:gosec // Hashing, not extracting
		return "", zerr.Wrap(err, "failed to hash archive member")
	}
	return domain.ContentHash(fmt.Sprintf("%016x", hasher.Sum64())), nil
}
