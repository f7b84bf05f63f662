package hashcache_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/hashcache"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeArchive(t *testing.T, dir, name string, members map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for member, content := range members {
		mw, err := w.Create(member)
		require.NoError(t, err)
		_, err = mw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestCache_HashOf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	writeFile(t, dir, "b.txt", "world")
	writeFile(t, dir, "c.txt", "hello")

	cache := hashcache.NewCache(dir)

	ha, err := cache.HashOf("a.txt")
	require.NoError(t, err)
	hb, err := cache.HashOf("b.txt")
	require.NoError(t, err)
	hc, err := cache.HashOf("c.txt")
	require.NoError(t, err)

	require.NotEqual(t, ha, hb)
	require.Equal(t, ha, hc, "equal content must hash equally regardless of path")
	require.Len(t, ha.String(), 16)
}

func TestCache_HashOfMemoizes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "before")

	cache := hashcache.NewCache(dir)
	first, err := cache.HashOf("a.txt")
	require.NoError(t, err)

	// The cache answers for one build invocation: a rewrite mid-build is
	// not observed.
	require.NoError(t, os.WriteFile(path, []byte("after"), 0o644))
	second, err := cache.HashOf("a.txt")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCache_HashOfMissingFile(t *testing.T) {
	cache := hashcache.NewCache(t.TempDir())
	_, err := cache.HashOf("missing.txt")
	require.Error(t, err)
}

func TestCache_HashOfAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	abs := writeFile(t, dir, "a.txt", "hello")

	cache := hashcache.NewCache(t.TempDir())
	_, err := cache.HashOf(abs)
	require.NoError(t, err)
}

func TestCache_ArchiveMembers(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, dir, "lib.jar", map[string]string{
		"pkg/A.class": "class-a",
		"pkg/B.class": "class-b",
	})
	writeFile(t, dir, "loose", "class-a")

	cache := hashcache.NewCache(dir)

	ha, err := cache.HashOfArchiveMember("lib.jar", "pkg/A.class")
	require.NoError(t, err)
	hb, err := cache.HashOfArchiveMember("lib.jar", "pkg/B.class")
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)

	// A member hash is the member content's hash, identical to the same
	// bytes in a loose file.
	loose, err := cache.HashOf("loose")
	require.NoError(t, err)
	require.Equal(t, loose, ha)

	_, err = cache.HashOfArchiveMember("lib.jar", "pkg/Missing.class")
	require.Error(t, err)
}

func TestCache_Prime(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		writeFile(t, dir, name, "content-"+name)
		paths = append(paths, name)
	}

	cache := hashcache.NewCache(dir)
	require.NoError(t, cache.Prime(context.Background(), paths))

	for _, p := range paths {
		_, err := cache.HashOf(p)
		require.NoError(t, err)
	}
}

func TestCache_PrimeReportsMissingInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "present", "x")

	cache := hashcache.NewCache(dir)
	err := cache.Prime(context.Background(), []string{"present", "absent"})
	require.Error(t, err)
}
