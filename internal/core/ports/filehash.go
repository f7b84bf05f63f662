package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// FileHashCache resolves paths to content hashes. Rule keys hash file
// content, never path text, so moving a file without changing its bytes
// leaves dependent keys untouched. The cache must stay consistent for the
// duration of one build.
//
//go:generate go run go.uber.org/mock/mockgen -source=filehash.go -destination=mocks/mock_filehash.go -package=mocks
type FileHashCache interface {
	// HashOf returns the content hash of the file at path.
	HashOf(path string) (domain.ContentHash, error)

	// HashOfArchiveMember returns the content hash of one member inside an
	// archive.
	HashOfArchiveMember(archivePath, memberPath string) (domain.ContentHash, error)

	// Prime hashes the given paths ahead of time so that fingerprint
	// computation stays synchronous and I/O free.
	Prime(ctx context.Context, paths []string) error
}
