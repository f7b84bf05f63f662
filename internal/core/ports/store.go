package ports

import "go.trai.ch/mason/internal/core/domain"

// RuleKeyStore persists rule key -> artifact mappings between builds.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RuleKeyStore interface {
	// Get retrieves the entry for a rule key. Returns nil, nil if not found.
	Get(key domain.RuleKey) (*domain.CacheEntry, error)

	// Put stores the entry.
	Put(entry domain.CacheEntry) error
}
