// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/mason/internal/core/domain"

// RuleKeyFactory computes the cacheable identity digest for a rule.
//
//go:generate go run go.uber.org/mock/mockgen -source=keys.go -destination=mocks/mock_keys.go -package=mocks
type RuleKeyFactory interface {
	// BuildKey folds the rule's declared fields into one digest. All of the
	// rule's dependency keys must already be finalized; the call is
	// deterministic and pure apart from content-hash lookups.
	BuildKey(rule *domain.Rule) (domain.RuleKey, error)
}

// DepKeys resolves an already-finalized dependency digest. The bool result
// is false when the dependency's key has not been computed yet, which the
// factory treats as a scheduling defect.
type DepKeys interface {
	KeyOf(target domain.BuildTarget) (domain.RuleKey, bool)
}
