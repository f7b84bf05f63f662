package ports

import "go.trai.ch/mason/internal/core/domain"

// RuleLoader parses build declarations into rule descriptions. The rules are
// returned in declared order, which must already be topologically valid.
//
//go:generate go run go.uber.org/mock/mockgen -source=rule_loader.go -destination=mocks/mock_rule_loader.go -package=mocks
type RuleLoader interface {
	// Load reads the declaration file found in cwd.
	Load(cwd string) (*domain.RuleSet, error)
}
