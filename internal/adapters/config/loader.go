// Package config provides the build declaration loader for mason.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.RuleLoader = (*FileRuleLoader)(nil)

// FileRuleLoader implements ports.RuleLoader using a YAML file.
type FileRuleLoader struct {
	Filename string
}

// Load reads the declaration file from the given working directory.
func (l *FileRuleLoader) Load(cwd string) (*domain.RuleSet, error) {
	path := filepath.Join(cwd, l.Filename)
	return Load(path)
}

// Load reads a declaration file from the given path and returns the rules in
// declared order. Rules referencing a dependency declared later in the file
// are rejected.
func Load(path string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read declaration file")
	}

	var masonfile Masonfile
	if err := yaml.Unmarshal(data, &masonfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse declaration file")
	}

	rules := domain.NewRuleSet()
	for _, dto := range masonfile.Rules {
		rule, err := ruleFromDTO(dto)
		if err != nil {
			return nil, err
		}
		if err := rules.Add(rule); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func ruleFromDTO(dto RuleDTO) (*domain.Rule, error) {
	target, err := domain.ParseTarget(dto.Target)
	if err != nil {
		return nil, err
	}
	if dto.Type == "" {
		return nil, zerr.With(zerr.With(domain.ErrMissingField, "field", "type"), "target", dto.Target)
	}
	if dto.Pipeline != "" && len(dto.Tool) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrMissingField, "field", "tool"), "target", dto.Target)
	}

	deps := make([]domain.BuildTarget, len(dto.Deps))
	for i, d := range dto.Deps {
		dep, err := domain.ParseTarget(d)
		if err != nil {
			return nil, zerr.With(err, "target", dto.Target)
		}
		deps[i] = dep
	}

	return &domain.Rule{
		Target:   target,
		Type:     dto.Type,
		Srcs:     canonicalizeStrings(dto.Srcs),
		Deps:     deps,
		Env:      dto.Env,
		Command:  dto.Cmd,
		Pipeline: dto.Pipeline,
		Tool:     dto.Tool,
	}, nil
}

// canonicalizeStrings sorts and deduplicates, so that declaration shuffles of
// the same source set do not change the rule's fingerprint.
func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	unique := slices.Compact(sorted)
	res := make([]domain.InternedString, len(unique))
	for i, s := range unique {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
