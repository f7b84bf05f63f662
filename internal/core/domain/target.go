// Package domain contains the core domain models for rule identity and build state.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BuildTarget identifies one buildable rule, written as "//base/path:name".
// Targets are interned because the same target string shows up in every rule
// that depends on it.
type BuildTarget struct {
	name InternedString
}

// ParseTarget parses a fully qualified target of the form "//base/path:name".
func ParseTarget(s string) (BuildTarget, error) {
	if !strings.HasPrefix(s, "//") {
		return BuildTarget{}, zerr.With(zerr.New("target must start with //"), "target", s)
	}
	base, name, ok := strings.Cut(s[2:], ":")
	if !ok || name == "" {
		return BuildTarget{}, zerr.With(zerr.New("target must have a :name part"), "target", s)
	}
	if strings.Contains(name, ":") {
		return BuildTarget{}, zerr.With(zerr.New("target name contains ':'"), "target", s)
	}
	_ = base
	return BuildTarget{name: NewInternedString(s)}, nil
}

// MustParseTarget is ParseTarget for statically known targets. It panics on
// malformed input and is intended for tests and wiring code.
func MustParseTarget(s string) BuildTarget {
	t, err := ParseTarget(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the fully qualified target name.
func (t BuildTarget) String() string {
	return t.name.String()
}

// IsZero reports whether the target is the zero value.
func (t BuildTarget) IsZero() bool {
	return t.name == InternedString{}
}

// BasePath returns the path part between "//" and ":".
func (t BuildTarget) BasePath() string {
	s := t.name.String()
	base, _, _ := strings.Cut(strings.TrimPrefix(s, "//"), ":")
	return base
}

// ShortName returns the part after ":".
func (t BuildTarget) ShortName() string {
	_, name, _ := strings.Cut(t.name.String(), ":")
	return name
}

// Compare orders targets by their fully qualified name.
func (t BuildTarget) Compare(o BuildTarget) int {
	return strings.Compare(t.String(), o.String())
}
