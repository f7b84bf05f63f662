package domain

import (
	"strings"
	"unique"
)

// InternedString wraps a unique.Handle[string]. Target names and source
// paths repeat across many rules, so interning keeps the rule set compact
// and makes equality a pointer comparison.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// Compare orders interned strings by their underlying value.
func (is InternedString) Compare(o InternedString) int {
	return strings.Compare(is.String(), o.String())
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
