package rulekey

import (
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder accumulates one rule's declared fields into a single canonical
// hasher and finalizes them to a digest. Field order is part of the
// contract: two builders given the same ordered contributions always
// produce equal digests, across process restarts, with no dependence on
// object identity or map iteration order.
//
// The first error latches; subsequent calls are no-ops and Build reports it.
type Builder struct {
	hasher Hasher
	files  ports.FileHashCache
	deps   ports.DepKeys
	err    error
}

// NewBuilder creates a builder on top of a fresh hasher. files may be nil
// when no path values will be contributed, deps may be nil when no rule
// references will be.
func NewBuilder(hasher Hasher, files ports.FileHashCache, deps ports.DepKeys) *Builder {
	return &Builder{hasher: hasher, files: files, deps: deps}
}

// SetRuleType seeds the digest with the rule-type discriminator. Called at
// most once, before any fields.
func (b *Builder) SetRuleType(t string) *Builder {
	if b.err != nil {
		return b
	}
	b.hasher.RuleType(t)
	return b
}

// SetField contributes one named field. Setting a field to an empty
// sequence (or a sequence materialized from an empty iterator) contributes
// nothing at all; this is the single sanctioned no-op and what keeps keys
// stable when optional fields default to empty collections.
func (b *Builder) SetField(name string, v Value) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = zerr.Wrap(domain.ErrMissingField, "empty field name")
		return b
	}
	if v == nil {
		b.err = zerr.With(domain.ErrUnsupportedValue, "field", name)
		return b
	}
	if s, ok := v.(sequenceValue); ok && len(s) == 0 {
		return b
	}
	b.hasher.Key(name)
	if err := v.hash(b, name); err != nil {
		b.err = err
	}
	return b
}

// element hashes one container element under its indexed sub-field key.
// Unlike SetField, an empty sequence element still contributes its
// container marker; the no-op exception applies to fields only.
func (b *Builder) element(key string, v Value) error {
	if v == nil {
		return zerr.With(domain.ErrUnsupportedValue, "field", key)
	}
	b.hasher.Key(key)
	return v.hash(b, key)
}

// Build finalizes the digest. The builder must not be reused afterwards.
func (b *Builder) Build() (domain.RuleKey, error) {
	if b.err != nil {
		return domain.RuleKey{}, b.err
	}
	return b.hasher.Finalize(), nil
}

// scopedSink namespaces an appendable's sub-fields under the parent field
// name, folding them into the parent rule's digest.
type scopedSink struct {
	b      *Builder
	prefix string
}

func (s scopedSink) SetField(name string, v Value) Sink {
	s.b.SetField(s.prefix+"."+name, v)
	return s
}
