package rulekey

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// Value is one member of the closed universe of fingerprintable field
// values. The set is fixed at compile time; there is no runtime type
// inspection and no way to implement Value outside this package.
type Value interface {
	hash(b *Builder, key string) error
}

// Appendable is the capability of contributing further named sub-fields to
// an enclosing rule's digest. The material fields are folded into the
// parent rule's single digest under a namespace derived from the parent
// field name; no independent digest is produced.
type Appendable interface {
	AppendToRuleKey(sink Sink)
}

// Sink is the field-contribution protocol handed to appendables.
type Sink interface {
	SetField(name string, v Value) Sink
}

// Bool wraps a boolean.
func Bool(v bool) Value { return boolValue(v) }

// Int8 wraps an 8-bit integer. Width is part of the serialized form, so the
// same numeric value at different widths produces different digests.
func Int8(v int8) Value { return int8Value(v) }

// Int16 wraps a 16-bit integer.
func Int16(v int16) Value { return int16Value(v) }

// Int32 wraps a 32-bit integer.
func Int32(v int32) Value { return int32Value(v) }

// Int64 wraps a 64-bit integer.
func Int64(v int64) Value { return int64Value(v) }

// String wraps text.
func String(s string) Value { return stringValue(s) }

// Bytes wraps a raw byte payload.
func Bytes(b []byte) Value { return bytesValue(b) }

// Enum wraps an enumerant by its declared name.
func Enum(name string) Value { return enumValue(name) }

// Hash wraps an already-computed content digest.
func Hash(h domain.ContentHash) Value { return hashValue(h) }

// Target wraps a build target name (identity only, no content).
func Target(t domain.BuildTarget) Value { return targetValue(t) }

// Path references a file; it contributes the file's content hash resolved
// through the builder's file hash cache, never the path text.
func Path(path string) Value { return pathValue(path) }

// ArchiveMember references one member inside an archive: the member's
// content hash plus its path within the archive, since membership is part
// of the identity.
func ArchiveMember(archivePath, memberPath string) Value {
	return archiveMemberValue{archive: archivePath, member: memberPath}
}

// Rule references another build rule. It contributes that rule's finalized
// key, never its fields: a rule's digest depends on a dependency's
// identity, not its internals.
func Rule(t domain.BuildTarget) Value { return ruleValue(t) }

// Append wraps an appendable.
func Append(a Appendable) Value { return appendableValue{a: a} }

// Sequence wraps an ordered sequence; order is significant. A field set to
// an empty sequence is a no-op: the digest is identical to the field never
// having been set.
func Sequence(elems ...Value) Value { return sequenceValue(elems) }

// SequenceFrom materializes an iterator into a sequence value. An iterator
// yielding no elements is the same no-op as an empty sequence.
func SequenceFrom(seq iter.Seq[Value]) Value {
	var elems []Value
	for v := range seq {
		elems = append(elems, v)
	}
	return sequenceValue(elems)
}

// Mapping wraps a string-keyed mapping. Keys are hashed in bytewise order,
// so two mappings with the same entries always hash identically regardless
// of insertion order. An empty mapping is not a no-op; it differs from both
// an absent field and an empty sequence.
func Mapping(m map[string]Value) Value { return mappingValue(m) }

// Strings is a convenience for the common sequence-of-text field.
func Strings(ss ...string) Value {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = stringValue(s)
	}
	return sequenceValue(elems)
}

// StringMapping is a convenience for the common string-to-string mapping
// field (environment variables, named flags).
func StringMapping(m map[string]string) Value {
	vm := make(map[string]Value, len(m))
	for k, v := range m {
		vm[k] = stringValue(v)
	}
	return mappingValue(vm)
}

type (
	boolValue   bool
	int8Value   int8
	int16Value  int16
	int32Value  int32
	int64Value  int64
	stringValue string
	bytesValue  []byte
	enumValue   string
	hashValue   domain.ContentHash
	targetValue domain.BuildTarget
	pathValue   string

	archiveMemberValue struct {
		archive string
		member  string
	}

	ruleValue domain.BuildTarget

	appendableValue struct {
		a Appendable
	}

	sequenceValue []Value
	mappingValue  map[string]Value
)

func (v boolValue) hash(b *Builder, _ string) error {
	b.hasher.Bool(bool(v))
	return nil
}

func (v int8Value) hash(b *Builder, _ string) error {
	b.hasher.Int8(int8(v))
	return nil
}

func (v int16Value) hash(b *Builder, _ string) error {
	b.hasher.Int16(int16(v))
	return nil
}

func (v int32Value) hash(b *Builder, _ string) error {
	b.hasher.Int32(int32(v))
	return nil
}

func (v int64Value) hash(b *Builder, _ string) error {
	b.hasher.Int64(int64(v))
	return nil
}

func (v stringValue) hash(b *Builder, _ string) error {
	b.hasher.String(string(v))
	return nil
}

func (v bytesValue) hash(b *Builder, _ string) error {
	b.hasher.Bytes([]byte(v))
	return nil
}

func (v enumValue) hash(b *Builder, _ string) error {
	b.hasher.Enum(string(v))
	return nil
}

func (v hashValue) hash(b *Builder, _ string) error {
	b.hasher.ContentHash(domain.ContentHash(v))
	return nil
}

func (v targetValue) hash(b *Builder, _ string) error {
	b.hasher.Target(domain.BuildTarget(v).String())
	return nil
}

func (v pathValue) hash(b *Builder, key string) error {
	if b.files == nil {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedValue, "no file hash cache configured"), "field", key)
	}
	content, err := b.files.HashOf(string(v))
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to resolve path content hash"), "field", key), "path", string(v))
	}
	b.hasher.Path(content)
	return nil
}

func (v archiveMemberValue) hash(b *Builder, key string) error {
	if b.files == nil {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedValue, "no file hash cache configured"), "field", key)
	}
	content, err := b.files.HashOfArchiveMember(v.archive, v.member)
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to resolve archive member hash"), "field", key), "archive", v.archive)
	}
	b.hasher.ArchiveMember(content, v.member)
	return nil
}

func (v ruleValue) hash(b *Builder, key string) error {
	target := domain.BuildTarget(v)
	if b.deps == nil {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedValue, "no dependency key resolver configured"), "field", key)
	}
	k, ok := b.deps.KeyOf(target)
	if !ok {
		// Dependency keys must be finalized before their dependents; the
		// graph hands us rules in that order, so this is a defect.
		return zerr.With(zerr.With(zerr.New("dependency rule key not finalized"), "field", key), "dependency", target.String())
	}
	b.hasher.RuleKey(k)
	return nil
}

func (v appendableValue) hash(b *Builder, key string) error {
	if v.a == nil {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedValue, "nil appendable"), "field", key)
	}
	b.hasher.Appendable()
	v.a.AppendToRuleKey(scopedSink{b: b, prefix: key})
	return b.err
}

func (v sequenceValue) hash(b *Builder, key string) error {
	b.hasher.Container(ContainerSequence, len(v))
	for i, elem := range v {
		if err := b.element(fmt.Sprintf("%s[%d]", key, i), elem); err != nil {
			return err
		}
	}
	return nil
}

func (v mappingValue) hash(b *Builder, key string) error {
	b.hasher.Container(ContainerMapping, len(v))
	for _, k := range slices.Sorted(maps.Keys(v)) {
		if err := b.element(key+"{k}", stringValue(k)); err != nil {
			return err
		}
		if err := b.element(key+"{v}", v[k]); err != nil {
			return err
		}
	}
	return nil
}
