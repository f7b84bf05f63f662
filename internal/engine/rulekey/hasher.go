// Package rulekey implements the canonical fingerprinting protocol for build
// rules: a tagged, collision-resistant serialization of rule fields into one
// fixed-size digest per rule.
package rulekey

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
)

// Container discriminates the two container shapes. The byte value is part
// of the wire protocol, so an empty mapping never collides with an empty
// sequence.
type Container byte

const (
	// ContainerSequence is an ordered sequence of elements.
	ContainerSequence Container = '['
	// ContainerMapping is a key/value mapping with deterministic key order.
	ContainerMapping Container = '{'
)

// Type tags. Every absorbed value is preceded by its tag so that values of
// different types with identical payload bytes never produce the same
// stream. Integers additionally carry their width, strings and byte blobs a
// length prefix.
const (
	tagKey           byte = 0x01
	tagBool          byte = 0x02
	tagInt           byte = 0x03
	tagString        byte = 0x04
	tagBytes         byte = 0x05
	tagEnum          byte = 0x06
	tagContentHash   byte = 0x07
	tagPath          byte = 0x08
	tagArchiveMember byte = 0x09
	tagRuleKey       byte = 0x0a
	tagRuleType      byte = 0x0b
	tagTarget        byte = 0x0c
	tagContainer     byte = 0x0d
	tagAppendable    byte = 0x0e
)

// Hasher absorbs typed values in a fixed order and produces the final
// digest. Implementations abstract the concrete hash algorithm; the tagging
// discipline above is what guarantees uniqueness, independent of algorithm.
type Hasher interface {
	Key(name string) Hasher
	Bool(v bool) Hasher
	Int8(v int8) Hasher
	Int16(v int16) Hasher
	Int32(v int32) Hasher
	Int64(v int64) Hasher
	String(s string) Hasher
	Bytes(b []byte) Hasher
	Enum(name string) Hasher
	ContentHash(h domain.ContentHash) Hasher
	Path(content domain.ContentHash) Hasher
	ArchiveMember(archiveContent domain.ContentHash, memberPath string) Hasher
	RuleKey(k domain.RuleKey) Hasher
	RuleType(t string) Hasher
	Target(name string) Hasher
	Container(c Container, size int) Hasher
	Appendable() Hasher
	Finalize() domain.RuleKey
}

// NewHasherFunc constructs fresh hashers. Swapping the func swaps the digest
// algorithm for every key built afterwards; digests from different
// algorithms never compare equal (they differ in length).
type NewHasherFunc func() Hasher

// NewSHA256 returns a Hasher backed by SHA-256. This is the default: rule
// keys are persisted into the artifact cache across processes, so the
// algorithm must be collision resistant and stable.
func NewSHA256() Hasher {
	h := sha256.New()
	return &streamHasher{
		algo: h,
		finalize: func() string {
			return hex.EncodeToString(h.Sum(nil))
		},
	}
}

// NewXX64 returns a Hasher backed by xxhash64. Fast, but only suitable for
// in-memory fingerprints within one invocation.
func NewXX64() Hasher {
	d := xxhash.New()
	return &streamHasher{
		algo: d,
		finalize: func() string {
			return fmt.Sprintf("%016x", d.Sum64())
		},
	}
}

type streamHasher struct {
	algo     io.Writer
	finalize func() string
	capture  *Capture
}

func (h *streamHasher) write(p []byte) {
	_, _ = h.algo.Write(p)
	if h.capture != nil {
		h.capture.extend(p)
	}
}

func (h *streamHasher) tagged(tag byte, payload []byte) {
	h.write([]byte{tag})
	h.write(payload)
}

// lengthPrefixed writes tag, a fixed-width big-endian length, then the
// payload. The prefix is what keeps "ab"+"c" distinct from "a"+"bc".
func (h *streamHasher) lengthPrefixed(tag byte, payload []byte) {
	var buf [5]byte
	buf[0] = tag
	binary.BigEndian.PutUint32(buf[1:], uint32(len(payload)))
	h.write(buf[:])
	h.write(payload)
}

func (h *streamHasher) Key(name string) Hasher {
	if h.capture != nil {
		h.capture.begin(name)
	}
	h.lengthPrefixed(tagKey, []byte(name))
	return h
}

func (h *streamHasher) Bool(v bool) Hasher {
	b := byte(0)
	if v {
		b = 1
	}
	h.tagged(tagBool, []byte{b})
	return h
}

// putInt writes the integer tag, a width byte, then the value big-endian in
// exactly width bytes, so a 32-bit 42 and a 64-bit 42 hash differently.
func (h *streamHasher) putInt(v int64, width int) {
	buf := make([]byte, 2+width)
	buf[0] = tagInt
	buf[1] = byte(width)
	for i := width - 1; i >= 0; i-- {
		buf[2+i] = byte(v)
		v >>= 8
	}
	h.write(buf)
}

func (h *streamHasher) Int8(v int8) Hasher {
	h.putInt(int64(v), 1)
	return h
}

func (h *streamHasher) Int16(v int16) Hasher {
	h.putInt(int64(v), 2)
	return h
}

func (h *streamHasher) Int32(v int32) Hasher {
	h.putInt(int64(v), 4)
	return h
}

func (h *streamHasher) Int64(v int64) Hasher {
	h.putInt(v, 8)
	return h
}

func (h *streamHasher) String(s string) Hasher {
	h.lengthPrefixed(tagString, []byte(s))
	return h
}

func (h *streamHasher) Bytes(b []byte) Hasher {
	h.lengthPrefixed(tagBytes, b)
	return h
}

// Enum hashes the enumerant's declared name, never an ordinal, so
// reordering declarations does not silently change digests.
func (h *streamHasher) Enum(name string) Hasher {
	h.lengthPrefixed(tagEnum, []byte(name))
	return h
}

func (h *streamHasher) ContentHash(c domain.ContentHash) Hasher {
	h.lengthPrefixed(tagContentHash, []byte(c))
	return h
}

// Path absorbs only the referenced file's content hash: moving a file
// without changing content must not change dependent keys.
func (h *streamHasher) Path(content domain.ContentHash) Hasher {
	h.lengthPrefixed(tagPath, []byte(content))
	return h
}

// ArchiveMember absorbs the archive's content hash and the member path as
// two sub-fields; membership is part of the identity here.
func (h *streamHasher) ArchiveMember(archiveContent domain.ContentHash, memberPath string) Hasher {
	h.lengthPrefixed(tagArchiveMember, []byte(archiveContent))
	h.lengthPrefixed(tagArchiveMember, []byte(memberPath))
	return h
}

func (h *streamHasher) RuleKey(k domain.RuleKey) Hasher {
	h.lengthPrefixed(tagRuleKey, []byte(k.String()))
	return h
}

func (h *streamHasher) RuleType(t string) Hasher {
	h.lengthPrefixed(tagRuleType, []byte(t))
	return h
}

func (h *streamHasher) Target(name string) Hasher {
	h.lengthPrefixed(tagTarget, []byte(name))
	return h
}

func (h *streamHasher) Container(c Container, size int) Hasher {
	var buf [6]byte
	buf[0] = tagContainer
	buf[1] = byte(c)
	binary.BigEndian.PutUint32(buf[2:], uint32(size))
	h.write(buf[:])
	return h
}

// Appendable marks that the following sub-fields were contributed by an
// appendable value folded into the enclosing rule's digest.
func (h *streamHasher) Appendable() Hasher {
	h.write([]byte{tagAppendable})
	return h
}

func (h *streamHasher) Finalize() domain.RuleKey {
	if h.capture != nil {
		h.capture.finish()
	}
	key, err := domain.NewRuleKey(h.finalize())
	if err != nil {
		// The hex encoders above cannot produce malformed digests.
		panic(err)
	}
	return key
}
