package domain

import (
	"encoding/hex"

	"go.trai.ch/zerr"
)

// RuleKey is the finalized fingerprint of one build rule. It is an opaque,
// fixed-size digest produced by the rule key builder; equality is byte-exact
// and is the only supported comparison.
type RuleKey struct {
	hex string
}

// NewRuleKey wraps a lowercase hex digest. The digest length depends on the
// configured hasher, but it must be non-empty, even-length hex.
func NewRuleKey(hexDigest string) (RuleKey, error) {
	if hexDigest == "" || len(hexDigest)%2 != 0 {
		return RuleKey{}, zerr.With(zerr.New("malformed rule key digest"), "digest", hexDigest)
	}
	if _, err := hex.DecodeString(hexDigest); err != nil {
		return RuleKey{}, zerr.With(zerr.Wrap(err, "malformed rule key digest"), "digest", hexDigest)
	}
	return RuleKey{hex: hexDigest}, nil
}

// String returns the hex form of the digest.
func (k RuleKey) String() string {
	return k.hex
}

// IsZero reports whether the key has not been set.
func (k RuleKey) IsZero() bool {
	return k.hex == ""
}

// MarshalText implements encoding.TextMarshaler.
func (k RuleKey) MarshalText() ([]byte, error) {
	return []byte(k.hex), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RuleKey) UnmarshalText(text []byte) error {
	parsed, err := NewRuleKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ContentHash is the content digest of a file (or archive member) as produced
// by the file hash cache. It identifies content, never location.
type ContentHash string

// String returns the hex form of the hash.
func (h ContentHash) String() string {
	return string(h)
}
