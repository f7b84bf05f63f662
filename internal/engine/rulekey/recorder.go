package rulekey

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Capture records every (field key, serialized bytes) contribution made to a
// hasher, for diagnosing unexpected cache misses and digest collisions. It
// observes the exact byte stream, so attaching it never alters the digest.
type Capture struct {
	entries []CaptureEntry
	open    bool
}

// CaptureEntry is one recorded field contribution.
type CaptureEntry struct {
	Key   string
	Bytes []byte
}

// Entries returns the recorded contributions in hashing order. Bytes
// contributed before the first field key (the builder's seed) appear under
// the empty key.
func (c *Capture) Entries() []CaptureEntry {
	return c.entries
}

// Dump renders the recorded contributions, one field per line.
func (c *Capture) Dump() string {
	var sb strings.Builder
	for _, e := range c.entries {
		key := e.Key
		if key == "" {
			key = "<seed>"
		}
		fmt.Fprintf(&sb, "%s: %s\n", key, hex.EncodeToString(e.Bytes))
	}
	return sb.String()
}

func (c *Capture) begin(key string) {
	c.entries = append(c.entries, CaptureEntry{Key: key})
	c.open = true
}

func (c *Capture) extend(p []byte) {
	if !c.open {
		c.entries = append(c.entries, CaptureEntry{})
		c.open = true
	}
	last := &c.entries[len(c.entries)-1]
	last.Bytes = append(last.Bytes, p...)
}

func (c *Capture) finish() {
	c.open = false
}

// Capturing attaches a Capture to a hasher from this package and returns the
// hasher. Hashers from other packages are returned unchanged.
func Capturing(h Hasher, c *Capture) Hasher {
	if sh, ok := h.(*streamHasher); ok {
		sh.capture = c
	}
	return h
}
