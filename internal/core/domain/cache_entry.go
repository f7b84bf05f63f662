package domain

import "time"

// CacheEntry maps a finalized rule key to the artifact it produced. The key
// format is exactly the digest produced by the rule key builder, which makes
// digest stability across processes a hard compatibility requirement.
type CacheEntry struct {
	Target     string    `json:"target,omitzero"`
	RuleKey    RuleKey   `json:"rule_key,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
