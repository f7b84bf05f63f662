package rulekey

import (
	"slices"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RuleKeyFactory = (*Factory)(nil)
var _ ports.DepKeys = (*KeyChain)(nil)

// Factory computes rule keys for rule descriptions. It folds each rule's
// identity fields into a Builder in a fixed order; dependency references
// contribute only their finalized keys, resolved through the chain.
type Factory struct {
	newHasher NewHasherFunc
	files     ports.FileHashCache
	chain     *KeyChain
}

// NewFactory creates a Factory. newHasher selects the digest algorithm;
// chain supplies (and later receives) finalized dependency keys.
func NewFactory(newHasher NewHasherFunc, files ports.FileHashCache, chain *KeyChain) *Factory {
	return &Factory{newHasher: newHasher, files: files, chain: chain}
}

// Chain returns the key chain the factory resolves dependencies against.
func (f *Factory) Chain() *KeyChain {
	return f.chain
}

// BuildKey computes the rule's digest and records it in the chain so that
// dependent rules can reference it.
func (f *Factory) BuildKey(rule *domain.Rule) (domain.RuleKey, error) {
	key, err := f.buildKey(rule, f.newHasher())
	if err != nil {
		return domain.RuleKey{}, zerr.With(err, "target", rule.Target.String())
	}
	f.chain.Put(rule.Target, key)
	return key, nil
}

// ExplainKey computes the rule's digest while capturing every field
// contribution, for diagnosing unexpected cache misses. The digest is
// identical to BuildKey's; the chain is not updated.
func (f *Factory) ExplainKey(rule *domain.Rule) (domain.RuleKey, *Capture, error) {
	capture := &Capture{}
	key, err := f.buildKey(rule, Capturing(f.newHasher(), capture))
	if err != nil {
		return domain.RuleKey{}, nil, zerr.With(err, "target", rule.Target.String())
	}
	return key, capture, nil
}

func (f *Factory) buildKey(rule *domain.Rule, hasher Hasher) (domain.RuleKey, error) {
	if rule.Target.IsZero() {
		return domain.RuleKey{}, zerr.Wrap(domain.ErrMissingField, "rule has no target")
	}
	if rule.Type == "" {
		return domain.RuleKey{}, zerr.Wrap(domain.ErrMissingField, "rule has no type")
	}

	b := NewBuilder(hasher, f.files, f.chain).SetRuleType(rule.Type)
	b.SetField("target", Target(rule.Target))
	b.SetField("cmd", Strings(rule.Command...))
	b.SetField("srcs", srcValues(rule.Srcs))
	b.SetField("deps", depValues(rule.Deps))
	b.SetField("env", StringMapping(rule.Env))
	if rule.Pipeline != "" {
		b.SetField("pipeline", String(rule.Pipeline))
		b.SetField("tool", Strings(rule.Tool...))
	}
	return b.Build()
}

func srcValues(srcs []domain.InternedString) Value {
	elems := make([]Value, len(srcs))
	for i, s := range srcs {
		elems[i] = Path(s.String())
	}
	return Sequence(elems...)
}

// depValues sorts dependencies by target name: dependency order is not part
// of a rule's identity, dependency identity is.
func depValues(deps []domain.BuildTarget) Value {
	sorted := slices.Clone(deps)
	slices.SortFunc(sorted, domain.BuildTarget.Compare)
	elems := make([]Value, len(sorted))
	for i, d := range sorted {
		elems[i] = Rule(d)
	}
	return Sequence(elems...)
}

// KeyChain holds the finalized keys of already-fingerprinted rules. Many
// independent rules are fingerprinted from parallel workers, so lookups and
// insertions are guarded; a single rule's computation itself is synchronous.
type KeyChain struct {
	mu   sync.RWMutex
	keys map[domain.BuildTarget]domain.RuleKey
}

// NewKeyChain creates an empty chain.
func NewKeyChain() *KeyChain {
	return &KeyChain{keys: make(map[domain.BuildTarget]domain.RuleKey)}
}

// KeyOf returns the finalized key for a target, if computed.
func (c *KeyChain) KeyOf(target domain.BuildTarget) (domain.RuleKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k, ok := c.keys[target]
	return k, ok
}

// Put records a finalized key.
func (c *KeyChain) Put(target domain.BuildTarget, key domain.RuleKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[target] = key
}
