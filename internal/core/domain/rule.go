package domain

// Rule is one fully resolved build rule description: everything the
// fingerprinting layer folds into the rule's key, plus the action that
// produces its output.
type Rule struct {
	Target  BuildTarget
	Type    string
	Srcs    []InternedString
	Deps    []BuildTarget
	Env     map[string]string
	Command []string

	// Pipeline names the pipeline this rule is a stage of. Rules sharing a
	// pipeline name and declared consecutively reuse one warm toolchain
	// process; empty means the rule is not pipelined.
	Pipeline string

	// Tool is the command that starts the pipeline's shared toolchain
	// process. Only meaningful on the first stage of a pipeline.
	Tool []string
}

// RuleSet is a lookup of rules by target, preserving declaration order.
// It performs no ordering decisions of its own: the declared order is the
// execution order and must already be topologically valid.
type RuleSet struct {
	byTarget map[BuildTarget]*Rule
	ordered  []*Rule
}

// NewRuleSet creates an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{byTarget: make(map[BuildTarget]*Rule)}
}

// Add appends a rule. It fails if the target is already present or if a
// dependency has not been declared before its dependent.
func (rs *RuleSet) Add(r *Rule) error {
	if _, exists := rs.byTarget[r.Target]; exists {
		return zerrWith(ErrDuplicateRule, "target", r.Target.String())
	}
	for _, dep := range r.Deps {
		if _, ok := rs.byTarget[dep]; !ok {
			return zerrWith(ErrRuleOrder, "target", r.Target.String(), "dependency", dep.String())
		}
	}
	rs.byTarget[r.Target] = r
	rs.ordered = append(rs.ordered, r)
	return nil
}

// Get returns the rule for a target, or ErrUnknownTarget.
func (rs *RuleSet) Get(t BuildTarget) (*Rule, error) {
	r, ok := rs.byTarget[t]
	if !ok {
		return nil, zerrWith(ErrUnknownTarget, "target", t.String())
	}
	return r, nil
}

// Ordered returns the rules in declaration order.
func (rs *RuleSet) Ordered() []*Rule {
	return rs.ordered
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.ordered)
}
