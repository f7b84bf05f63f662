package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedValue is returned when a value outside the supported
	// fingerprinting universe is contributed to a rule key sink.
	ErrUnsupportedValue = zerr.New("unsupported rule key value")

	// ErrMissingField is returned when a rule description lacks a required
	// identity field.
	ErrMissingField = zerr.New("missing required rule field")

	// ErrStateUnavailable is returned when pipeline state is accessed but was
	// never created in this process. Pipelines cannot span processes.
	ErrStateUnavailable = zerr.New("pipeline state not available in the current process")

	// ErrDuplicateRule is returned when two rules share a target.
	ErrDuplicateRule = zerr.New("rule already declared")

	// ErrUnknownTarget is returned when a target has no declared rule.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrRuleOrder is returned when a rule is declared before one of its
	// dependencies. The engine consumes an already ordered sequence.
	ErrRuleOrder = zerr.New("rule declared before its dependency")

	// ErrBuildFailed is returned when at least one rule's action failed.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoTargetsSpecified is returned when a build is requested without
	// naming any targets.
	ErrNoTargetsSpecified = zerr.New("no targets specified")
)

// zerrWith attaches alternating key/value metadata pairs to a sentinel.
func zerrWith(err error, kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		err = zerr.With(err, kv[i], kv[i+1])
	}
	return err
}
