// Package pipeline threads mutable tool state through consecutive build
// stages of the same pipeline, so a stage can pick up where the previous one
// left off instead of paying the tool's startup cost again.
package pipeline

import (
	"go.trai.ch/mason/internal/core/domain"
)

// State is the per-pipeline mutable state shared by consecutive stages. It is
// created by the first stage's holder and released exactly once when the
// pipeline finishes, successfully or not.
type State interface {
	Close() error
}

// StateHolder owns one pipeline's state for the duration of a run. A holder
// either carries state created in this process, or carries none at all:
// pipeline state never crosses a process boundary, and a holder constructed
// for a continuation that has no in-process state reports that instead of
// guessing.
//
// Holders are confined to the single goroutine driving the pipeline; stages
// of one pipeline never run concurrently with each other.
type StateHolder[S State] struct {
	state      S
	hasState   bool
	firstStage bool
	closed     bool
}

// NewStateHolder creates a holder around freshly created state. The holder is
// in its first stage and takes ownership of closing the state.
func NewStateHolder[S State](state S) *StateHolder[S] {
	return &StateHolder[S]{state: state, hasState: true, firstStage: true}
}

// NewEmptyStateHolder creates a holder with no state. State returns
// ErrStateUnavailable; closing it is a no-op.
func NewEmptyStateHolder[S State]() *StateHolder[S] {
	return &StateHolder[S]{}
}

// State returns the held state. After close, or when the holder never had
// state in this process, it reports ErrStateUnavailable.
func (h *StateHolder[S]) State() (S, error) {
	var zero S
	if !h.hasState || h.closed {
		return zero, domain.ErrStateUnavailable
	}
	return h.state, nil
}

// IsFirstStage reports whether the holder is still in the stage that created
// the state.
func (h *StateHolder[S]) IsFirstStage() bool {
	return h.firstStage
}

// MarkContinuation transitions the holder out of its first stage. Subsequent
// stages observe the state as a continuation.
func (h *StateHolder[S]) MarkContinuation() {
	h.firstStage = false
}

// Close releases the state exactly once. Further calls, and calls on holders
// that never had state, are no-ops returning nil. After close the state is
// unavailable even if the underlying Close returned an error.
func (h *StateHolder[S]) Close() error {
	if h.closed || !h.hasState {
		h.closed = true
		return nil
	}
	h.closed = true
	return h.state.Close()
}
