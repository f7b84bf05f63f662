package pipeline

import (
	"context"
	"errors"
	"strconv"

	"go.trai.ch/zerr"
)

// Stage is one unit of pipelined work. It receives the shared state and must
// not retain it past its return.
type Stage[S State] func(ctx context.Context, state S) error

// Run drives the ordered stages of one pipeline against a shared holder. The
// state is released exactly once when Run returns, whether the stages
// completed, failed, or the context was cancelled; a failed stage aborts the
// remaining ones. Stage errors and the state's close error are combined.
func Run[S State](ctx context.Context, holder *StateHolder[S], stages ...Stage[S]) error {
	run := func() error {
		for i, stage := range stages {
			if err := ctx.Err(); err != nil {
				return zerr.Wrap(err, "pipeline cancelled")
			}
			state, err := holder.State()
			if err != nil {
				return err
			}
			if err := stage(ctx, state); err != nil {
				return zerr.With(err, "stage", strconv.Itoa(i))
			}
			holder.MarkContinuation()
		}
		return nil
	}
	return errors.Join(run(), holder.Close())
}
