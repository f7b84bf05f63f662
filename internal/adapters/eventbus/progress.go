package eventbus

import (
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProgressListener renders step events as progrock vertexes, one vertex per
// build action. Cached steps surface as cached vertexes rather than executed
// ones.
type ProgressListener struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertexes map[string]*progrock.VertexRecorder
}

// NewProgressListener creates a listener recording onto the given writer.
func NewProgressListener(w progrock.Writer) *ProgressListener {
	return &ProgressListener{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertexes: make(map[string]*progrock.VertexRecorder),
	}
}

// Handle is the bus listener func.
func (l *ProgressListener) Handle(event domain.Event) {
	step, ok := event.(domain.StepEvent)
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch step.Status {
	case domain.StepStarted:
		d := digest.FromString(step.ActionID)
		l.vertexes[step.ActionID] = l.rec.Vertex(d, step.ActionID)
	case domain.StepFinished:
		if v, ok := l.vertexes[step.ActionID]; ok {
			v.Done(nil)
			delete(l.vertexes, step.ActionID)
		}
	case domain.StepFailed:
		if v, ok := l.vertexes[step.ActionID]; ok {
			v.Done(zerr.With(zerr.New("step failed"), "step", step.StepName))
			delete(l.vertexes, step.ActionID)
		}
	case domain.StepCached:
		d := digest.FromString(step.ActionID)
		v := l.rec.Vertex(d, step.ActionID)
		v.Cached()
		v.Done(nil)
	}
}

// Close completes any still-open vertexes and shuts the recorder down.
func (l *ProgressListener) Close() error {
	l.mu.Lock()
	for id, v := range l.vertexes {
		v.Done(nil)
		delete(l.vertexes, id)
	}
	l.mu.Unlock()

	if c, ok := l.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
