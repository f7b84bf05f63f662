// Package execution bundles everything a build step needs at run time: the
// event bus, output streams, the process executor, the environment, and the
// shared tool cache. Contexts form a tree; derived contexts redirect output
// while sharing the bus and the warm tools of their parent.
package execution

import (
	"errors"
	"io"
	"time"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// Params configures a root execution context.
type Params struct {
	Bus          ports.EventBus
	Executor     ports.ProcessExecutor
	Env          map[string]string
	RuleCellRoot string
	ActionID     string
	Stdout       io.Writer
	Stderr       io.Writer
	Verbosity    int
}

// Context carries the run-time collaborators of one build action. It is
// immutable after construction; deriving a sub-context never mutates the
// parent.
type Context struct {
	bus          ports.EventBus
	executor     ports.ProcessExecutor
	env          map[string]string
	ruleCellRoot string
	actionID     string
	stdout       io.Writer
	stderr       io.Writer
	verbosity    int

	tools  *ToolCache
	closed bool
}

// NewContext creates a root context owning a fresh tool cache.
func NewContext(p Params) *Context {
	return &Context{
		bus:          p.Bus,
		executor:     p.Executor,
		env:          p.Env,
		ruleCellRoot: p.RuleCellRoot,
		actionID:     p.ActionID,
		stdout:       p.Stdout,
		stderr:       p.Stderr,
		verbosity:    p.Verbosity,
		tools:        NewToolCache(),
	}
}

// SubContext derives a context that writes to different streams at a
// different verbosity. The child shares the parent's event bus, environment
// and tool cache; it retains its own cache reference, so parent and child can
// be closed in either order without releasing a warm tool twice.
func (c *Context) SubContext(stdout, stderr io.Writer, verbosity int) *Context {
	return &Context{
		bus:          c.bus,
		executor:     c.executor.WithStreams(stdout, stderr),
		env:          c.env,
		ruleCellRoot: c.ruleCellRoot,
		actionID:     c.actionID,
		stdout:       stdout,
		stderr:       stderr,
		verbosity:    verbosity,
		tools:        c.tools.AddRef(),
	}
}

// ForAction derives a context for one named build action. Streams, bus,
// environment and tool cache are shared; the child owns its own cache
// reference.
func (c *Context) ForAction(actionID string) *Context {
	return &Context{
		bus:          c.bus,
		executor:     c.executor,
		env:          c.env,
		ruleCellRoot: c.ruleCellRoot,
		actionID:     actionID,
		stdout:       c.stdout,
		stderr:       c.stderr,
		verbosity:    c.verbosity,
		tools:        c.tools.AddRef(),
	}
}

// Close releases the context's resources, in particular its tool cache
// reference. Close is idempotent per context; resource errors are combined.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return errors.Join(c.tools.Release())
}

// Executor returns the process executor bound to this context's streams.
func (c *Context) Executor() ports.ProcessExecutor {
	return c.executor
}

// Tools returns the shared tool cache.
func (c *Context) Tools() *ToolCache {
	return c.tools
}

// Env returns the environment build steps run under.
func (c *Context) Env() map[string]string {
	return c.env
}

// RuleCellRoot returns the root directory build rules resolve paths against.
func (c *Context) RuleCellRoot() string {
	return c.ruleCellRoot
}

// ActionID identifies the build action this context serves.
func (c *Context) ActionID() string {
	return c.actionID
}

// Stdout returns the context's standard output stream.
func (c *Context) Stdout() io.Writer {
	return c.stdout
}

// Stderr returns the context's standard error stream.
func (c *Context) Stderr() io.Writer {
	return c.stderr
}

// Verbosity returns the console verbosity level.
func (c *Context) Verbosity() int {
	return c.verbosity
}

// PostEvent publishes an event on the shared bus.
func (c *Context) PostEvent(e domain.Event) {
	if c.bus != nil {
		c.bus.Post(e)
	}
}

// PostStep publishes a step status transition for this context's action.
func (c *Context) PostStep(stepName string, status domain.StepStatus) {
	c.PostEvent(domain.StepEvent{
		ActionID: c.actionID,
		StepName: stepName,
		Status:   status,
		Time:     time.Now(),
	})
}

// PostConsole publishes a console message on the shared bus. Debug-level
// messages are dropped below verbosity 2.
func (c *Context) PostConsole(level domain.LogLevel, msg string) {
	if level <= domain.LogLevelDebug && c.verbosity < 2 {
		return
	}
	c.PostEvent(domain.ConsoleEvent{
		Level:   level,
		Message: msg,
		Time:    time.Now(),
	})
}

// LogError publishes an error event on the shared bus.
func (c *Context) LogError(err error, msg string) {
	c.PostEvent(domain.ErrorEvent{
		Message: msg,
		Err:     err,
		Time:    time.Now(),
	})
}
