package ports

import (
	"context"
	"io"
)

// Command describes one process invocation.
type Command struct {
	// Argv is the command line; Argv[0] is looked up against the
	// environment's PATH when it is not absolute.
	Argv []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds environment variables in "KEY=VALUE" form. They are merged
	// over the system environment.
	Env []string
}

// ProcessExecutor spawns and communicates with external toolchain processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ProcessExecutor interface {
	// Run executes the command to completion.
	Run(ctx context.Context, cmd Command) error

	// Start launches a long-lived toolchain process whose handle is held as
	// pipeline state and released through its Close.
	Start(ctx context.Context, cmd Command) (ToolProcess, error)

	// WithStreams derives an executor whose spawned processes write to the
	// given streams. The receiver is not modified.
	WithStreams(stdout, stderr io.Writer) ProcessExecutor
}

// ToolProcess is a warm toolchain process shared across the stages of one
// pipeline. It is single-owner: never used from two goroutines at once.
type ToolProcess interface {
	// Send writes one request line to the tool's stdin.
	Send(line string) error

	// Close terminates the process and reaps it. Safe to call once.
	Close() error
}
