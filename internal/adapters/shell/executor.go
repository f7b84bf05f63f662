// Package shell provides the process executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.ProcessExecutor using os/exec.
type Executor struct {
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates an executor whose processes stream their output to the
// logger until WithStreams substitutes concrete streams.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// WithStreams derives an executor whose processes write to the given streams.
func (e *Executor) WithStreams(stdout, stderr io.Writer) ports.ProcessExecutor {
	return &Executor{logger: e.logger, stdout: stdout, stderr: stderr}
}

// Run executes the command to completion.
//
// The process environment merges, low to high priority:
// 1. os.Environ() (system base)
// 2. cmd.Env (per-command overrides)
//
// PATH entries from cmd.Env are prepended to the system PATH, and non-absolute
// executables are resolved against the merged PATH.
func (e *Executor) Run(ctx context.Context, cmd ports.Command) error {
	if len(cmd.Argv) == 0 {
		return nil
	}

	c := e.prepare(ctx, cmd)
	if err := c.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode(err))
	}
	return nil
}

// Start launches a long-lived toolchain process with a request pipe on its
// stdin. The caller owns the returned handle and must Close it.
func (e *Executor) Start(ctx context.Context, cmd ports.Command) (ports.ToolProcess, error) {
	if len(cmd.Argv) == 0 {
		return nil, zerr.New("tool command is empty")
	}

	c := e.prepare(ctx, cmd)
	stdin, err := c.StdinPipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open tool stdin")
	}
	if err := c.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start tool"), "tool", cmd.Argv[0])
	}
	return &toolProcess{cmd: c, stdin: stdin}, nil
}

func (e *Executor) prepare(ctx context.Context, cmd ports.Command) *exec.Cmd {
	name := cmd.Argv[0]
	args := cmd.Argv[1:]
	env := resolveEnvironment(os.Environ(), cmd.Env)

	// Resolve non-absolute executables against the merged PATH, not the
	// parent process's.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path; preserve the
	// name as invoked.
	if len(c.Args) > 0 {
		c.Args[0] = name
	}
	c.Dir = cmd.Dir
	c.Env = env

	if e.stdout != nil {
		c.Stdout = e.stdout
	} else {
		c.Stdout = &logWriter{logger: e.logger, level: "info"}
	}
	if e.stderr != nil {
		c.Stderr = e.stderr
	} else {
		c.Stderr = &logWriter{logger: e.logger, level: "error"}
	}
	return c
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// toolProcess is a running toolchain process fed line-oriented requests over
// stdin.
type toolProcess struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	mu     sync.Mutex
	closed bool
}

// Send writes one request line to the tool's stdin.
func (p *toolProcess) Send(line string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return zerr.New("tool process already closed")
	}
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return zerr.Wrap(err, "failed to write to tool stdin")
	}
	return nil
}

// Close shuts the tool down by closing its stdin, then reaps it. Idempotent.
func (p *toolProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.stdin.Close(); err != nil {
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
		return zerr.Wrap(err, "failed to close tool stdin")
	}
	if err := p.cmd.Wait(); err != nil {
		return zerr.With(zerr.Wrap(err, "tool exited abnormally"), "exit_code", exitCode(err))
	}
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for _, entry := range overrides {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
