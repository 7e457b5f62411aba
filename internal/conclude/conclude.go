// Package conclude carries out a resolver.Conclusion: it either reports an
// exit status or hands the process over to the rewritten command.
package conclude

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	dontexec "github.com/jmgilman/dont/internal/exec"
	"github.com/jmgilman/dont/internal/resolver"
	"github.com/jmgilman/dont/internal/slogger"
)

// launchFailureCode is returned when the replacement command cannot start.
const launchFailureCode = 1

// Options holds the streams and environment handed to the replacement command.
// Nil fields inherit from the current process.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

// Concluder turns a Conclusion into a process exit status.
type Concluder struct {
	executor dontexec.Executor
	opts     Options
}

// New creates a Concluder that launches commands through executor.
func New(executor dontexec.Executor, opts Options) *Concluder {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Concluder{executor: executor, opts: opts}
}

// Conclude returns the exit status the process should terminate with.
// For an Exec conclusion on a platform with process replacement, a
// successful launch never returns.
func (c *Concluder) Conclude(ctx context.Context, concl resolver.Conclusion) int {
	if concl.Kind() == resolver.KindExit {
		return concl.Code()
	}

	argv := concl.Argv()
	if len(argv) == 0 {
		return c.fail(argv, dontexec.ErrEmptyCommand)
	}

	err := c.executor.Replace(argv, c.opts.Env)
	if err == nil {
		// Only a fake executor returns from a successful Replace.
		return 0
	}
	if !errors.Is(err, dontexec.ErrReplaceUnsupported) {
		return c.fail(argv, err)
	}

	slogger.L(ctx).Info("process replacement unavailable, running as child", "command", argv[0])
	return c.relay(ctx, argv)
}

// relay runs argv as a child with the inherited streams and returns its status.
func (c *Concluder) relay(ctx context.Context, argv []string) int {
	_, err := c.executor.Run(ctx, &dontexec.RunOptions{
		Name:   argv[0],
		Args:   argv[1:],
		Env:    c.opts.Env,
		Stdin:  c.opts.Stdin,
		Stdout: c.opts.Stdout,
		Stderr: c.opts.Stderr,
	})
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr)
	}
	return c.fail(argv, err)
}

// fail prints the launch diagnostic and returns the failure status.
func (c *Concluder) fail(argv []string, err error) int {
	fmt.Fprintf(c.opts.Stderr, "Failed to run %s: %v\n", strings.Join(argv, " "), err)
	return launchFailureCode
}

// exitStatus returns the child's exit code, or 1 if it did not exit normally.
func exitStatus(exitErr *exec.ExitError) int {
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return launchFailureCode
}
