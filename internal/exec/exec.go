// Package exec provides an abstraction over launching external commands,
// either as a child process or by replacing the current process image.
package exec

import (
	"context"
	"errors"
	"io"
)

// ErrEmptyCommand is returned when asked to launch an empty argv.
var ErrEmptyCommand = errors.New("empty command")

// ErrReplaceUnsupported is returned by Replace on platforms that cannot
// swap the process image in place. Callers fall back to Run.
var ErrReplaceUnsupported = errors.New("process replacement not supported on this platform")

// Result holds the output from a completed command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// RunOptions configures command execution.
type RunOptions struct {
	Name   string    // Command name or path (required)
	Args   []string  // Command arguments
	Dir    string    // Working directory (empty = current)
	Env    []string  // Full environment (nil = inherit)
	Stdin  io.Reader // Stdin source (nil = no input)
	Stdout io.Writer // If set, streams stdout here instead of capturing
	Stderr io.Writer // If set, streams stderr here instead of capturing
}

// Executor launches external commands.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/executor.go . Executor
type Executor interface {
	// Run spawns a command, waits for it, and returns its output.
	// If Stdout/Stderr writers are set in opts, output streams there and
	// Result.Stdout/Stderr will be nil.
	// Returns os/exec.ExitError on non-zero exit (use errors.As to extract).
	Run(ctx context.Context, opts *RunOptions) (*Result, error)

	// LookPath searches for an executable in PATH.
	// Returns the full path if found, or an error if not.
	LookPath(name string) (string, error)

	// Replace resolves argv[0] on PATH and replaces the current process
	// image with it. It only returns on failure.
	Replace(argv []string, env []string) error
}
