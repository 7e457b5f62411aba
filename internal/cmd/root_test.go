package cmd

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/dont/internal/exec/mocks"
)

// invocation is the observable result of one Execute call.
type invocation struct {
	code     int
	stdout   string
	stderr   string
	replaced []string
}

// newMockExecutor treats the listed commands as installed and records
// the argv of any replacement.
func newMockExecutor(installed ...string) *mocks.ExecutorMock {
	return &mocks.ExecutorMock{
		LookPathFunc: func(name string) (string, error) {
			for _, n := range installed {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
		},
		ReplaceFunc: func(argv []string, env []string) error {
			for _, n := range installed {
				if n == argv[0] {
					return nil
				}
			}
			return &exec.Error{Name: argv[0], Err: exec.ErrNotFound}
		},
	}
}

func execute(t *testing.T, mockExec *mocks.ExecutorMock, args ...string) invocation {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, Streams{
		In:  strings.NewReader(""),
		Out: &stdout,
		Err: &stderr,
	}, mockExec)

	inv := invocation{code: code, stdout: stdout.String(), stderr: stderr.String()}
	if calls := mockExec.ReplaceCalls(); len(calls) > 0 {
		require.Len(t, calls, 1, "replace must be attempted at most once")
		inv.replaced = calls[0].Argv
	}
	return inv
}

func TestExecute_CommandLines(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		installed []string
		wantCode  int
		wantExec  []string
	}{
		{name: "no command", args: nil, wantCode: 0},
		{name: "true", args: []string{"true"}, wantCode: 1},
		{name: "true with args", args: []string{"true", "x"}, wantCode: 1},
		{name: "true after dashes", args: []string{"--", "true"}, wantCode: 1},
		{name: "false", args: []string{"false", "x"}, wantCode: 0},
		{name: "bare dont", args: []string{"dont"}, wantCode: 0},
		{name: "dont ls", args: []string{"dont", "ls"}, installed: []string{"ls"}, wantExec: []string{"ls"}},
		{name: "dont after dashes", args: []string{"--", "dont", "ls"}, installed: []string{"ls"}, wantExec: []string{"ls"}},
		{
			name:      "dashes after dont are passed through",
			args:      []string{"dont", "--", "ls"},
			installed: []string{"--"},
			wantExec:  []string{"--", "ls"},
		},
		{
			name:      "help after the command is passed through",
			args:      []string{"dont", "grep", "--help"},
			installed: []string{"grep"},
			wantExec:  []string{"grep", "--help"},
		},
		{name: "ls with sl", args: []string{"ls", "-la"}, installed: []string{"sl"}, wantExec: []string{"sl", "-la"}},
		{name: "ls without sl", args: []string{"ls"}, installed: []string{"ls"}, wantCode: 0},
		{name: "sl", args: []string{"sl"}, installed: []string{"ls"}, wantExec: []string{"ls"}},
		{name: "vim with emacs", args: []string{"vim"}, installed: []string{"emacs"}, wantExec: []string{"emacs"}},
		{name: "vim without emacs", args: []string{"vim"}, installed: []string{"vim"}, wantCode: 0},
		{
			name:      "emacs with vim",
			args:      []string{"emacs", "file.txt"},
			installed: []string{"vim"},
			wantExec:  []string{"vim", "file.txt"},
		},
		{name: "unknown verb", args: []string{"rm", "-rf", "/"}, installed: []string{"rm"}, wantCode: 0},
		{name: "completion verb is opaque", args: []string{"__complete", "ls"}, installed: []string{"sl"}, wantCode: 0},
		{name: "completion verb without descriptions", args: []string{"__completeNoDesc", "x"}, wantCode: 0},
		{name: "completion verb after flags", args: []string{"-v", "__complete", "ls"}, wantCode: 0},
		{
			name:      "dont runs a completion verb",
			args:      []string{"dont", "__complete", "ls"},
			installed: []string{"__complete"},
			wantExec:  []string{"__complete", "ls"},
		},
		{name: "verbose flag before command", args: []string{"-v", "true"}, wantCode: 1},
		{name: "flag after command is opaque", args: []string{"ls", "-v"}, installed: []string{"sl"}, wantExec: []string{"sl", "-v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := execute(t, newMockExecutor(tt.installed...), tt.args...)

			assert.Equal(t, tt.wantCode, inv.code)
			assert.Equal(t, tt.wantExec, inv.replaced)
			assert.Empty(t, inv.stdout)
			assert.Empty(t, inv.stderr)
		})
	}
}

func TestExecute_NoSwaps(t *testing.T) {
	mockExec := newMockExecutor("sl", "ls", "emacs")

	inv := execute(t, mockExec, "--no-swaps", "sl")

	assert.Equal(t, 0, inv.code)
	assert.Nil(t, inv.replaced)
	assert.Empty(t, mockExec.LookPathCalls())
}

func TestExecute_LaunchFailure(t *testing.T) {
	inv := execute(t, newMockExecutor(), "dont", "nonexistent_command_12345", "--flag", "arg")

	assert.Equal(t, 1, inv.code)
	assert.Equal(t, []string{"nonexistent_command_12345", "--flag", "arg"}, inv.replaced)
	assert.Contains(t, inv.stderr, "Failed to run nonexistent_command_12345 --flag arg: ")
	assert.Contains(t, inv.stderr, "executable file not found")
}

func TestExecute_Help(t *testing.T) {
	for _, flag := range []string{"--help", "-h"} {
		t.Run(flag, func(t *testing.T) {
			mockExec := newMockExecutor()
			inv := execute(t, mockExec, flag)

			assert.Equal(t, 0, inv.code)
			assert.Contains(t, inv.stdout, "Usage:")
			assert.Contains(t, inv.stdout, "dont [flags] [command [args...]]")
			assert.Nil(t, inv.replaced)
			assert.Empty(t, mockExec.LookPathCalls())
		})
	}
}

func TestExecute_Version(t *testing.T) {
	inv := execute(t, newMockExecutor(), "--version")

	assert.Equal(t, 0, inv.code)
	assert.Contains(t, inv.stdout, "dont version dev")
}

func TestExecute_UnknownFlag(t *testing.T) {
	inv := execute(t, newMockExecutor(), "--bogus", "true")

	assert.Equal(t, usageErrorCode, inv.code)
	assert.Contains(t, inv.stderr, "unknown flag: --bogus")
	assert.Contains(t, inv.stderr, "Usage:")
	assert.Nil(t, inv.replaced)
}

func TestExecute_DebugLogging(t *testing.T) {
	inv := execute(t, newMockExecutor(), "-vv", "false")

	assert.Equal(t, 0, inv.code)
	assert.Contains(t, inv.stderr, "sl -> ls")
	assert.Contains(t, inv.stderr, "vim -> emacs (requires emacs)")
	assert.Contains(t, inv.stderr, "resolved")
	assert.Contains(t, inv.stderr, "exit(0)")
	assert.Empty(t, inv.stdout)
}

func TestGuardCompletion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "empty", args: []string{}, want: []string{}},
		{name: "plain verb", args: []string{"ls", "-la"}, want: []string{"ls", "-la"}},
		{name: "completion verb", args: []string{"__complete", "ls"}, want: []string{"--", "__complete", "ls"}},
		{name: "after flags", args: []string{"-vv", "__completeNoDesc"}, want: []string{"-vv", "--", "__completeNoDesc"}},
		{name: "already after dashes", args: []string{"--", "__complete"}, want: []string{"--", "__complete"}},
		{name: "later token", args: []string{"dont", "__complete"}, want: []string{"dont", "__complete"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guardCompletion(tt.args))
		})
	}
}

func TestLookPathChecker(t *testing.T) {
	mockExec := newMockExecutor("sl")
	checker := lookPathChecker(mockExec)

	assert.True(t, checker.HasCommand("sl"))
	assert.False(t, checker.HasCommand("emacs"))
	require.Len(t, mockExec.LookPathCalls(), 2)
	assert.Equal(t, "emacs", mockExec.LookPathCalls()[1].Name)
}
