// Package cmd implements the dont command line using Cobra.
// Everything after the leading flags is handed to the resolver untouched.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmgilman/dont/internal/conclude"
	"github.com/jmgilman/dont/internal/config"
	dontexec "github.com/jmgilman/dont/internal/exec"
	"github.com/jmgilman/dont/internal/resolver"
	"github.com/jmgilman/dont/internal/slogger"
	"github.com/jmgilman/dont/internal/version"
)

// usageErrorCode is returned for invocations the flag parser rejects.
const usageErrorCode = 2

// Streams are the standard streams of the invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Main runs dont with the process arguments and returns its exit status.
// On platforms with process replacement, an Exec outcome does not return.
func Main() int {
	return Execute(context.Background(), os.Args[1:], Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}, dontexec.New())
}

// Execute parses args, resolves the command line, and concludes it.
func Execute(ctx context.Context, args []string, streams Streams, executor dontexec.Executor) int {
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}

	code := 0
	root, err := newRootCmd(executor, streams, &code)
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return usageErrorCode
	}
	root.SetArgs(guardCompletion(args))

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n%s", err, root.UsageString())
		return usageErrorCode
	}
	return code
}

// guardCompletion inserts "--" before a leading __complete or
// __completeNoDesc token so cobra treats it as a command word rather than
// its hidden shell-completion command.
func guardCompletion(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			continue
		}
		if arg != cobra.ShellCompRequestCmd && arg != cobra.ShellCompNoDescRequestCmd {
			return args
		}
		guarded := make([]string, 0, len(args)+1)
		guarded = append(guarded, args[:i]...)
		guarded = append(guarded, "--")
		return append(guarded, args[i:]...)
	}
	return args
}

func newRootCmd(executor dontexec.Executor, streams Streams, code *int) (*cobra.Command, error) {
	var loader *config.Loader

	root := &cobra.Command{
		Use:   "dont [flags] [command [args...]]",
		Short: "Don't run the command",
		Long: `dont does not run the command you give it.

  dont true            exits 1
  dont false           exits 0
  dont dont CMD...     runs CMD
  dont sl              runs ls
  dont ls              runs sl, if installed
  dont vim / emacs     runs the other editor, if installed

Anything else exits 0 without doing anything. Flags are only recognised
before the command; everything after it is passed through as is.`,
		Example: `  # Really run make
  dont dont make test

  # Pass a command that starts with a dash
  dont -- dont -weird-name`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loader.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctx = WithOptions(ctx, opts)
			ctx = slogger.WithLogger(ctx, slogger.New(slogger.Config{
				Verbosity: opts.Verbose,
				Output:    streams.Err,
			}))
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = run(cmd.Context(), args, executor, streams)
			return nil
		},
	}

	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	root.Flags().SetInterspersed(false)
	config.Register(root.Flags())

	var err error
	loader, err = config.NewLoader(root.Flags())
	if err != nil {
		return nil, err
	}
	return root, nil
}

// run resolves tokens and carries out the conclusion.
func run(ctx context.Context, tokens []string, executor dontexec.Executor, streams Streams) int {
	log := slogger.L(ctx)

	r := resolver.Default()
	if opts := OptionsFromContext(ctx); opts != nil && opts.NoSwaps {
		r = resolver.Minimal()
	}

	log.Debug("rules", "table", r.Rules())
	concl := r.Resolve(tokens, lookPathChecker(executor))
	log.Debug("resolved", "tokens", tokens, "conclusion", concl.String())

	return conclude.New(executor, conclude.Options{
		Stdin:  streams.In,
		Stdout: streams.Out,
		Stderr: streams.Err,
	}).Conclude(ctx, concl)
}

// lookPathChecker answers HasCommand with a PATH lookup.
func lookPathChecker(executor dontexec.Executor) resolver.CommandChecker {
	return resolver.HasCommandFunc(func(name string) bool {
		_, err := executor.LookPath(name)
		return err == nil
	})
}
