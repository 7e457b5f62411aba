package cmd

import (
	"context"

	"github.com/jmgilman/dont/internal/config"
)

type contextKey string

const optionsKey contextKey = "options"

// WithOptions adds the parsed options to the context.
func WithOptions(ctx context.Context, opts *config.Options) context.Context {
	return context.WithValue(ctx, optionsKey, opts)
}

// OptionsFromContext retrieves the options from context.
func OptionsFromContext(ctx context.Context) *config.Options {
	opts, ok := ctx.Value(optionsKey).(*config.Options)
	if !ok {
		return nil
	}
	return opts
}
