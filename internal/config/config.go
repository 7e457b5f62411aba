// Package config turns the leading command-line flags into validated Options.
//
// dont reads no configuration files and no environment variables; viper is
// only used as the binding layer between pflag and the Options struct.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names bound to Options fields.
const (
	FlagVerbose = "verbose"
	FlagNoSwaps = "no-swaps"
)

// ErrInvalidOptions is returned when decoded options fail validation.
var ErrInvalidOptions = errors.New("invalid options")

// validate is the shared validator instance.
var validate = validator.New()

// Options controls a single invocation.
type Options struct {
	// Verbose is the -v count: 1 logs info, 2 or more logs debug.
	Verbose int `mapstructure:"verbose" validate:"gte=0,lte=16"`

	// NoSwaps disables the ls/sl and vim/emacs rules.
	NoSwaps bool `mapstructure:"no-swaps"`
}

// Validate checks the options using struct tags.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// Loader reads Options from a parsed flag set.
type Loader struct {
	v *viper.Viper
}

// NewLoader binds the flag set. Call Load after the flags are parsed.
func NewLoader(flags *pflag.FlagSet) (*Loader, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	v.SetDefault(FlagVerbose, 0)
	v.SetDefault(FlagNoSwaps, false)

	return &Loader{v: v}, nil
}

// Load decodes and validates the bound flag values.
func (l *Loader) Load() (*Options, error) {
	var opts Options
	if err := l.v.Unmarshal(&opts, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Register adds the option flags to a flag set.
func Register(flags *pflag.FlagSet) {
	flags.CountP(FlagVerbose, "v", "log decisions to stderr (-v info, -vv debug)")
	flags.Bool(FlagNoSwaps, false, "disable the ls/sl and vim/emacs swaps")
}
