package resolver

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRule is returned when a rule table fails validation.
var ErrInvalidRule = errors.New("invalid rule")

//go:embed rules.yaml
var defaultRules []byte

var validate = validator.New()

// Rule swaps a verb for another program, keeping the arguments.
// If Requires is set, the rule only fires when that command is installed.
type Rule struct {
	Verb        string `yaml:"verb" validate:"required,ne=true,ne=false,ne=dont,nefield=Replacement"`
	Replacement string `yaml:"replacement" validate:"required"`
	Requires    string `yaml:"requires"`
}

// table is the document shape of a rule file.
type table struct {
	Rules []Rule `yaml:"rules" validate:"unique=Verb,dive"`
}

// LoadRules decodes and validates a YAML rule table.
func LoadRules(data []byte) ([]Rule, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := validateRules(t.Rules); err != nil {
		return nil, err
	}
	return t.Rules, nil
}

var builtinRules = sync.OnceValue(func() []Rule {
	rules, err := LoadRules(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("embedded rules.yaml: %v", err))
	}
	return rules
})

// DefaultRules returns the built-in swap rules (ls/sl, vim/emacs).
func DefaultRules() []Rule {
	return append([]Rule(nil), builtinRules()...)
}

func validateRules(rules []Rule) error {
	if err := validate.Struct(table{Rules: rules}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	return nil
}

// applies reports whether r may fire, consulting has only when r.Requires is set.
func (r Rule) applies(has CommandChecker) bool {
	if r.Requires == "" {
		return true
	}
	return has != nil && has.HasCommand(r.Requires)
}

// String describes the rule; the CLI logs the table at -vv.
func (r Rule) String() string {
	if r.Requires == "" {
		return fmt.Sprintf("%s -> %s", r.Verb, r.Replacement)
	}
	return fmt.Sprintf("%s -> %s (requires %s)", r.Verb, r.Replacement, r.Requires)
}
