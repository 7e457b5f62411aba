// Package resolver decides what a negated command line turns into.
//
// Resolution is pure: it never touches PATH itself. Whether a command is
// installed is answered by the CommandChecker passed in by the caller.
package resolver

// Built-in verbs, checked before any swap rule.
const (
	verbTrue  = "true"
	verbFalse = "false"
	verbDont  = "dont"
)

// CommandChecker answers whether an executable is resolvable on the search path.
type CommandChecker interface {
	HasCommand(name string) bool
}

// HasCommandFunc adapts a function to CommandChecker.
type HasCommandFunc func(name string) bool

// HasCommand calls f(name).
func (f HasCommandFunc) HasCommand(name string) bool { return f(name) }

// Resolver maps a command line to a Conclusion using the built-ins and a
// table of swap rules.
type Resolver struct {
	rules []Rule
}

// New creates a Resolver over the given swap rules, in priority order.
func New(rules ...Rule) (*Resolver, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	return &Resolver{rules: append([]Rule(nil), rules...)}, nil
}

// Default returns a Resolver with the built-in ls/sl and vim/emacs swaps.
func Default() *Resolver {
	return &Resolver{rules: DefaultRules()}
}

// Minimal returns a Resolver without swap rules.
func Minimal() *Resolver {
	return &Resolver{}
}

// Rules returns a copy of the swap rules.
func (r *Resolver) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Resolve decides the outcome for tokens. It never fails.
func (r *Resolver) Resolve(tokens []string, has CommandChecker) Conclusion {
	if len(tokens) == 0 {
		return Exit(0)
	}

	verb, args := tokens[0], tokens[1:]
	switch verb {
	case verbTrue:
		return Exit(1)
	case verbFalse:
		return Exit(0)
	case verbDont:
		// Strip exactly one layer.
		if len(args) == 0 {
			return Exit(0)
		}
		return Exec(args...)
	}

	if rule, ok := r.lookup(verb); ok && rule.applies(has) {
		return Exec(append([]string{rule.Replacement}, args...)...)
	}
	return Exit(0)
}

// lookup returns the first rule for verb.
func (r *Resolver) lookup(verb string) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Verb == verb {
			return rule, true
		}
	}
	return Rule{}, false
}

// Resolve resolves tokens with the default rule set.
func Resolve(tokens []string, has CommandChecker) Conclusion {
	return Default().Resolve(tokens, has)
}
