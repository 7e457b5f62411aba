package resolver

import (
	"strconv"
	"strings"
)

// Kind identifies which shape a Conclusion has.
type Kind int

const (
	// KindExit means the process exits with Code.
	KindExit Kind = iota
	// KindExec means the process is replaced with Argv.
	KindExec
)

// Conclusion is the single outcome of resolving a command line.
// Build one with Exit or Exec; the zero value is Exit(0).
type Conclusion struct {
	kind Kind
	code int
	argv []string
}

// Exit returns a Conclusion that terminates with the given status.
func Exit(code int) Conclusion {
	return Conclusion{kind: KindExit, code: code}
}

// Exec returns a Conclusion that runs argv[0] with argv[1:] as arguments.
// The slice is copied.
func Exec(argv ...string) Conclusion {
	return Conclusion{kind: KindExec, argv: append([]string(nil), argv...)}
}

// Kind reports the shape of the conclusion.
func (c Conclusion) Kind() Kind { return c.kind }

// Code returns the exit status. Only meaningful for KindExit.
func (c Conclusion) Code() int { return c.code }

// Argv returns a copy of the command to execute. Only meaningful for KindExec.
func (c Conclusion) Argv() []string {
	return append([]string(nil), c.argv...)
}

// String renders the conclusion as exit(N) or exec(argv...).
func (c Conclusion) String() string {
	if c.kind == KindExec {
		return "exec(" + strings.Join(c.argv, " ") + ")"
	}
	return "exit(" + strconv.Itoa(c.code) + ")"
}
