//go:build unix

package exec

import (
	"os"

	"golang.org/x/sys/unix"
)

// replace calls execve(2). The process keeps its PID and open standard
// streams; on success this never returns.
func replace(path string, argv []string, env []string) error {
	if env == nil {
		env = os.Environ()
	}
	return unix.Exec(path, argv, env)
}
