//go:build !unix

package exec

// replace is unavailable without execve; callers spawn and wait instead.
func replace(_ string, _ []string, _ []string) error {
	return ErrReplaceUnsupported
}
