//go:build windows

package tty

import "os"

// Windows has no SIGWINCH; the viewport keeps its size until the next
// session mount.
func notifyResize() (<-chan os.Signal, func()) {
	return make(chan os.Signal), func() {}
}
