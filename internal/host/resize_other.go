//go:build !unix

package host

import "os"

// no window-change signal; polling alone drives resizes
func notifyResize() (<-chan os.Signal, func()) {
	return nil, func() {}
}
