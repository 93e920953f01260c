//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package console

import "os"

func withoutEcho(_ *os.File, read func() (string, error)) (string, error) {
	return read()
}
