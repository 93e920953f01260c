//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package console

import (
	"os"

	"golang.org/x/sys/unix"
)

// withoutEcho runs read with terminal echo switched off. Input that is not a
// terminal is read as is.
func withoutEcho(terminal *os.File, read func() (string, error)) (string, error) {
	if terminal == nil {
		return read()
	}

	fd := int(terminal.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return read()
	}
	original := *termios
	updated := original
	updated.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &updated); err != nil {
		return read()
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &original)
	}()

	return read()
}
