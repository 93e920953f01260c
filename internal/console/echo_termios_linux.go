//go:build linux

package console

import "golang.org/x/sys/unix"

const (
	termiosReadRequest  = unix.TCGETS
	termiosWriteRequest = unix.TCSETS
)
