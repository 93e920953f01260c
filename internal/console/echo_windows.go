//go:build windows

package console

import (
	"os"

	"golang.org/x/sys/windows"
)

func withoutEcho(terminal *os.File, read func() (string, error)) (string, error) {
	if terminal == nil {
		return read()
	}

	handle := windows.Handle(terminal.Fd())
	var original uint32
	if err := windows.GetConsoleMode(handle, &original); err != nil {
		return read()
	}
	if err := windows.SetConsoleMode(handle, original&^windows.ENABLE_ECHO_INPUT); err != nil {
		return read()
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, original)
	}()

	return read()
}
