//go:build !windows

package control

// Console window enumeration and key posting only exist on Windows. On
// other platforms the stdin channel carries everything, including
// sidplayfp's arrow keys as escape sequences.

const hideSupported = false

func findConsoleWindow([]string) (uintptr, error) {
	return 0, ErrWindowNotFound
}

func postKey(uintptr, Key) error {
	return ErrBrokenChannel
}

func hideWindow(uintptr) {}
