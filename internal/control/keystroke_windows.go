//go:build windows

package control

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows    = user32.NewProc("EnumWindows")
	procGetClassNameW  = user32.NewProc("GetClassNameW")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
	procPostMessageW   = user32.NewProc("PostMessageW")
	procShowWindow     = user32.NewProc("ShowWindow")
)

const (
	wmKeyDown = 0x0100
	wmKeyUp   = 0x0101
	wmChar    = 0x0102
	swHide    = 0

	consoleWindowClass = "ConsoleWindowClass"
)

const hideSupported = true

// findConsoleWindow enumerates top-level windows looking for a classic
// console host window whose title contains one of the hints.
func findConsoleWindow(hints []string) (uintptr, error) {
	var found uintptr
	cb := windows.NewCallback(func(hwnd, _ uintptr) uintptr {
		if windowClass(hwnd) != consoleWindowClass {
			return 1 // continue
		}
		title := strings.ToLower(windowTitle(hwnd))
		for _, h := range hints {
			if h != "" && strings.Contains(title, strings.ToLower(h)) {
				found = hwnd
				return 0 // stop
			}
		}
		return 1
	})
	procEnumWindows.Call(cb, 0)
	if found == 0 {
		return 0, ErrWindowNotFound
	}
	return found, nil
}

func windowClass(hwnd uintptr) string {
	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func windowTitle(hwnd uintptr) string {
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

// postKey posts a WM_KEYDOWN/WM_KEYUP pair, or a single WM_CHAR for
// character keys. The lParam carries the scan code in bits 16-23 and the
// extended-key flag in bit 24; key-up additionally sets the
// previous-state and transition bits.
func postKey(hwnd uintptr, k Key) error {
	if k.Char != 0 {
		if r, _, err := procPostMessageW.Call(hwnd, wmChar, uintptr(k.Char), 1); r == 0 {
			return fmt.Errorf("%w: post char: %v", ErrBrokenChannel, err)
		}
		return nil
	}

	down := uintptr(1) | uintptr(k.Scan)<<16
	if k.Extended {
		down |= 1 << 24
	}
	up := down | 1<<30 | 1<<31

	if r, _, err := procPostMessageW.Call(hwnd, wmKeyDown, uintptr(k.VK), down); r == 0 {
		return fmt.Errorf("%w: post keydown: %v", ErrBrokenChannel, err)
	}
	if r, _, err := procPostMessageW.Call(hwnd, wmKeyUp, uintptr(k.VK), up); r == 0 {
		return fmt.Errorf("%w: post keyup: %v", ErrBrokenChannel, err)
	}
	return nil
}

func hideWindow(hwnd uintptr) {
	procShowWindow.Call(hwnd, swHide)
}
