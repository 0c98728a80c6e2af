package control

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LouDnl/USBSID-player/internal/engine"
)

// Key identifies a console key event by Windows virtual-key code and
// hardware scan code. Extended marks keys from the extended set (arrows).
// When Char is set the key is posted as a character event instead, which
// is how the jsidplay2 console build reads its single-character commands.
type Key struct {
	VK       uint16
	Scan     byte
	Extended bool
	Char     rune
}

var (
	keyUp    = Key{VK: 0x26, Scan: 0x48, Extended: true}
	keyDown  = Key{VK: 0x28, Scan: 0x50, Extended: true}
	keyLeft  = Key{VK: 0x25, Scan: 0x4B, Extended: true}
	keyRight = Key{VK: 0x27, Scan: 0x4D, Extended: true}
	keyP     = Key{VK: 0x50, Scan: 0x19}
	keyQ     = Key{VK: 0x51, Scan: 0x10}
)

// keyFor maps a command to the engine's console key bindings: character
// keys for jsidplay2, sidplayfp's interactive keys otherwise.
func keyFor(engineID string, cmd Command) (Key, bool) {
	if engineID == engine.Jsidplay2 {
		if n, ok := cmd.Voice(); ok && n >= 1 && n <= 8 {
			return Key{Char: rune('0' + n)}, true
		}
		if seq, ok := jsidplay2Seq[cmd]; ok {
			return Key{Char: rune(seq[0])}, true
		}
		return Key{}, false
	}
	switch cmd {
	case SpeedUp:
		return keyUp, true
	case SpeedDown:
		return keyDown, true
	case NextSubtune:
		return keyRight, true
	case PrevSubtune:
		return keyLeft, true
	case Pause, Resume:
		return keyP, true
	case Quit:
		return keyQ, true
	}
	return Key{}, false
}

// KeystrokeChannel posts synthetic key events to the engine's console
// window. The window is located by class name and a set of title hints
// (engine name, tune file name) and cached until a post fails.
type KeystrokeChannel struct {
	engine string
	hints  []string

	mu   sync.Mutex
	hwnd uintptr
}

// NewKeystrokeChannel creates a keystroke channel for the given engine.
// Title hints are matched case-insensitively against console window
// titles.
func NewKeystrokeChannel(engineID string, titleHints ...string) *KeystrokeChannel {
	return &KeystrokeChannel{engine: engineID, hints: titleHints}
}

// Send posts the key bound to cmd to the engine's console window.
func (c *KeystrokeChannel) Send(cmd Command) error {
	key, ok := keyFor(c.engine, cmd)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd)
	}
	hwnd, err := c.window()
	if err != nil {
		return err
	}
	if err := postKey(hwnd, key); err != nil {
		// The window may have gone away; drop the cache so the next send
		// searches again.
		c.mu.Lock()
		c.hwnd = 0
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *KeystrokeChannel) window() (uintptr, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hwnd != 0 {
		return c.hwnd, nil
	}
	hwnd, err := findConsoleWindow(c.hints)
	if err != nil {
		return 0, err
	}
	c.hwnd = hwnd
	return hwnd, nil
}

// HideConsole hides the engine's console window as soon as it appears,
// polling every 20ms for up to 3 seconds. The engine may re-show the
// window while it finishes starting up, so the hide is repeated once
// shortly after. No-op on platforms without console windows.
func HideConsole(ctx context.Context, titleHints ...string) {
	if !hideSupported {
		return
	}
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if hwnd, err := findConsoleWindow(titleHints); err == nil {
			hideWindow(hwnd)
			select {
			case <-ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
			hideWindow(hwnd)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(20 * time.Millisecond):
		}
	}
}
