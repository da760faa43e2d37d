package term

import "fmt"

// Modes returns the current terminal mode bitmask. Thread-safe.
func (t *Terminal) Modes() TerminalMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes
}

// EncodeWin32Key encodes a single key event in Windows Terminal's "Win32
// input mode" wire format: ESC [ Vk ; Sc ; Uc ; Kd ; Cs ; Rc _
// vk is the virtual-key code, sc the scan code, uc the Unicode character (0 if
// none), keyDown the press/release flag, controlState the modifier bitmask,
// and repeatCount the OS key-repeat count (1 for a non-repeated key).
func EncodeWin32Key(vk, sc uint16, uc rune, keyDown bool, controlState uint32, repeatCount uint16) []byte {
	kd := 0
	if keyDown {
		kd = 1
	}
	return []byte(fmt.Sprintf("\x1b[%d;%d;%d;%d;%d;%d_", vk, sc, uc, kd, controlState, repeatCount))
}

// mouseCb builds the SGR/X10 button byte: base button code plus 32 when
// reporting motion, per xterm's mouse tracking encoding.
func mouseCb(button int, motion bool) int {
	cb := button
	if motion {
		cb += 32
	}
	return cb
}

// EncodeMouseEvent encodes a mouse event for the PTY according to the
// terminal's currently enabled mouse-tracking and encoding modes. button is
// the xterm button code (0 left, 1 middle, 2 right, 3 release in X10/Normal,
// 64/65 wheel). x and y are 1-based screen coordinates. press is false for a
// button release, motion true for a drag/move report. Returns nil if no mouse
// mode is enabled, or if the event would not be reported under the active
// mode (X10/Normal never report plain motion; only All does; X10 never
// reports release unless SGR encoding is enabled).
func (t *Terminal) EncodeMouseEvent(button, x, y int, press, motion bool) []byte {
	modes := t.Modes()

	switch {
	case modes&ModeReportAllMouseMotion != 0:
	case modes&ModeReportCellMouseMotion != 0:
		if motion && !press {
			return nil
		}
	case modes&ModeReportMouseClicks != 0:
		if motion {
			return nil
		}
		if !press && modes&ModeSGRMouse == 0 {
			return nil
		}
	default:
		return nil
	}

	if modes&ModeSGRMouse != 0 {
		suffix := byte('M')
		if !press {
			suffix = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", mouseCb(button, motion), x, y, suffix))
	}

	// X10/Normal encoding: CSI M Cb Cx Cy, each byte offset by 32 and clamped
	// so it stays a printable, single-byte value. X10 mode (ModeReportMouseClicks
	// without 1006) never reports release; button 3 already means "release" there.
	cb := mouseCb(button, motion) + 32
	cx := x + 32
	cy := y + 32
	if cb > 255 {
		cb = 255
	}
	if cx > 255 {
		cx = 255
	}
	if cy > 255 {
		cy = 255
	}
	return []byte{0x1b, '[', 'M', byte(cb), byte(cx), byte(cy)}
}
