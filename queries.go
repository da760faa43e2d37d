package term

import (
	"fmt"
	"regexp"
	"strconv"
)

// decrqmPattern matches DECRQM requests: CSI Pd $ p (ANSI mode) and
// CSI ? Pd $ p (DEC private mode).
var decrqmPattern = regexp.MustCompile(`\x1b\[(\??)(\d+)\$p`)

// xtversionPattern matches XTVERSION requests: CSI > q.
var xtversionPattern = regexp.MustCompile(`\x1b\[>q`)

// terminalVersion is the string XTVERSION reports, in the "name version" form
// xterm and its descendants use.
const terminalVersion = "TerminalDX12 1.0"

// decPrivateModeStatus reports whether mode is a recognized DEC private mode
// and, if so, whether it is currently set. Modes not listed here, including
// 1005/1015, 2026 and 2027 for which no state is kept, are reported as not
// recognized.
func (t *Terminal) decPrivateModeStatus(mode int) (known, set bool) {
	t.mu.RLock()
	modes := t.modes
	t.mu.RUnlock()

	switch mode {
	case 1:
		return true, modes&ModeCursorKeys != 0
	case 6:
		return true, modes&ModeOrigin != 0
	case 7:
		return true, modes&ModeLineWrap != 0
	case 12:
		return true, modes&ModeBlinkingCursor != 0
	case 25:
		return true, modes&ModeShowCursor != 0
	case 47, 1047, 1049:
		return true, modes&ModeSwapScreenAndSetRestoreCursor != 0
	case 1000:
		return true, modes&ModeReportMouseClicks != 0
	case 1002:
		return true, modes&ModeReportCellMouseMotion != 0
	case 1003:
		return true, modes&ModeReportAllMouseMotion != 0
	case 1004:
		return true, modes&ModeReportFocusInOut != 0
	case 1006:
		return true, modes&ModeSGRMouse != 0
	case 2004:
		return true, modes&ModeBracketedPaste != 0
	default:
		return false, false
	}
}

// ansiModeStatus reports the status of the handful of non-private (ANSI) modes
// DECRQM can be asked about without a leading '?'.
func (t *Terminal) ansiModeStatus(mode int) (known, set bool) {
	t.mu.RLock()
	modes := t.modes
	t.mu.RUnlock()

	switch mode {
	case 4: // IRM insert/replace
		return true, modes&ModeInsert != 0
	case 20: // LNM line feed/new line
		return true, modes&ModeLineFeedNewLine != 0
	default:
		return false, false
	}
}

// respondDECRQM answers a DECRQM query with CSI Pd;Ps $ y (ANSI) or
// CSI ? Pd;Ps $ y (DEC private), Ps in {0 unknown, 1 set, 2 reset}.
func (t *Terminal) respondDECRQM(private bool, mode int) {
	var known, set bool
	if private {
		known, set = t.decPrivateModeStatus(mode)
	} else {
		known, set = t.ansiModeStatus(mode)
	}

	status := 0
	switch {
	case !known:
		status = 0
	case set:
		status = 1
	default:
		status = 2
	}

	prefix := ""
	if private {
		prefix = "?"
	}
	t.writeResponseString(fmt.Sprintf("\x1b[%s%d;%d$y", prefix, mode, status))
}

// respondXTVERSION answers an XTVERSION query with DCS > | <version> ST.
func (t *Terminal) respondXTVERSION() {
	t.writeResponseString(fmt.Sprintf("\x1bP>|%s\x1b\\", terminalVersion))
}

// scanQueries intercepts DECRQM and XTVERSION requests ahead of the normal
// decoder. go-ansicode's Handler interface has no dispatch for either
// sequence, so they are recognized here by pattern match on the raw bytes
// rather than as Handler methods.
func (t *Terminal) scanQueries(data []byte) {
	for _, m := range decrqmPattern.FindAllSubmatch(data, -1) {
		private := len(m[1]) > 0
		mode, err := strconv.Atoi(string(m[2]))
		if err != nil {
			continue
		}
		t.respondDECRQM(private, mode)
	}
	if xtversionPattern.Match(data) {
		t.respondXTVERSION()
	}
}
