// Package termsession wires a ptysession.Session to the real controlling
// terminal: raw mode, SIGWINCH-driven resize, ambient color detection, and
// the read/write pumps that move bytes between the two.
package termsession

import (
	"fmt"
	"io"
	"os"
	"time"

	term "github.com/vtmux/vtmux"
	"github.com/vtmux/vtmux/internal/ptysession"
)

const writeTimeout = 5 * time.Second

// Attached owns one Session plus the local-terminal plumbing needed to drive
// it interactively: the raw-mode handle, the resize watcher, and the two
// read pumps (child -> screen, keyboard -> child).
type Attached struct {
	Session *ptysession.Session

	attach    *ptysession.AttachResult
	stopResize func()
	in        io.Reader
	out       io.Writer
}

// Open starts commandLine attached to a PTY sized to the real controlling
// terminal, puts that terminal into raw mode, and wires an OSC 52 clipboard
// provider backed by it using policy. Additional opts (e.g. palette
// overrides) are applied on top of the clipboard options. Close must be
// called to restore terminal state.
func Open(commandLine, dir string, extraEnv map[string]string, policy term.ClipboardPolicy, opts ...term.Option) (*Attached, error) {
	attachResult, err := ptysession.Attach()
	if err != nil {
		return nil, err
	}

	clipboard := ptysession.NewOSC52Clipboard(os.Stdout)
	sessOpts := append([]term.Option{
		term.WithClipboard(clipboard),
		term.WithClipboardPolicy(policy),
	}, opts...)
	sess := ptysession.New(attachResult.Rows, attachResult.Cols, sessOpts...)

	if err := sess.Start(commandLine, dir, extraEnv); err != nil {
		attachResult.Restore()
		return nil, fmt.Errorf("start session: %w", err)
	}

	a := &Attached{
		Session: sess,
		attach:  attachResult,
		in:      os.Stdin,
		out:     os.Stdout,
	}

	a.stopResize = ptysession.WatchResize(func(rows, cols int) {
		a.Session.Resize(rows, cols)
	})

	return a, nil
}

// Run pumps child output to the screen and keyboard input to the child until
// the child exits, calling onRepaint after every applied output chunk. The
// keyboard pump runs in the background and is abandoned on return: stdin
// only unblocks when the controlling terminal itself closes, which happens
// at process exit anyway.
func (a *Attached) Run(onRepaint func()) error {
	go a.pumpInput()
	return a.Session.Pump(onRepaint)
}

func (a *Attached) pumpInput() {
	buf := make([]byte, 4096)
	for {
		n, err := a.in.Read(buf)
		if n > 0 {
			if _, werr := a.Session.Write(buf[:n], writeTimeout); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Close restores the controlling terminal's mode, stops the resize watcher,
// and releases the child's PTY.
func (a *Attached) Close() error {
	if a.stopResize != nil {
		a.stopResize()
	}
	sessErr := a.Session.Close()
	if restoreErr := a.attach.Restore(); restoreErr != nil {
		return restoreErr
	}
	a.out.Write([]byte("\033[?25h\033[0m\r\n"))
	return sessErr
}

// DetectAmbientColors reports the host terminal's reported foreground and
// background colors so a child's own OSC 10/11 queries and COLORFGBG can be
// answered with the user's actual theme instead of a fallback guess.
func DetectAmbientColors() (fg, bg string) {
	return ptysession.DetectPalette()
}
