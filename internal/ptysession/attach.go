package ptysession

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"

	term "github.com/vtmux/vtmux"
)

// OSC52Clipboard implements term.ClipboardProvider by shelling OSC 52 sequences
// out to the real controlling terminal, so writes go to the host terminal's system
// clipboard (not a value held in memory). Reads are not served: Read returns "".
type OSC52Clipboard struct {
	out *os.File
}

var _ term.ClipboardProvider = (*OSC52Clipboard)(nil)

// NewOSC52Clipboard returns a ClipboardProvider that writes OSC 52 sequences to out.
func NewOSC52Clipboard(out *os.File) *OSC52Clipboard {
	return &OSC52Clipboard{out: out}
}

// Read is a no-op: OSC 52 is a write/query protocol over the wire, and a query's
// reply arrives asynchronously through the child's own PTY read loop, not here.
func (c *OSC52Clipboard) Read(clipboard byte) string { return "" }

// Write copies data to the host terminal's clipboard via an OSC 52 escape sequence.
func (c *OSC52Clipboard) Write(clipboard byte, data []byte) {
	seq := osc52.New(string(data))
	if clipboard == 'p' {
		seq = seq.Primary()
	}
	seq.WriteTo(c.out)
}

// AttachResult reports the terminal size detected when attaching to the controlling tty.
type AttachResult struct {
	Rows, Cols int
	Restore    func() error
}

// Attach puts the controlling terminal (stdin) into raw mode and reports its size,
// using golang.org/x/term for the mode switch and go-isatty to refuse attaching to
// a non-tty stdin. Callers must invoke the returned Restore func before exiting.
func Attach() (*AttachResult, error) {
	fd := int(os.Stdin.Fd())
	if !isatty.IsTerminal(uintptr(fd)) && !isatty.IsCygwinTerminal(uintptr(fd)) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	cols, rows, err := xterm.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}

	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	return &AttachResult{
		Rows: rows,
		Cols: cols,
		Restore: func() error {
			return xterm.Restore(fd, state)
		},
	}, nil
}

// DetectPalette inspects the real terminal's reported foreground/background colors
// (via OSC 10/11 queries issued by termenv) so a child's own OSC 10/11 queries can
// be answered with the host's actual theme instead of a hardcoded fallback.
func DetectPalette() (fg, bg string) {
	output := termenv.NewOutput(os.Stdout)
	if c := output.ForegroundColor(); c != nil {
		fg = c.Sequence(false)
	}
	if c := output.BackgroundColor(); c != nil {
		bg = c.Sequence(false)
	}
	return fg, bg
}

// WatchResize invokes onResize with the controlling terminal's current size every
// time SIGWINCH is delivered, until stop is called.
func WatchResize(onResize func(rows, cols int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigwinch())
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				cols, rows, err := xterm.GetSize(int(os.Stdin.Fd()))
				if err == nil {
					onResize(rows, cols)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
