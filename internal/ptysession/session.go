// Package ptysession owns a child process's PTY lifecycle and feeds its output
// into a term.Terminal.
package ptysession

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/shlex"

	"github.com/vtmux/vtmux"
)

// ErrWriteTimeout is returned by Write when the child is not draining its stdin
// within the deadline - the kernel PTY buffer is full and the child is likely hung.
var ErrWriteTimeout = errors.New("pty write timed out")

// idleThreshold is how long output must be quiet before IsIdle reports true.
const idleThreshold = 2 * time.Second

// Session owns one child process attached to a term.Terminal through a PTY.
type Session struct {
	mu sync.Mutex

	Term *term.Terminal
	ptm  *os.File
	cmd  *exec.Cmd

	rows, cols int
	lastOutput time.Time

	exited    bool
	exitError error
}

// New creates a Session driving a freshly constructed Terminal of the given size.
// Additional terminal options (providers, recording, etc.) are forwarded to term.New.
func New(rows, cols int, opts ...term.Option) *Session {
	allOpts := append([]term.Option{term.WithSize(rows, cols)}, opts...)
	return &Session{
		Term: term.New(allOpts...),
		rows: rows,
		cols: cols,
	}
}

// Start parses commandLine with shell-style quoting rules and launches it attached
// to a new PTY sized rows x cols, with dir as its working directory (empty = inherit)
// and extraEnv appended to (and overriding) the current environment.
func (s *Session) Start(commandLine string, dir string, extraEnv map[string]string) error {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return fmt.Errorf("parse command line: %w", err)
	}
	if len(args) == 0 {
		return errors.New("empty command line")
	}
	return s.StartArgs(args[0], args[1:], dir, extraEnv)
}

// StartArgs is like Start but takes the command and its arguments pre-split.
func (s *Session) StartArgs(command string, args []string, dir string, extraEnv map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.Command(command, args...)
	cmd.Dir = dir

	if len(extraEnv) > 0 {
		env := make([]string, 0, len(os.Environ())+len(extraEnv))
		for _, e := range os.Environ() {
			key := e
			if idx := strings.IndexByte(e, '='); idx >= 0 {
				key = e[:idx]
			}
			if _, overridden := extraEnv[key]; !overridden {
				env = append(env, e)
			}
		}
		for k, v := range extraEnv {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(s.rows), Cols: uint16(s.cols)})
	if err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	s.cmd = cmd
	s.ptm = ptm
	return nil
}

// Pump reads child output into the terminal until the PTY closes, calling onData
// after each chunk is applied so the caller can trigger a repaint. Pump returns
// when the child exits or the PTY read fails; it never returns a non-nil error
// for ordinary EOF-on-exit.
func (s *Session) Pump(onData func()) error {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptm.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.lastOutput = time.Now()
			s.Term.Write(buf[:n])
			s.mu.Unlock()
			if onData != nil {
				onData()
			}
		}
		if err != nil {
			s.mu.Lock()
			s.exited = true
			if werr := s.cmd.Wait(); werr != nil {
				s.exitError = werr
				log.Printf("pty session: child exited with error: %v", werr)
			}
			s.mu.Unlock()
			return nil
		}
	}
}

// Write sends p to the child's stdin, giving up after timeout if the child's PTY
// buffer is full (the child is not reading). Runs the write in a goroutine so the
// caller isn't blocked indefinitely by a hung child.
func (s *Session) Write(p []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := s.ptm.Write(p)
		ch <- result{n, err}
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.n, r.err
	case <-timer.C:
		return 0, ErrWriteTimeout
	}
}

// SendWin32Key encodes a special key as a Win32 input-mode sequence and writes
// it to the child, for keys (function keys, modified arrows, etc.) that a
// front-end reports as structured events rather than raw bytes.
func (s *Session) SendWin32Key(vk, sc uint16, uc rune, keyDown bool, controlState uint32, repeatCount uint16, timeout time.Duration) (int, error) {
	return s.Write(term.EncodeWin32Key(vk, sc, uc, keyDown, controlState, repeatCount), timeout)
}

// SendMouseEvent encodes a mouse event using the session's Terminal's active
// mouse mode and writes it to the child. No-op (returns 0, nil) if the
// terminal has no mouse mode enabled or the event isn't reportable under it.
func (s *Session) SendMouseEvent(button, x, y int, press, motion bool, timeout time.Duration) (int, error) {
	encoded := s.Term.EncodeMouseEvent(button, x, y, press, motion)
	if encoded == nil {
		return 0, nil
	}
	return s.Write(encoded, timeout)
}

// Resize updates the terminal and PTY dimensions together.
func (s *Session) Resize(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows, s.cols = rows, cols
	s.Term.Resize(rows, cols)
	if s.ptm != nil {
		pty.Setsize(s.ptm, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	}
}

// IsIdle reports whether the child has produced no output for at least idleThreshold.
func (s *Session) IsIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.lastOutput.IsZero() && time.Since(s.lastOutput) > idleThreshold
}

// Exited reports whether the child process has terminated, and its wait error if any.
func (s *Session) Exited() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited, s.exitError
}

// Kill sends SIGKILL to the child process, for use when it is hung and unresponsive.
func (s *Session) Kill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	return s.cmd.Process.Kill()
}

// Close releases the PTY master file descriptor.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ptm == nil {
		return nil
	}
	return s.ptm.Close()
}
