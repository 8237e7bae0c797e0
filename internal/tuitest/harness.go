package tuitest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 100
	defaultHeight  = 30
	defaultTimeout = 5 * time.Second
	pollInterval   = 25 * time.Millisecond
)

// Config describes the program to drive inside a pseudo terminal.
type Config struct {
	Command []string
	Dir     string
	Env     []string
	Width   int
	Height  int
	// Timeout bounds every WaitFor call and the final exit.
	Timeout time.Duration
}

// Session is a running program attached to a PTY. Everything the program
// writes is captured and can be searched while it runs.
type Session struct {
	cmd     *exec.Cmd
	ptmx    *os.File
	timeout time.Duration

	mu     sync.Mutex
	output []byte
	mark   int

	readDone chan struct{}
	exited   chan struct{}
	exitErr  error
}

// Start spawns the configured command on a new PTY.
func Start(cfg Config) (*Session, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cmd := exec.Command(cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}

	s := &Session{
		cmd:      cmd,
		ptmx:     ptmx,
		timeout:  timeout,
		readDone: make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go s.read()
	go func() {
		s.exitErr = cmd.Wait()
		close(s.exited)
	}()
	return s, nil
}

func (s *Session) read() {
	defer close(s.readDone)
	responder := newTerminalResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			responder.Process(chunk)
			s.mu.Lock()
			s.output = append(s.output, chunk...)
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw input to the program. Output captured before the call is
// no longer considered by WaitFor.
func (s *Session) Send(input ...[]byte) error {
	s.mu.Lock()
	s.mark = len(s.output)
	s.mu.Unlock()
	for _, in := range input {
		if _, err := s.ptmx.Write(in); err != nil {
			return fmt.Errorf("tuitest: write input: %w", err)
		}
	}
	return nil
}

// Type sends text one key at a time.
func (s *Session) Type(text string) error {
	for _, r := range text {
		if err := s.Send([]byte(string(r))); err != nil {
			return err
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// WaitFor blocks until text shows up in the output written since the last
// Send, or the session timeout elapses.
func (s *Session) WaitFor(text string) error {
	deadline := time.Now().Add(s.timeout)
	for {
		if strings.Contains(s.Screen(), text) {
			return nil
		}
		select {
		case <-s.exited:
			if strings.Contains(s.Screen(), text) {
				return nil
			}
			return fmt.Errorf("tuitest: program exited before %q appeared", text)
		default:
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("tuitest: timeout waiting for %q\n%s", text, s.Screen())
		}
		time.Sleep(pollInterval)
	}
}

// Screen returns the plain text written since the last Send.
func (s *Session) Screen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return plainText(s.output[s.mark:])
}

// Output returns every byte captured so far.
func (s *Session) Output() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.output...)
}

// Wait blocks until the program exits and returns its exit error.
func (s *Session) Wait() error {
	select {
	case <-s.exited:
	case <-time.After(s.timeout):
		_ = s.cmd.Process.Kill()
		<-s.exited
		s.close()
		return fmt.Errorf("tuitest: timeout waiting for program exit")
	}
	s.close()
	return s.exitErr
}

// Close kills the program if it is still running.
func (s *Session) Close() {
	select {
	case <-s.exited:
	default:
		_ = s.cmd.Process.Kill()
		<-s.exited
	}
	s.close()
}

func (s *Session) close() {
	_ = s.ptmx.Close()
	<-s.readDone
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	// KeyEnter sends a carriage return.
	KeyEnter = []byte{'\r'}
	// KeyEsc closes dialogs and quits from the main screen.
	KeyEsc = []byte{27}
	// KeyTab moves focus forward.
	KeyTab = []byte{'\t'}
	// KeyCtrlC interrupts the program.
	KeyCtrlC = []byte{3}
)
