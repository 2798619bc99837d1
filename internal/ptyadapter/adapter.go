// Package ptyadapter spawns a command under a pseudo-terminal and exposes it
// as a byte-stream transport: read, write, resize, signal. This is the
// external collaborator spec.md treats as out of scope for the supervision
// kernel itself — the kernel only ever talks to the Adapter interface.
package ptyadapter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// Adapter is the byte-stream transport a Shell instance drives. The real
// implementation wraps creack/pty; tests drive the kernel against the fake
// in fake.go instead.
type Adapter interface {
	// Read blocks until pty output is available, the process exits and the
	// pty is drained, or the pty is closed.
	Read(p []byte) (int, error)
	// Write sends bytes to the pty as if typed at the terminal.
	Write(p []byte) (int, error)
	// Resize changes the pty's window size.
	Resize(cols, rows int) error
	// Signal delivers a signal to the child process.
	Signal(sig os.Signal) error
	// Wait blocks until the child exits and returns its exit code and, if
	// killed by a signal, the signal name. err is non-nil only for an OS
	// failure unrelated to the child's own exit.
	Wait() (exitCode int, exitSignal string, err error)
	// Pid returns the child process id.
	Pid() int
	// Close releases the pty file descriptor.
	Close() error
}

// ptyAdapter is the creack/pty-backed Adapter.
type ptyAdapter struct {
	cmd *exec.Cmd
	f   *os.File
}

// Spawn starts command with args under a pty in the given working
// directory with the given environment (format "KEY=VALUE", replacing the
// inherited environment entirely if non-nil). Returns the running Adapter.
func Spawn(command string, args []string, cwd string, env []string) (Adapter, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = cwd
	if env != nil {
		cmd.Env = env
	}

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", command, err)
	}

	return &ptyAdapter{cmd: cmd, f: f}, nil
}

func (a *ptyAdapter) Read(p []byte) (int, error)  { return a.f.Read(p) }
func (a *ptyAdapter) Write(p []byte) (int, error) { return a.f.Write(p) }

func (a *ptyAdapter) Resize(cols, rows int) error {
	return pty.Setsize(a.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (a *ptyAdapter) Signal(sig os.Signal) error {
	if a.cmd.Process == nil {
		return fmt.Errorf("process not started")
	}
	return a.cmd.Process.Signal(sig)
}

func (a *ptyAdapter) Pid() int {
	if a.cmd.Process == nil {
		return 0
	}
	return a.cmd.Process.Pid
}

func (a *ptyAdapter) Wait() (int, string, error) {
	err := a.cmd.Wait()
	if err == nil {
		return 0, "", nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		if !ok {
			return exitErr.ExitCode(), "", nil
		}
		if status.Signaled() {
			return -1, status.Signal().String(), nil
		}
		return status.ExitStatus(), "", nil
	}

	return -1, "", err
}

func (a *ptyAdapter) Close() error { return a.f.Close() }
