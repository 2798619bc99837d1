package ptyadapter

import (
	"io"
	"os"
	"sync"
)

// Fake is an in-process stand-in for Adapter, used by shellsup's tests so
// the kernel's behavior can be driven deterministically without spawning a
// real OS process. Test code writes to Output to simulate pty output and
// reads from Input to observe what the shell wrote.
type Fake struct {
	mu       sync.Mutex
	outR     *io.PipeReader
	outW     *io.PipeWriter
	inR      *io.PipeReader
	inW      *io.PipeWriter
	pid      int
	signals  []os.Signal
	exitCode int
	exitSig  string
	waitCh   chan struct{}
	closed   bool
}

// NewFake creates a Fake with the given simulated pid.
func NewFake(pid int) *Fake {
	outR, outW := io.Pipe()
	inR, inW := io.Pipe()
	return &Fake{
		outR:   outR,
		outW:   outW,
		inR:    inR,
		inW:    inW,
		pid:    pid,
		waitCh: make(chan struct{}),
	}
}

// Output returns the writer test code uses to simulate pty output.
func (f *Fake) Output() io.WriteCloser { return f.outW }

// Input returns the reader test code uses to observe bytes the shell wrote.
func (f *Fake) Input() io.ReadCloser { return f.inR }

// Exit simulates the child process exiting with the given code (or, if
// sig is non-empty, being killed by that signal).
func (f *Fake) Exit(code int, sig string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCode = code
	f.exitSig = sig
	close(f.waitCh)
	f.outW.Close()
}

// Signals returns the signals delivered so far, in order.
func (f *Fake) Signals() []os.Signal {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]os.Signal, len(f.signals))
	copy(out, f.signals)
	return out
}

func (f *Fake) Read(p []byte) (int, error)  { return f.outR.Read(p) }
func (f *Fake) Write(p []byte) (int, error) { return f.inW.Write(p) }

func (f *Fake) Resize(cols, rows int) error { return nil }

func (f *Fake) Signal(sig os.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signals = append(f.signals, sig)
	return nil
}

func (f *Fake) Pid() int { return f.pid }

func (f *Fake) Wait() (int, string, error) {
	<-f.waitCh
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exitCode, f.exitSig, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.inW.Close()
	return nil
}

var _ Adapter = (*Fake)(nil)
