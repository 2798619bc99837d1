package shellsup

import (
	"context"
	"regexp"
	"time"

	"github.com/rivershell/mcpshell/internal/logging"
)

// Supervisor owns the Registry and Scheduler and is the explicit object
// the dispatcher is constructed against, per spec.md §9's "avoid
// process-wide singletons ... held by an explicit supervisor object ... so
// tests can instantiate isolated supervisors." Grounded on the reference
// daemon.Run's wiring of store + engine + transport + shutdown.
type Supervisor struct {
	Registry  *Registry
	Scheduler *Scheduler

	maxLogLines   int
	inputSettle   time.Duration
	graceMs       time.Duration
	killMs        time.Duration
	defaultVerify time.Duration
}

// Options configures a Supervisor's default timing knobs, sourced from
// internal/config.
type Options struct {
	MaxLogLines           int
	TickInterval          time.Duration
	InputSettle           time.Duration
	GraceMs               time.Duration
	KillMs                time.Duration
	DefaultVerifyTimeout  time.Duration
}

// NewSupervisor builds a Supervisor with its own Registry and Scheduler —
// never a shared global, so multiple Supervisors can coexist in tests.
func NewSupervisor(opts Options) *Supervisor {
	if opts.MaxLogLines <= 0 {
		opts.MaxLogLines = 500
	}
	if opts.InputSettle <= 0 {
		opts.InputSettle = defaultInputSettleMs * time.Millisecond
	}
	if opts.GraceMs <= 0 {
		opts.GraceMs = defaultGraceMs * time.Millisecond
	}
	if opts.KillMs <= 0 {
		opts.KillMs = defaultKillMs * time.Millisecond
	}
	if opts.DefaultVerifyTimeout <= 0 {
		opts.DefaultVerifyTimeout = defaultVerificationTimeoutMs * time.Millisecond
	}

	reg := NewRegistry()
	return &Supervisor{
		Registry:      reg,
		Scheduler:     NewScheduler(reg, opts.TickInterval),
		maxLogLines:   opts.MaxLogLines,
		inputSettle:   opts.InputSettle,
		graceMs:       opts.GraceMs,
		killMs:        opts.KillMs,
		defaultVerify: opts.DefaultVerifyTimeout,
	}
}

// StartShell registers and spawns a new shell from spec, failing
// DuplicateLabel if the label is already in use. Verification timeout
// defaults to the supervisor-wide default when spec leaves it zero.
func (sup *Supervisor) StartShell(spec StartSpec) (Snapshot, error) {
	timeout := spec.VerificationTimeout
	if timeout <= 0 {
		timeout = sup.defaultVerify
	}

	shell := NewShell(spec, sup.maxLogLines, sup.inputSettle, sup.graceMs, sup.killMs)
	if err := sup.Registry.Insert(spec.Label, shell); err != nil {
		return Snapshot{}, err
	}

	shell.Spawn(timeout)
	return shell.Check(defaultLogLines), nil
}

// CheckShell returns a status snapshot for label.
func (sup *Supervisor) CheckShell(label string, logLines int) (Snapshot, error) {
	shell, err := sup.Registry.Get(label)
	if err != nil {
		return Snapshot{}, err
	}
	return shell.Check(logLines), nil
}

// SendInput writes input to label's pty and waits for settle.
func (sup *Supervisor) SendInput(label, input string, appendNewline bool) (Snapshot, error) {
	shell, err := sup.Registry.Get(label)
	if err != nil {
		return Snapshot{}, err
	}
	return shell.SendInput(input, appendNewline)
}

// StopShell idempotently stops label.
func (sup *Supervisor) StopShell(label string, force bool) (Snapshot, error) {
	shell, err := sup.Registry.Get(label)
	if err != nil {
		return Snapshot{}, err
	}
	return shell.Stop(force), nil
}

// ListShells returns a minimal, read-only snapshot (label, status, pid,
// uptime) for every registered shell, the list_shells tool's result shape.
// Unlike CheckShell, this never advances poll_cursor or resets a shell's
// since_last_poll counters or pending transition flag — spec.md §6 calls
// list_shells a minimal snapshot, not a poll.
func (sup *Supervisor) ListShells() []ShellSummary {
	shells := sup.Registry.List()
	out := make([]ShellSummary, 0, len(shells))
	for _, s := range shells {
		out = append(out, ShellSummary{
			Label:  s.Label(),
			Status: string(s.State()),
			Pid:    s.Pid(),
			Uptime: time.Since(s.StartedAt()),
		})
	}
	return out
}

// ShellSummary is list_shells' minimal per-shell entry, extended with
// uptime per SPEC_FULL.md's additive list_shells behavior.
type ShellSummary struct {
	Label  string
	Status string
	Pid    int
	Uptime time.Duration
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (sup *Supervisor) Run(ctx context.Context) error {
	return sup.Scheduler.Run(ctx)
}

// Shutdown stops every managed shell with force=true, per spec.md §6's
// "the supervisor terminates all managed shells on shutdown via
// stop(force=true) before exiting." Grounded on daemon.Run's
// signal-triggered shutdown path.
func (sup *Supervisor) Shutdown() {
	for _, s := range sup.Registry.List() {
		logging.Info("shutdown: stopping shell", "label", s.Label())
		s.Stop(true)
	}
}

// compileOptionalPattern is a small helper shared by the dispatcher when
// translating start_shell's verification_pattern/notable_pattern string
// arguments into *regexp.Regexp, kept here so both the supervisor and its
// tests can validate pattern strings the same way.
func compileOptionalPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newError(KindBadArguments, "invalid regex %q: %v", pattern, err)
	}
	return re, nil
}

// CompilePattern exposes compileOptionalPattern to other packages
// (internal/mcpserver's tool argument validation).
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return compileOptionalPattern(pattern)
}
