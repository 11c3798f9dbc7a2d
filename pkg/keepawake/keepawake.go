// Package keepawake starts and stops a system idle-sleep inhibitor process
// around host sessions. The inhibitor's PID is recorded in a fixed file
// under the system temp directory; start replaces any prior inhibitor that
// is still alive, stop terminates it and removes the record. A recorded PID
// is only ever killed when the process behind it still runs the expected
// inhibitor command, so a recycled PID is never signalled.
package keepawake

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/mintuz/claude-plugins/pkg/logger"
)

const (
	pidFileName = "claude-plugins-keepawake.pid"

	// DefaultTimeout bounds the inhibitor's lifetime even when stop never runs
	DefaultTimeout = time.Hour
)

// Inhibitor manages the idle-sleep inhibitor process lifecycle
type Inhibitor struct {
	pidFile string
	command string
	args    []string
	timeout time.Duration
}

// Option configures an Inhibitor
type Option func(*Inhibitor)

// WithPIDFile sets a custom PID file path
func WithPIDFile(path string) Option {
	return func(i *Inhibitor) {
		i.pidFile = path
	}
}

// WithCommand replaces the inhibitor command line entirely
func WithCommand(name string, args ...string) Option {
	return func(i *Inhibitor) {
		i.command = name
		i.args = args
	}
}

// WithTimeout sets the inhibitor lifetime for the default command
func WithTimeout(d time.Duration) Option {
	return func(i *Inhibitor) {
		i.timeout = d
	}
}

// New creates an Inhibitor with the default PID file path and command
func New(opts ...Option) *Inhibitor {
	i := &Inhibitor{
		pidFile: filepath.Join(os.TempDir(), pidFileName),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// PIDFile returns the path of the PID record
func (i *Inhibitor) PIDFile() string {
	return i.pidFile
}

// CommandLine resolves the inhibitor command and arguments
func (i *Inhibitor) CommandLine() (string, []string) {
	if i.command != "" {
		return i.command, i.args
	}
	secs := strconv.Itoa(int(i.timeout.Seconds()))
	return "caffeinate", []string{"-dims", "-t", secs}
}

// Start terminates any previously recorded inhibitor that is still alive,
// then launches a new detached inhibitor process and records its PID.
func (i *Inhibitor) Start(ctx context.Context) error {
	i.stopRecorded(ctx)

	name, args := i.CommandLine()
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &detachSysProcAttr

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to start inhibitor %s", name)
	}

	pid := cmd.Process.Pid
	if err := os.WriteFile(i.pidFile, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return errors.Wrap(err, "failed to write PID file")
	}

	// the child outlives this invocation; reap it without blocking
	go func() { _ = cmd.Wait() }()

	logger.G(ctx).WithField("pid", pid).Debug("started idle-sleep inhibitor")
	return nil
}

// Stop terminates the recorded inhibitor if present and removes the record.
// A missing record or an already-dead process is a no-op.
func (i *Inhibitor) Stop(ctx context.Context) error {
	i.stopRecorded(ctx)
	return nil
}

// Status reports the recorded PID and whether that inhibitor still runs
func (i *Inhibitor) Status() (pid int, running bool) {
	pid, err := i.readPID()
	if err != nil {
		return 0, false
	}
	return pid, i.matchesInhibitor(pid)
}

// stopRecorded kills the recorded process when it is alive and still the
// inhibitor command, then drops the record. All conditions short of that are
// swallowed.
func (i *Inhibitor) stopRecorded(ctx context.Context) {
	pid, err := i.readPID()
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			// stale or unreadable record, drop it
			_ = os.Remove(i.pidFile)
		}
		return
	}

	if i.matchesInhibitor(pid) {
		proc, err := process.NewProcess(int32(pid))
		if err == nil {
			if err := proc.Terminate(); err != nil {
				logger.G(ctx).WithField("pid", pid).WithError(err).Debug("failed to terminate inhibitor")
			} else {
				logger.G(ctx).WithField("pid", pid).Debug("terminated idle-sleep inhibitor")
			}
		}
	}

	_ = os.Remove(i.pidFile)
}

// readPID reads the recorded PID from the PID file
func (i *Inhibitor) readPID() (int, error) {
	content, err := os.ReadFile(i.pidFile)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read PID file")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, errors.Errorf("invalid PID record %q", strings.TrimSpace(string(content)))
	}

	return pid, nil
}

// matchesInhibitor reports whether pid is alive and runs the expected
// inhibitor command, guarding against PID recycling
func (i *Inhibitor) matchesInhibitor(pid int) bool {
	alive, _ := process.PidExists(int32(pid))
	if !alive {
		return false
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}

	name, err := proc.Name()
	if err != nil {
		return false
	}

	expected, _ := i.CommandLine()
	return name == filepath.Base(expected)
}
