// Package launcher spawns the external test runner and relays its outcome.
// The runner owns pass/fail semantics and its own timeout; nothing here
// retries or interprets test results.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/spjmurray/tco/internal/config"
	"github.com/spjmurray/tco/pkg/logging"
)

// TestDirEnv tells the runner where the repository checkout lives so it can
// find auxiliary control executables.
const TestDirEnv = "TESTDIR"

// The runner is driven through the standard test binary of the e2e package,
// entered through one umbrella test.
const (
	goTool     = "go"
	runnerPkg  = "github.com/couchbase/couchbase-operator/test/e2e"
	runnerTest = "TestOperator"
)

// gracePeriod is how long an interrupted runner gets to tear down clusters
// between SIGTERM and SIGKILL.
const gracePeriod = 10 * time.Second

// ExitError reports a runner that ran to completion and exited non-zero.
// The code is relayed as this process's own exit code rather than
// interpreted.
type ExitError struct {
	Code int
}

// Error implements error.
func (e *ExitError) Error() string {
	return fmt.Sprintf("test runner exited with code %d", e.Code)
}

// Command is a fully constructed runner invocation. Built once per run and
// never mutated after.
type Command struct {
	// Path is the binary to spawn.
	Path string

	// Args is the full argument vector, excluding the binary name.
	Args []string

	// Env is the overlay applied on top of the inherited environment.
	Env []string

	// Stdout and Stderr default to this process's when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// New assembles the runner invocation from the resolved configuration and
// the schema-emitted argument fragment.
func New(cfg *config.Config, emitted []string) *Command {
	args := []string{
		"test", runnerPkg,
		"-run", runnerTest,
		"-v",
		"-race",
		"-timeout", cfg.Timeout.String(),
	}

	args = append(args, emitted...)

	return &Command{
		Path: goTool,
		Args: args,
		Env:  []string{TestDirEnv + "=" + cfg.RepoRoot},
	}
}

// Run spawns the runner and blocks until it exits, inheriting this process's
// stdio. Cancelling the context sends the runner SIGTERM, escalating to
// SIGKILL after the grace period. A non-zero exit comes back as *ExitError;
// any other error means the runner never ran to completion.
func (c *Command) Run(ctx context.Context) error {
	logging.Debug("launcher", "Running %s %v", c.Path, c.Args)
	logging.Debug("launcher", "Environment overlay %v", c.Env)

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(), c.Env...)

	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = gracePeriod

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}

		return fmt.Errorf("failed to run test runner: %w", err)
	}

	return nil
}
