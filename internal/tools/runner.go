package tools

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCommandFailed marks any non-zero exit or spawn failure from a Runner.
var ErrCommandFailed = errors.New("tools: command failed")

// ExitNotFound is reported when the executable cannot be located.
const ExitNotFound = 127

// Result is what one command left behind.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (r Result) Failed() bool { return r.ExitCode != 0 }

// CommandRunner abstracts process execution so callers can be tested with fakes.
type CommandRunner interface {
	Run(name string, args ...string) (Result, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	switch {
	case err == nil:
	case errors.Is(err, exec.ErrNotFound):
		res.ExitCode = ExitNotFound
	case cmd.ProcessState != nil:
		res.ExitCode = cmd.ProcessState.ExitCode()
	default:
		res.ExitCode = 1
	}
	return res, err
}

// RunChecked runs one command and folds a failure into an ErrCommandFailed
// chain carrying the exit code and both output streams.
func RunChecked(r CommandRunner, name string, args ...string) error {
	res, err := r.Run(name, args...)
	if err == nil && !res.Failed() {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("exit status %d", res.ExitCode)
	}
	return fmt.Errorf("%w: %s %s (exit %d) stdout=%q stderr=%q: %w",
		ErrCommandFailed, name, strings.Join(args, " "), res.ExitCode,
		bytes.TrimSpace(res.Stdout), bytes.TrimSpace(res.Stderr), err)
}
