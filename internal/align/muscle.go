// Package align runs an external multiple sequence alignment tool.
package align

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// DefaultMusclePath is the MUSCLE executable looked up on PATH.
const DefaultMusclePath = "muscle"

// Aligner produces a FASTA alignment file from a FASTA input file.
type Aligner interface {
	Align(ctx context.Context, input, output string) error
}

// Muscle runs MUSCLE v5 ("muscle -align in -output out").
type Muscle struct {
	path   string
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// NewMuscle creates a MUSCLE runner. An empty path uses DefaultMusclePath.
func NewMuscle(path string) *Muscle {
	if path == "" {
		path = DefaultMusclePath
	}
	return &Muscle{
		path:   path,
		stdout: os.Stderr,
		stderr: os.Stderr,
		logger: zap.NewNop(),
	}
}

// SetOutput redirects the tool's stdout and stderr.
func (m *Muscle) SetOutput(stdout, stderr io.Writer) {
	m.stdout = stdout
	m.stderr = stderr
}

// SetLogger sets the logger for info messages.
func (m *Muscle) SetLogger(l *zap.Logger) {
	m.logger = l
}

// Align runs MUSCLE and blocks until it exits. Any failure to start, a
// non-zero exit or a missing output file is a *CollaboratorError.
func (m *Muscle) Align(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, m.path, "-align", input, "-output", output)
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr

	m.logger.Info("running aligner", zap.Stringer("cmd", cmd))

	if err := cmd.Run(); err != nil {
		return &CollaboratorError{Tool: m.path, Err: err, started: cmd.ProcessState != nil}
	}

	if _, err := os.Stat(output); err != nil {
		return &CollaboratorError{Tool: m.path, Err: fmt.Errorf("alignment output: %w", err), started: true}
	}

	m.logger.Info("alignment saved", zap.String("path", output))
	return nil
}

// CollaboratorError reports a failed external tool run.
type CollaboratorError struct {
	Tool    string
	Err     error
	started bool
}

func (e *CollaboratorError) Error() string {
	if e.NotInstalled() {
		return fmt.Sprintf("%s is not installed or not in PATH: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("running %s: %v", e.Tool, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NotInstalled reports whether the tool executable could not be found.
func (e *CollaboratorError) NotInstalled() bool {
	if e.started {
		return false
	}
	return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, os.ErrNotExist)
}

// ExitCode returns the tool's exit status, or -1 if it did not exit normally.
func (e *CollaboratorError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
