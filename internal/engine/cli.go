// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// ExecCommandFunc is the function signature for creating exec.Cmd.
// This allows injection of mock implementations for testing.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// Option configures a CLIEngine.
type Option func(*CLIEngine)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(e *CLIEngine) {
		e.execCommand = fn
	}
}

// WithLogger sets the logger used to debug-log engine invocations.
func WithLogger(logger *log.Logger) Option {
	return func(e *CLIEngine) {
		e.logger = logger
	}
}

// WithVerbose forwards the caller's verbosity to every engine invocation.
func WithVerbose(verbose bool) Option {
	return func(e *CLIEngine) {
		e.verbose = verbose
	}
}

// CLIEngine provides the common implementation for CLI-based container
// engines. PodmanEngine and DockerEngine embed this struct; engine-specific
// behavior (availability probe, image existence, transport) lives on the
// concrete types and in the capability set.
type CLIEngine struct {
	kind       Kind
	binaryPath string
	caps       CapabilitySet
	// globalArgs are prepended to every invocation (transport, verbosity).
	globalArgs  []string
	remote      bool
	verbose     bool
	execCommand ExecCommandFunc
	logger      *log.Logger
}

// NewCLIEngine creates the base engine for the given kind and binary path.
func NewCLIEngine(kind Kind, binaryPath string, caps CapabilitySet, opts ...Option) *CLIEngine {
	e := &CLIEngine{
		kind:        kind,
		binaryPath:  binaryPath,
		caps:        caps,
		execCommand: exec.CommandContext,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.verbose {
		e.globalArgs = append(e.globalArgs, "--log-level", "debug")
	}
	return e
}

// Kind returns the engine kind.
func (e *CLIEngine) Kind() Kind { return e.kind }

// BinaryPath returns the path to the engine binary.
func (e *CLIEngine) BinaryPath() string { return e.binaryPath }

// Capabilities returns the engine's capability set.
func (e *CLIEngine) Capabilities() CapabilitySet { return e.caps }

// RemoteTransport reports whether the control-socket transport is in use.
func (e *CLIEngine) RemoteTransport() bool { return e.remote }

// Command creates an exec.Cmd for the given arguments with the engine's
// global arguments prepended. The caller attaches stdio before running it.
func (e *CLIEngine) Command(ctx context.Context, args ...string) *exec.Cmd {
	full := append(append([]string{}, e.globalArgs...), args...)
	e.logger.Debug("engine invocation", "cmd", CommandLine(e.binaryPath, full))
	return e.execCommand(ctx, e.binaryPath, full...)
}

// runStatus executes a command and returns only the error status.
func (e *CLIEngine) runStatus(ctx context.Context, args ...string) error {
	cmd := e.Command(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// runOutput executes a command with stdout captured to a buffer.
func (e *CLIEngine) runOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.Command(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// runCombined executes a command and returns combined stdout/stderr.
func (e *CLIEngine) runCombined(ctx context.Context, args ...string) (string, error) {
	cmd := e.Command(ctx, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return string(out), nil
}

// --- Lifecycle Operations ---

// ContainerStatus observes a container's status via inspection. A failed
// inspection means the container does not exist (engine CLI contract).
func (e *CLIEngine) ContainerStatus(ctx context.Context, name string) (Status, error) {
	out, err := e.runOutput(ctx, "inspect", "--type", "container", "--format", "{{.State.Status}}", name)
	if err != nil {
		return "", &ContainerNotFoundError{Name: name}
	}
	return Status(strings.TrimSpace(out)), nil
}

// ContainerID resolves a container's engine-internal identifier.
func (e *CLIEngine) ContainerID(ctx context.Context, name string) (string, error) {
	out, err := e.runOutput(ctx, "inspect", "--type", "container", "--format", "{{.Id}}", name)
	if err != nil {
		return "", &ContainerNotFoundError{Name: name}
	}
	return strings.TrimSpace(out), nil
}

// StartContainer starts a stopped container.
func (e *CLIEngine) StartContainer(ctx context.Context, name string) error {
	return e.runStatus(ctx, "start", name)
}

// Logs fetches timestamped logs emitted since the given time. The returned
// text combines stdout and stderr because engines differ in which stream
// carries the entrypoint's output.
func (e *CLIEngine) Logs(ctx context.Context, name string, since time.Time) (string, error) {
	return e.runCombined(ctx, "logs", "-t", "--since", since.Format(time.RFC3339), name)
}

// Commit commits a container's current filesystem state to a new image.
func (e *CLIEngine) Commit(ctx context.Context, container, image string) error {
	return e.runStatus(ctx, "container", "commit", container, image)
}

// ImageExists checks the local image store. Engines with a dedicated
// existence subcommand use it; the rest fall back to image inspection.
func (e *CLIEngine) ImageExists(ctx context.Context, image string) (bool, error) {
	if e.caps.Has(CapImageExists) {
		err := e.runStatus(ctx, "image", "exists", image)
		return err == nil, nil
	}
	err := e.runStatus(ctx, "image", "inspect", "--format", "{{.Id}}", image)
	return err == nil, nil
}

// Pull pulls an image with progress attached to the given writers.
func (e *CLIEngine) Pull(ctx context.Context, image string, stdout, stderr io.Writer) error {
	cmd := e.Command(ctx, "pull", image)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pull %s failed: %w", image, err)
	}
	return nil
}

// Create submits a complete creation argument list built by the caller.
// Engine output is surfaced verbatim so failures carry the engine's own
// diagnostics.
func (e *CLIEngine) Create(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := e.Command(ctx, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("container creation failed: %w", err)
	}
	return nil
}

// CommandLine renders a binary and argument vector as a copy-paste safe
// shell command line for logs and hints. It is never fed back to a shell.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(a)
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}
