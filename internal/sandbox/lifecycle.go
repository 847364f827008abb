// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ahayzen/distrobox/internal/engine"
	"github.com/ahayzen/distrobox/internal/issue"
)

// Lifecycle drives a sandbox through observation, startup, and execution.
// It is sequential and stateless: every decision re-queries the engine
// immediately before acting, tolerating externally induced state changes.
type Lifecycle struct {
	Engine    engine.Engine
	Readiness ReadinessSignal

	// Output receives user-facing progress lines and surfaced warnings.
	Output io.Writer
	// Stdin, Stdout, Stderr are attached to the container execution.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *log.Logger
}

// NewLifecycle builds a Lifecycle with the log-polling readiness signal.
func NewLifecycle(e engine.Engine, logger *log.Logger, pollInterval, pollBound time.Duration) *Lifecycle {
	return &Lifecycle{
		Engine:    e,
		Readiness: &LogPoll{Engine: e, Interval: pollInterval, Bound: pollBound},
		Output:    io.Discard,
		Logger:    logger,
	}
}

// Create submits the creation specification to the engine. Engine output
// is surfaced verbatim on the lifecycle's stdout/stderr.
func (l *Lifecycle) Create(ctx context.Context, spec *CreateSpec) error {
	args, err := spec.Args(l.Engine.Capabilities())
	if err != nil {
		return err
	}
	return l.Engine.Create(ctx, args, l.Stdout, l.Stderr)
}

// EnsureRunning observes the container state and drives it to running:
// absent is a terminal failure naming the creation command, stopped is
// started and polled for readiness, running is accepted as-is. On a
// successful start, warning-marked initializer log lines are surfaced on
// Output without affecting the outcome.
func (l *Lifecycle) EnsureRunning(ctx context.Context, name string) error {
	status, err := l.Engine.ContainerStatus(ctx, name)
	if err != nil {
		if errors.Is(err, engine.ErrContainerNotFound) {
			return issue.NewErrorContext().
				WithOperation("enter container").
				WithResource(name).
				WithSuggestion("Create it first: distrobox create --name " + name + " --image <image>").
				Wrap(err).
				BuildError()
		}
		return err
	}
	l.Logger.Debug("observed container state", "container", name, "status", string(status))

	if status.Running() {
		return nil
	}

	// The start timestamp anchors the readiness log window: only lines the
	// initializer emits during this boot count.
	since := time.Now()
	if err := l.Engine.StartContainer(ctx, name); err != nil {
		return issue.WrapWithOperation(err, "start container")
	}

	fmt.Fprintf(l.Output, "Starting container %s\n", name)
	fmt.Fprintf(l.Output, "Follow along with: %s logs -f %s\n", l.Engine.Kind(), name)

	warnings, err := l.Readiness.Wait(ctx, name, since)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(l.Output, w)
	}
	return nil
}

// Enter ensures the container is running, then executes the specification
// inside it with stdio attached. The returned exit code is the container
// command's own exit status and becomes this process's outcome.
func (l *Lifecycle) Enter(ctx context.Context, spec *ExecSpec) (int, error) {
	if err := l.EnsureRunning(ctx, spec.ContainerName); err != nil {
		return 1, err
	}

	cmd := l.Engine.Command(ctx, spec.Args()...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, issue.WrapWithOperation(err, "execute command in container")
	}
	return 0, nil
}
