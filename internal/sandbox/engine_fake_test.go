// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/ahayzen/distrobox/internal/engine"
)

// fakeEngine is a scriptable engine.Engine for exercising the lifecycle
// state machine and the clone manager without a container runtime.
type fakeEngine struct {
	kind engine.Kind
	caps engine.CapabilitySet

	status    engine.Status
	statusErr error
	id        string

	// logs are returned by successive Logs calls; the last entry repeats.
	logs      []string
	logsCalls int

	startCalls  int
	commitCalls int
	commitArgs  [2]string
	createArgs  []string

	// commandFactory builds the exec.Cmd returned by Command; when nil,
	// Command records the args and returns a trivially succeeding command.
	commandFactory func(ctx context.Context, args []string) *exec.Cmd
	commandArgs    [][]string
}

func (f *fakeEngine) Kind() engine.Kind {
	if f.kind == "" {
		return engine.KindPodman
	}
	return f.kind
}

func (f *fakeEngine) Available() bool                    { return true }
func (f *fakeEngine) Capabilities() engine.CapabilitySet { return f.caps }
func (f *fakeEngine) RemoteTransport() bool              { return false }

func (f *fakeEngine) ContainerStatus(context.Context, string) (engine.Status, error) {
	return f.status, f.statusErr
}

func (f *fakeEngine) ContainerID(context.Context, string) (string, error) {
	return f.id, nil
}

func (f *fakeEngine) StartContainer(context.Context, string) error {
	f.startCalls++
	return nil
}

func (f *fakeEngine) Logs(context.Context, string, time.Time) (string, error) {
	i := f.logsCalls
	f.logsCalls++
	if len(f.logs) == 0 {
		return "", nil
	}
	if i >= len(f.logs) {
		i = len(f.logs) - 1
	}
	return f.logs[i], nil
}

func (f *fakeEngine) Commit(_ context.Context, container, image string) error {
	f.commitCalls++
	f.commitArgs = [2]string{container, image}
	return nil
}

func (f *fakeEngine) Pull(context.Context, string, io.Writer, io.Writer) error { return nil }

func (f *fakeEngine) ImageExists(context.Context, string) (bool, error) { return true, nil }

func (f *fakeEngine) Create(_ context.Context, args []string, _, _ io.Writer) error {
	f.createArgs = args
	return nil
}

func (f *fakeEngine) Command(ctx context.Context, args ...string) *exec.Cmd {
	f.commandArgs = append(f.commandArgs, args)
	if f.commandFactory != nil {
		return f.commandFactory(ctx, args)
	}
	return exec.CommandContext(ctx, "true")
}
