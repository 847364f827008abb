// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"testing"
)

func TestContainerNotFoundError(t *testing.T) {
	t.Parallel()

	err := &ContainerNotFoundError{Name: "test1"}
	if !errors.Is(err, ErrContainerNotFound) {
		t.Error("errors.Is should match ErrContainerNotFound")
	}
	if err.Error() != `container "test1" not found` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestErrEngineNotAvailable(t *testing.T) {
	t.Parallel()

	err := &ErrEngineNotAvailable{Engine: "podman", Reason: "not installed"}
	want := "container engine 'podman' is not available: not installed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestEngineKinds(t *testing.T) {
	t.Parallel()

	recorder := &MockCommandRecorder{}
	podman := NewCLIEngine(KindPodman, "/usr/bin/podman", NewCapabilitySet(CapUserNSKeepID),
		WithExecCommand(recorder.CommandFunc(t)))
	if podman.Kind() != KindPodman {
		t.Errorf("Kind() = %q, want podman", podman.Kind())
	}
	if podman.RemoteTransport() {
		t.Error("plain CLIEngine should not report remote transport")
	}
}

func TestStatusRunning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusRunning, true},
		{StatusExited, false},
		{StatusCreated, false},
		{StatusStopped, false},
		{StatusPaused, false},
	}

	for _, tt := range tests {
		if got := tt.status.Running(); got != tt.want {
			t.Errorf("Status(%q).Running() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
