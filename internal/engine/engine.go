// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// Kind identifies a supported container engine.
type Kind string

const (
	// KindPodman is the primary supported engine.
	KindPodman Kind = "podman"
	// KindDocker is the fallback engine.
	KindDocker Kind = "docker"
)

// String returns the engine kind as the binary name.
func (k Kind) String() string { return string(k) }

// Capability identifies an engine-specific creation or execution feature.
// Creation code branches on capabilities, never on the engine name.
type Capability int

const (
	// CapUserNSKeepID maps the invoking user identity into the container
	// user namespace (--userns keep-id).
	CapUserNSKeepID Capability = iota
	// CapUlimitHost passes host resource limits through (--ulimit host).
	CapUlimitHost
	// CapPidsLimit lifts the default pids cgroup limit (--pids-limit -1).
	CapPidsLimit
	// CapDevPtsMount mounts a fresh devpts instance at /dev/pts.
	CapDevPtsMount
	// CapImageExists indicates a dedicated "image exists" subcommand.
	CapImageExists
)

// CapabilitySet is the set of capabilities an engine supports.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the capability.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Status is a container status string as observed via engine inspection.
type Status string

const (
	StatusRunning Status = "running"
	StatusExited  Status = "exited"
	StatusCreated Status = "created"
	StatusStopped Status = "stopped"
	StatusPaused  Status = "paused"
)

// Running reports whether the status describes a running container.
func (s Status) Running() bool { return s == StatusRunning }

// ErrContainerNotFound is the sentinel error wrapped by ContainerNotFoundError.
var ErrContainerNotFound = errors.New("container not found")

// ContainerNotFoundError is returned when inspection of a container fails,
// which the engine CLI contract defines as "not found".
type ContainerNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *ContainerNotFoundError) Error() string {
	return fmt.Sprintf("container %q not found", e.Name)
}

// Unwrap returns ErrContainerNotFound so callers can use errors.Is.
func (e *ContainerNotFoundError) Unwrap() error { return ErrContainerNotFound }

// ErrEngineNotAvailable is returned when no supported container engine is
// installed and reachable. Callers map it to the dependency-missing exit
// status.
type ErrEngineNotAvailable struct {
	Engine string
	Reason string
}

// Error implements the error interface.
func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Engine is the interface for driving a container engine CLI.
type Engine interface {
	// Kind returns the engine kind (podman or docker).
	Kind() Kind
	// Available checks if the engine is installed and responsive.
	Available() bool
	// Capabilities returns the engine's capability set.
	Capabilities() CapabilitySet
	// RemoteTransport reports whether the local control-socket transport
	// is in use for this engine.
	RemoteTransport() bool

	// ContainerStatus observes a container's current status.
	ContainerStatus(ctx context.Context, name string) (Status, error)
	// ContainerID resolves a container's engine-internal identifier.
	ContainerID(ctx context.Context, name string) (string, error)
	// StartContainer starts a stopped container.
	StartContainer(ctx context.Context, name string) error
	// Logs fetches timestamped container logs emitted since the given time.
	Logs(ctx context.Context, name string, since time.Time) (string, error)
	// Commit commits a container's filesystem state to a new image.
	Commit(ctx context.Context, container, image string) error
	// Pull pulls an image with stdio attached for progress output.
	Pull(ctx context.Context, image string, stdout, stderr io.Writer) error
	// ImageExists checks whether an image is present in the local store.
	ImageExists(ctx context.Context, image string) (bool, error)
	// Create submits a complete creation argument list. Engine output is
	// surfaced verbatim on the given writers.
	Create(ctx context.Context, args []string, stdout, stderr io.Writer) error
	// Command builds an invocable command for the given engine arguments,
	// letting the caller attach stdio before running it.
	Command(ctx context.Context, args ...string) *exec.Cmd
}

// Select resolves the engine to drive. With an empty preference it probes
// Podman first, then Docker; an explicit preference is probed first with
// the other kind as fallback. Neither available yields ErrEngineNotAvailable.
func Select(preferred Kind, opts ...Option) (Engine, error) {
	order := []Kind{KindPodman, KindDocker}
	if preferred == KindDocker {
		order = []Kind{KindDocker, KindPodman}
	}

	for _, kind := range order {
		var e Engine
		switch kind {
		case KindPodman:
			e = NewPodmanEngine(opts...)
		case KindDocker:
			e = NewDockerEngine(opts...)
		}
		if e.Available() {
			return e, nil
		}
	}

	name := "any"
	if preferred != "" {
		name = string(preferred)
	}
	return nil, &ErrEngineNotAvailable{
		Engine: name,
		Reason: "no container engine (podman or docker) is installed and responsive",
	}
}
