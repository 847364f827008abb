// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahayzen/distrobox/internal/engine"
	"github.com/ahayzen/distrobox/internal/issue"
)

// cloneTagFormat is the date layout appended as the image tag.
const cloneTagFormat = "2006.01.02"

// ErrCloneSourceRunning is the sentinel error wrapped by CloneSourceRunningError.
var ErrCloneSourceRunning = errors.New("clone source is running")

// CloneSourceRunningError is returned when the clone source container is
// running. Cloning never proceeds (and never commits) against a running
// source.
type CloneSourceRunningError struct {
	Name string
}

// Error implements the error interface.
func (e *CloneSourceRunningError) Error() string {
	return fmt.Sprintf("container %q is running: stop it first", e.Name)
}

// Unwrap returns ErrCloneSourceRunning so callers can use errors.Is.
func (e *CloneSourceRunningError) Unwrap() error { return ErrCloneSourceRunning }

// Cloner commits a stopped container's filesystem state to a new image for
// use as a creation source.
type Cloner struct {
	Engine engine.Engine
	// Now supplies the clone timestamp. Injectable for tests; defaults to
	// time.Now.
	Now func() time.Time
}

// Clone snapshots the source container into an image tagged with the
// source name and the current date, and returns the image reference.
// The source must be observed in a non-running state before any engine
// state is mutated.
func (c *Cloner) Clone(ctx context.Context, source string) (string, error) {
	status, err := c.Engine.ContainerStatus(ctx, source)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("clone container").
			WithResource(source).
			WithSuggestion("List existing containers with: " + c.Engine.Kind().String() + " ps -a").
			Wrap(err).
			BuildError()
	}
	if status.Running() {
		return "", &CloneSourceRunningError{Name: source}
	}

	id, err := c.Engine.ContainerID(ctx, source)
	if err != nil {
		return "", err
	}

	now := c.Now
	if now == nil {
		now = time.Now
	}
	image := source + ":" + now().Format(cloneTagFormat)

	if err := c.Engine.Commit(ctx, id, image); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("commit image").
			WithResource(image).
			Wrap(err).
			BuildError()
	}

	return image, nil
}
