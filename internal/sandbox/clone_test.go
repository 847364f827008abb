// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahayzen/distrobox/internal/engine"
)

func TestCloner_RefusesRunningSource(t *testing.T) {
	t.Parallel()

	fake := &fakeEngine{status: engine.StatusRunning}
	cloner := &Cloner{Engine: fake}

	_, err := cloner.Clone(context.Background(), "test1")
	if !errors.Is(err, ErrCloneSourceRunning) {
		t.Fatalf("Clone() error = %v, want ErrCloneSourceRunning", err)
	}
	// Engine state must not be mutated: no commit may have been issued.
	if fake.commitCalls != 0 {
		t.Errorf("commit issued %d times against a running source", fake.commitCalls)
	}
}

func TestCloner_CommitsStoppedSource(t *testing.T) {
	t.Parallel()

	fake := &fakeEngine{status: engine.StatusExited, id: "abc123"}
	cloner := &Cloner{
		Engine: fake,
		Now: func() time.Time {
			return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		},
	}

	image, err := cloner.Clone(context.Background(), "test1")
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if image != "test1:2024.03.01" {
		t.Errorf("Clone() image = %q, want test1:2024.03.01", image)
	}
	if fake.commitCalls != 1 {
		t.Fatalf("commit issued %d times, want 1", fake.commitCalls)
	}
	if fake.commitArgs != [2]string{"abc123", "test1:2024.03.01"} {
		t.Errorf("commit args = %v", fake.commitArgs)
	}
}

func TestCloner_MissingSource(t *testing.T) {
	t.Parallel()

	fake := &fakeEngine{statusErr: &engine.ContainerNotFoundError{Name: "test1"}}
	cloner := &Cloner{Engine: fake}

	_, err := cloner.Clone(context.Background(), "test1")
	if !errors.Is(err, engine.ErrContainerNotFound) {
		t.Fatalf("Clone() error = %v, want ErrContainerNotFound", err)
	}
	if fake.commitCalls != 0 {
		t.Errorf("commit issued for a missing source")
	}
}
