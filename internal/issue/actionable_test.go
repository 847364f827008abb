// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "select container engine"},
			expected: "failed to select container engine",
		},
		{
			name: "operation and resource",
			err: &ActionableError{
				Operation: "enter container",
				Resource:  "my-box",
			},
			expected: "failed to enter container: my-box",
		},
		{
			name: "operation, resource, and cause",
			err: &ActionableError{
				Operation: "commit image",
				Resource:  "my-box",
				Cause:     errors.New("disk full"),
			},
			expected: "failed to commit image: my-box: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := NewErrorContext().
		WithOperation("start container").
		Wrap(cause).
		Build()

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("enter container").
		WithResource("my-box").
		WithSuggestion("Create it first: distrobox create --name my-box").
		WithSuggestion("List existing containers with: podman ps -a").
		Wrap(errors.New("container not found")).
		Build()

	got := err.Format(false)
	if !strings.Contains(got, "failed to enter container: my-box") {
		t.Errorf("Format() missing error line: %q", got)
	}
	if !strings.Contains(got, "• Create it first: distrobox create --name my-box") {
		t.Errorf("Format() missing first suggestion: %q", got)
	}
	if strings.Contains(got, "Error chain") {
		t.Errorf("non-verbose Format() should not include the error chain: %q", got)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("verbose Format() should include the error chain: %q", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("my-box").BuildError(); err != nil {
		t.Errorf("BuildError() without operation should return nil, got %v", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) should return nil, got %v", got)
	}

	cause := errors.New("boom")
	err := WrapWithOperation(cause, "pull image")
	if err.Error() != "failed to pull image: boom" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
