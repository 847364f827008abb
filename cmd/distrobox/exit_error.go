// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/ahayzen/distrobox/internal/engine"
	"github.com/ahayzen/distrobox/internal/issue"
	"github.com/ahayzen/distrobox/internal/sandbox"
)

// Exit statuses of the caller-facing surface.
const (
	// ExitSuccess covers success and benign aborts (a declined pull).
	ExitSuccess = 0
	// ExitFailure is the general failure status: not found, clone source
	// running, startup error markers, engine operation failures.
	ExitFailure = 1
	// ExitInvalidArgument flags conflicting or invalid argument combinations.
	ExitInvalidArgument = 2
	// ExitMissingDependency flags a missing engine or helper binary.
	ExitMissingDependency = 127
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an error to the caller-facing exit status.
func exitCodeFor(err error) int {
	var notAvailable *engine.ErrEngineNotAvailable
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &notAvailable),
		errors.Is(err, sandbox.ErrHelperNotFound):
		return ExitMissingDependency
	case errors.Is(err, sandbox.ErrInvalidSpec):
		return ExitInvalidArgument
	default:
		return ExitFailure
	}
}

// wrapExit attaches the mapped exit code to an error. ActionableError
// suggestions are folded into the message so the single error print path
// carries the remediation hints.
func wrapExit(err error) error {
	if err == nil {
		return nil
	}
	code := exitCodeFor(err)
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.HasSuggestions() {
		return &ExitError{Code: code, Err: errors.New(ae.Format(verbose))}
	}
	return &ExitError{Code: code, Err: err}
}
