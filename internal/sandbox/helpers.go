// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	// initHelperName is the in-container initializer invoked as the
	// container entrypoint. It provisions the real user and emits the
	// readiness sentinel to its log stream.
	initHelperName = "distrobox-init"
	// exportHelperName exposes container binaries and apps to the host.
	exportHelperName = "distrobox-export"
)

// ErrHelperNotFound is the sentinel error wrapped by HelperNotFoundError.
// Callers map it to the dependency-missing exit status.
var ErrHelperNotFound = errors.New("helper binary not found")

// HelperNotFoundError is returned when a required helper binary cannot be
// located on the host.
type HelperNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *HelperNotFoundError) Error() string {
	return fmt.Sprintf("required helper binary %q not found on the host", e.Name)
}

// Unwrap returns ErrHelperNotFound so callers can use errors.Is.
func (e *HelperNotFoundError) Unwrap() error { return ErrHelperNotFound }

// HelperPaths holds the host locations of the helper binaries that get
// bind-mounted into every sandbox.
type HelperPaths struct {
	Init   string
	Export string
}

// LocateHelpers finds the init and export helpers on the host: next to the
// running executable first, then in the packaged libexec directories, then
// on PATH. Each candidate must be executable.
func LocateHelpers() (HelperPaths, error) {
	initPath, err := locateHelper(initHelperName)
	if err != nil {
		return HelperPaths{}, err
	}
	exportPath, err := locateHelper(exportHelperName)
	if err != nil {
		return HelperPaths{}, err
	}
	return HelperPaths{Init: initPath, Export: exportPath}, nil
}

func locateHelper(name string) (string, error) {
	var dirs []string
	if self, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(self))
	}
	dirs = append(dirs, "/usr/libexec/distrobox", "/usr/lib/distrobox")

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if executableFile(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil && executableFile(path) {
		return path, nil
	}

	return "", &HelperNotFoundError{Name: name}
}
