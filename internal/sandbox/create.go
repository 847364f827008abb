// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ahayzen/distrobox/internal/engine"
)

const (
	// initHelperDest is where the initializer is mounted and invoked as
	// the container entrypoint.
	initHelperDest = "/usr/bin/entrypoint"
	// exportHelperDest is where the export helper is made available to
	// in-container tooling.
	exportHelperDest = "/usr/bin/distrobox-export"
	// hostRootDest exposes the whole host filesystem inside the container.
	hostRootDest = "/run/host"
)

// hostConfigFiles are host configuration files bind-mounted read-only so
// the container resolves names and time like the host. Each is resolved
// through symlinks before mounting: a symlinked source would dangle inside
// the container's mount namespace.
var hostConfigFiles = []string{
	"/etc/hosts",
	"/etc/resolv.conf",
	"/etc/localtime",
	"/etc/host.conf",
}

// ErrInvalidSpec is the sentinel error wrapped by InvalidSpecError.
var ErrInvalidSpec = errors.New("invalid container spec")

// InvalidSpecError is returned when a CreateSpec cannot produce a valid
// argument list. Callers map it to the invalid-argument exit status.
type InvalidSpecError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid container spec: %s", e.Reason)
}

// Unwrap returns ErrInvalidSpec so callers can use errors.Is.
func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

// CreateSpec describes the desired sandbox environment. It is built once
// per creation call, rendered to an engine argument list exactly once, and
// discarded after submission.
type CreateSpec struct {
	// Name is the container name. Required.
	Name string
	// Image is the creation source (an image reference, possibly produced
	// by cloning). Required.
	Image string
	// HostHostname is the host's hostname, combined with Name into the
	// container hostname.
	HostHostname string
	// Identity is the invoking host identity forwarded to the initializer.
	Identity Identity
	// Helpers are the host paths of the init and export binaries.
	Helpers HelperPaths
	// Verbose forwards verbosity to the initializer.
	Verbose bool

	// probe gates conditional mounts on host-side existence. Injectable
	// for tests; defaults to an os.Stat check.
	probe func(path string) bool
	// resolve resolves symlinked host configuration files before
	// mounting. Injectable for tests; defaults to filepath.EvalSymlinks.
	resolve func(path string) (string, error)
}

// NewCreateSpec builds a CreateSpec with production host probes and the
// host's own hostname.
func NewCreateSpec(name, image string, id Identity, helpers HelperPaths) *CreateSpec {
	hostname, _ := os.Hostname()
	return &CreateSpec{
		Name:         name,
		Image:        image,
		HostHostname: hostname,
		Identity:     id,
		Helpers:      helpers,
		probe: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		resolve: filepath.EvalSymlinks,
	}
}

// Validate checks that the spec can be rendered.
func (s *CreateSpec) Validate() error {
	if s.Name == "" {
		return &InvalidSpecError{Reason: "container name must not be empty"}
	}
	if s.Image == "" {
		return &InvalidSpecError{Reason: "creation source image must not be empty"}
	}
	if s.Helpers.Init == "" || s.Helpers.Export == "" {
		return &InvalidSpecError{Reason: "helper binary paths must be resolved"}
	}
	return nil
}

// Args renders the complete engine "create" argument list. The container is
// created privileged with host namespaces shared and security labeling
// disabled: device mounts and shared IPC/net/PID otherwise conflict with
// the engine's default isolation. Creation runs as root; the in-container
// initializer performs the privilege drop to the real identity.
func (s *CreateSpec) Args(caps engine.CapabilitySet) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	hostname := s.Name
	if s.HostHostname != "" {
		hostname = s.Name + "." + s.HostHostname
	}

	args := []string{
		"create",
		"--name", s.Name,
		"--hostname", hostname,
		"--privileged",
		"--security-opt", "label=disable",
		"--user", "root:root",
		"--ipc", "host",
		"--network", "host",
		"--pid", "host",
		"--label", "manager=distrobox",
	}

	if caps.Has(engine.CapUserNSKeepID) && s.Identity.UID != 0 {
		args = append(args, "--userns", "keep-id")
	}
	if caps.Has(engine.CapUlimitHost) {
		args = append(args, "--ulimit", "host")
	}
	if caps.Has(engine.CapPidsLimit) {
		args = append(args, "--pids-limit", "-1")
	}
	if caps.Has(engine.CapDevPtsMount) {
		args = append(args, "--mount", "type=devpts,destination=/dev/pts")
	}

	if s.Identity.CustomHome != "" {
		// Back-reference so in-container tooling can find the real host home.
		args = append(args, "--env", "DISTROBOX_HOST_HOME="+s.Identity.Home)
	}

	for _, m := range s.mounts() {
		args = append(args, "--volume", m.String())
	}

	args = append(args, s.Image, initHelperDest)
	if s.Verbose {
		args = append(args, "--verbose")
	}
	args = append(args,
		"--name", s.Identity.User,
		"--uid", strconv.Itoa(s.Identity.UID),
		"--gid", strconv.Itoa(s.Identity.GID),
		"--home", s.Identity.EffectiveHome(),
	)

	return args, nil
}

// mounts assembles the bind mounts in their fixed emission order: home,
// init helper, export helper, host root, /dev, /sys, /tmp, then the
// conditional extras, then the symlink-resolved host configuration files.
// Duplicate destinations are dropped, first mount wins.
func (s *CreateSpec) mounts() []Mount {
	l := newMountList()

	l.add(Mount{Source: s.Identity.Home, Dest: s.Identity.Home, Options: []string{"rslave"}})
	l.add(Mount{Source: s.Helpers.Init, Dest: initHelperDest, Options: []string{"ro"}})
	l.add(Mount{Source: s.Helpers.Export, Dest: exportHelperDest, Options: []string{"ro"}})
	l.add(Mount{Source: "/", Dest: hostRootDest, Options: []string{"rslave"}})
	l.add(Mount{Source: "/dev", Dest: "/dev", Options: []string{"rslave"}})
	l.add(Mount{Source: "/sys", Dest: "/sys", Options: []string{"rslave"}})
	l.add(Mount{Source: "/tmp", Dest: "/tmp"})

	if s.Identity.CustomHome != "" {
		l.add(Mount{Source: s.Identity.CustomHome, Dest: s.Identity.CustomHome, Options: []string{"rslave"}})
	}
	// OSTree-style systems keep the real home under /var/home.
	if ostreeHome := "/var/home/" + s.Identity.User; s.probe(ostreeHome) {
		l.add(Mount{Source: ostreeHome, Dest: ostreeHome, Options: []string{"rslave"}})
	}
	if runtimeDir := "/run/user/" + strconv.Itoa(s.Identity.UID); s.probe(runtimeDir) {
		l.add(Mount{Source: runtimeDir, Dest: runtimeDir, Options: []string{"rslave"}})
	}

	for _, file := range hostConfigFiles {
		if !s.probe(file) {
			continue
		}
		source := file
		if resolved, err := s.resolve(file); err == nil {
			source = resolved
		}
		l.add(Mount{Source: source, Dest: file, Options: []string{"ro"}})
	}

	return l.mounts
}
