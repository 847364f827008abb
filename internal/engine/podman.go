// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// socketProbeTimeout bounds the control-socket reachability check so a
// wedged podman service cannot stall engine selection.
const socketProbeTimeout = 250 * time.Millisecond

// PodmanEngine drives the Podman CLI. When the local control socket is
// reachable, every invocation goes through it (--remote --url) to avoid
// the per-call fork/setup cost of the local backend.
type PodmanEngine struct {
	*CLIEngine
}

// NewPodmanEngine creates a new Podman engine, probing the control-socket
// transport as part of construction.
func NewPodmanEngine(opts ...Option) *PodmanEngine {
	path, _ := exec.LookPath("podman")

	caps := NewCapabilitySet(
		CapUserNSKeepID,
		CapUlimitHost,
		CapPidsLimit,
		CapDevPtsMount,
		CapImageExists,
	)

	e := &PodmanEngine{
		CLIEngine: NewCLIEngine(KindPodman, path, caps, opts...),
	}

	if sock := controlSocketPath(); sock != "" && controlSocketReachable(sock) {
		e.remote = true
		e.globalArgs = append([]string{"--remote", "--url", "unix://" + sock}, e.globalArgs...)
	}

	return e
}

// Available checks if Podman is installed and responsive.
func (e *PodmanEngine) Available() bool {
	if e.BinaryPath() == "" {
		return false
	}
	cmd := e.Command(context.Background(), "version", "--format", "{{.Version}}")
	return cmd.Run() == nil
}

// controlSocketPath returns the per-user podman control socket path, or the
// system socket when running as root. Empty when neither can be determined.
func controlSocketPath() string {
	if os.Getuid() == 0 {
		return "/run/podman/podman.sock"
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = "/run/user/" + strconv.Itoa(os.Getuid())
	}
	return filepath.Join(runtimeDir, "podman", "podman.sock")
}

// controlSocketReachable reports whether the socket file exists and the
// controlling service accepts connections on it.
func controlSocketReachable(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	conn, err := net.DialTimeout("unix", path, socketProbeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
