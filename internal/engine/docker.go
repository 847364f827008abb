// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"os/exec"
)

// DockerEngine drives the Docker CLI. Docker has no control-socket
// transport flag and a smaller set of creation capabilities than Podman.
type DockerEngine struct {
	*CLIEngine
}

// NewDockerEngine creates a new Docker engine.
func NewDockerEngine(opts ...Option) *DockerEngine {
	path, _ := exec.LookPath("docker")

	// No keep-id user namespace, no devpts mount, no image-exists
	// subcommand; resource limits pass through by default.
	caps := NewCapabilitySet()

	return &DockerEngine{
		CLIEngine: NewCLIEngine(KindDocker, path, caps, opts...),
	}
}

// Available checks if Docker is installed and its daemon is responsive.
func (e *DockerEngine) Available() bool {
	if e.BinaryPath() == "" {
		return false
	}
	cmd := e.Command(context.Background(), "version", "--format", "{{.Server.Version}}")
	return cmd.Run() == nil
}
