// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"os"
	"strings"
)

// ExecSpec describes a command execution inside a running sandbox. Like
// CreateSpec it is rendered to an engine argument list exactly once.
type ExecSpec struct {
	// ContainerName is the target container. Required.
	ContainerName string
	// Identity is the invoking host identity; the exec runs as its user.
	Identity Identity
	// Policy filters the host environment forwarded into the container.
	Policy EnvFilterPolicy
	// Headless skips interactive and pseudo-terminal allocation.
	Headless bool
	// WorkDir is the caller's current directory. Empty falls back to the
	// effective home, then to the filesystem root.
	WorkDir string
	// Command is the command to run. Empty defaults to the caller's login
	// shell invoked by base name.
	Command []string
	// EnterPath is the resolved path of the entering executable, forwarded
	// so in-container export tooling can locate it.
	EnterPath string

	// environ supplies the host environment. Injectable for tests;
	// defaults to os.Environ.
	environ func() []string
}

// NewExecSpec builds an ExecSpec with the default environment source and
// filter policy.
func NewExecSpec(name string, id Identity) *ExecSpec {
	return &ExecSpec{
		ContainerName: name,
		Identity:      id,
		Policy:        DefaultEnvFilterPolicy(),
		environ:       os.Environ,
	}
}

// Args renders the complete engine "exec" argument list. HOME and PATH are
// always synthesized explicitly rather than forwarded from the host.
func (s *ExecSpec) Args() []string {
	args := []string{"exec", "--user", s.Identity.User}

	if !s.Headless {
		args = append(args, "--interactive", "--tty")
	}

	workdir := s.WorkDir
	if workdir == "" {
		workdir = s.Identity.EffectiveHome()
	}
	if workdir == "" {
		workdir = "/"
	}
	args = append(args, "--workdir", workdir)

	environ := s.environ()
	args = append(args, "--env", "HOME="+s.Identity.EffectiveHome())
	args = append(args, "--env", "PATH="+SynthesizePath(hostPathValue(environ)))
	if s.EnterPath != "" {
		args = append(args, "--env", "DISTROBOX_ENTER_PATH="+s.EnterPath)
	}

	for _, kv := range s.Policy.Filter(environ) {
		args = append(args, "--env", kv)
	}

	args = append(args, s.ContainerName)

	command := s.Command
	if len(command) == 0 {
		command = s.Identity.LoginShellCommand()
	}
	args = append(args, command...)

	return args
}

// hostPathValue extracts PATH from an os.Environ-style list.
func hostPathValue(environ []string) string {
	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, "PATH="); ok {
			return v
		}
	}
	return ""
}
