// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"fmt"
	"os"
	"os/user"
	"path"
)

// Identity describes the invoking host user as forwarded into the
// container. It is resolved once at process start and read-only afterward.
type Identity struct {
	// User is the login name.
	User string
	// UID and GID are the host numeric identity.
	UID int
	GID int
	// Home is the host home directory.
	Home string
	// CustomHome, when non-empty, overrides Home as the in-container HOME.
	// It triggers an extra bind mount and a host-home back-reference
	// variable in the creation spec.
	CustomHome string
	// Shell is the login shell, used as the default command when entering.
	Shell string
}

// ResolveIdentity derives the Identity from the invoking host user.
func ResolveIdentity(customHome string) (Identity, error) {
	u, err := user.Current()
	if err != nil {
		return Identity{}, fmt.Errorf("resolve current user: %w", err)
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	return Identity{
		User:       u.Username,
		UID:        os.Getuid(),
		GID:        os.Getgid(),
		Home:       u.HomeDir,
		CustomHome: customHome,
		Shell:      shell,
	}, nil
}

// EffectiveHome returns the in-container HOME: the custom home when set,
// the host home otherwise.
func (id Identity) EffectiveHome() string {
	if id.CustomHome != "" {
		return id.CustomHome
	}
	return id.Home
}

// LoginShellCommand returns the default enter command: the login shell
// invoked by base name with -l, so shells living at a different path inside
// the container still resolve through PATH.
func (id Identity) LoginShellCommand() []string {
	return []string{path.Base(id.Shell), "-l"}
}
