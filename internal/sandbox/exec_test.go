// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"slices"
	"strings"
	"testing"
)

func newTestExecSpec(environ []string) *ExecSpec {
	spec := NewExecSpec("test1", testIdentity)
	spec.environ = func() []string { return environ }
	return spec
}

func TestExecSpec_Args_Headless(t *testing.T) {
	t.Parallel()

	spec := newTestExecSpec([]string{"PATH=/usr/bin"})
	spec.Headless = true
	spec.Command = []string{"echo", "hi"}

	args := spec.Args()

	if slices.Contains(args, "--interactive") || slices.Contains(args, "--tty") {
		t.Errorf("headless exec must not allocate a terminal: %v", args)
	}
	if !slices.Equal(args[len(args)-2:], []string{"echo", "hi"}) {
		t.Errorf("command must be the final arguments: %v", args)
	}
	// The container name immediately precedes the command.
	if args[len(args)-3] != "test1" {
		t.Errorf("expected container name before command, got %v", args)
	}
}

func TestExecSpec_Args_Interactive(t *testing.T) {
	t.Parallel()

	spec := newTestExecSpec([]string{"PATH=/usr/bin"})
	args := spec.Args()

	if !slices.Contains(args, "--interactive") || !slices.Contains(args, "--tty") {
		t.Errorf("interactive exec must allocate a terminal: %v", args)
	}
	if got := argValues(args, "--user"); len(got) == 0 || got[0] != "alice" {
		t.Errorf("--user = %v, want alice", got)
	}

	// Default command: the login shell by base name, as a login shell.
	if !slices.Equal(args[len(args)-2:], []string{"bash", "-l"}) {
		t.Errorf("default command = %v, want [bash -l]", args[len(args)-2:])
	}
}

func TestExecSpec_Args_Environment(t *testing.T) {
	t.Parallel()

	spec := newTestExecSpec([]string{
		"PATH=/home/alice/bin",
		"HOME=/home/alice",
		"EDITOR=vim",
		"HOSTNAME=ws",
		"BAD=a b",
	})
	spec.EnterPath = "/usr/local/bin/distrobox"

	args := spec.Args()
	envs := argValues(args, "--env")

	if want := "HOME=/home/alice"; !slices.Contains(envs, want) {
		t.Errorf("HOME must be synthesized explicitly: %v", envs)
	}
	wantPath := "PATH=" + SynthesizePath("/home/alice/bin")
	if !slices.Contains(envs, wantPath) {
		t.Errorf("PATH must be synthesized: %v, want %q", envs, wantPath)
	}
	if want := "DISTROBOX_ENTER_PATH=/usr/local/bin/distrobox"; !slices.Contains(envs, want) {
		t.Errorf("enter path must be forwarded: %v", envs)
	}
	if want := "EDITOR=vim"; !slices.Contains(envs, want) {
		t.Errorf("filtered host variable must be forwarded: %v", envs)
	}
	for _, kv := range envs {
		if strings.HasPrefix(kv, "HOSTNAME=") || strings.HasPrefix(kv, "BAD=") {
			t.Errorf("excluded variable forwarded: %q", kv)
		}
	}
}

func TestExecSpec_Args_WorkDirFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workDir string
		home    string
		want    string
	}{
		{name: "explicit working directory", workDir: "/src/project", home: "/home/alice", want: "/src/project"},
		{name: "falls back to home", workDir: "", home: "/home/alice", want: "/home/alice"},
		{name: "falls back to root", workDir: "", home: "", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id := testIdentity
			id.Home = tt.home
			spec := NewExecSpec("test1", id)
			spec.environ = func() []string { return nil }
			spec.WorkDir = tt.workDir

			got := argValues(spec.Args(), "--workdir")
			if len(got) == 0 || got[0] != tt.want {
				t.Errorf("--workdir = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentity_LoginShellCommand(t *testing.T) {
	t.Parallel()

	id := Identity{Shell: "/usr/bin/fish"}
	if got := id.LoginShellCommand(); !slices.Equal(got, []string{"fish", "-l"}) {
		t.Errorf("LoginShellCommand() = %v", got)
	}
}

func TestIdentity_EffectiveHome(t *testing.T) {
	t.Parallel()

	id := Identity{Home: "/home/alice"}
	if got := id.EffectiveHome(); got != "/home/alice" {
		t.Errorf("EffectiveHome() = %q", got)
	}
	id.CustomHome = "/var/boxes/alice"
	if got := id.EffectiveHome(); got != "/var/boxes/alice" {
		t.Errorf("EffectiveHome() with custom home = %q", got)
	}
}

func TestMount_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mount Mount
		want  string
	}{
		{
			name:  "with options",
			mount: Mount{Source: "/home/a", Dest: "/home/a", Options: []string{"rslave"}},
			want:  "/home/a:/home/a:rslave",
		},
		{
			name:  "without options",
			mount: Mount{Source: "/tmp", Dest: "/tmp"},
			want:  "/tmp:/tmp",
		},
		{
			name:  "multiple options",
			mount: Mount{Source: "/x", Dest: "/y", Options: []string{"ro", "rslave"}},
			want:  "/x:/y:ro,rslave",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.mount.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
