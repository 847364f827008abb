// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ahayzen/distrobox/internal/sandbox"
)

var (
	enterName     string
	enterHeadless bool

	enterCmd = &cobra.Command{
		Use:   "enter [-- command...]",
		Short: "Enter a sandbox container",
		Long: `Enter a sandbox container and run a command inside it, defaulting to
your login shell. The container is started first if needed, waiting for
its initialization to complete. The command's exit code becomes this
process's exit code.`,
		Args: cobra.ArbitraryArgs,
		RunE: runEnter,
	}
)

func init() {
	enterCmd.Flags().StringVarP(&enterName, "name", "n", "", "container name (env: DBX_CONTAINER_NAME)")
	enterCmd.Flags().BoolVar(&enterHeadless, "headless", false, "skip interactive and pseudo-terminal allocation")
}

func runEnter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name := enterName
	if name == "" {
		name = cfg.ContainerName
	}

	// Without a terminal on stdin there is nothing to allocate a TTY for.
	headless := enterHeadless || !term.IsTerminal(int(os.Stdin.Fd()))

	eng, err := selectEngine()
	if err != nil {
		return wrapExit(err)
	}

	id, err := sandbox.ResolveIdentity("")
	if err != nil {
		return wrapExit(err)
	}

	spec := sandbox.NewExecSpec(name, id)
	spec.Headless = headless
	spec.Command = args
	if wd, err := os.Getwd(); err == nil {
		spec.WorkDir = wd
	}
	if self, err := os.Executable(); err == nil {
		spec.EnterPath = self
	}

	lc := sandbox.NewLifecycle(eng, logger, cfg.PollInterval, cfg.PollTimeout)
	lc.Output = os.Stderr
	lc.Stdin = os.Stdin
	lc.Stdout = os.Stdout
	lc.Stderr = os.Stderr

	code, err := lc.Enter(ctx, spec)
	if err != nil {
		return wrapExit(err)
	}
	if code != 0 {
		// Pass the container command's exit status through unchanged. The
		// bare ExitError carries no message of our own to print.
		return &ExitError{Code: code}
	}
	return nil
}
