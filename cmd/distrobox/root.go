// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ahayzen/distrobox/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging and forwards verbosity to the engine
	// and the in-container initializer.
	verbose bool

	// cfg holds the loaded defaults; flags override it.
	cfg *config.Config
	// logger is the process-wide structured logger.
	logger = log.New(os.Stderr)

	// rootCmd is the base command when called without subcommands.
	rootCmd = &cobra.Command{
		Use:   "distrobox",
		Short: "Use any Linux distribution inside your terminal",
		Long: TitleStyle.Render("distrobox") + SubtitleStyle.Render(" - use any Linux distribution inside your terminal") + `

distrobox creates containers that are tightly integrated with the host:
they share your home directory, devices, and the host's IPC, network, and
PID namespaces, so commands inside them behave like native host shells.

` + SubtitleStyle.Render("Examples:") + `
  distrobox create --name dev --image alpine     Create a sandbox from an image
  distrobox create --name dev2 --clone dev       Clone a stopped sandbox
  distrobox enter --name dev                     Enter with your login shell
  distrobox enter --name dev -- make test        Run a single command`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(enterCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// renderError prints command errors, except for bare exit-status
// passthroughs: a container command's non-zero status is not a failure of
// ours and gets no message.
func renderError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the root command and maps ExitError to the process status.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(renderError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// initRootConfig loads the defaults file and configures logging.
func initRootConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		cfg = &config.Config{
			ContainerName: config.DefaultContainerName,
			Image:         config.DefaultImage,
		}
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}
