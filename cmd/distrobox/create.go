// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahayzen/distrobox/internal/engine"
	"github.com/ahayzen/distrobox/internal/issue"
	"github.com/ahayzen/distrobox/internal/sandbox"
)

var (
	createName  string
	createImage string
	createClone string
	createHome  string
	createYes   bool

	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a new sandbox container",
		Long: `Create a new sandbox container from a base image or by cloning an
existing stopped container. The container shares your home directory,
devices, and the host's IPC, network, and PID namespaces.`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}
)

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "container name (env: DBX_CONTAINER_NAME)")
	createCmd.Flags().StringVarP(&createImage, "image", "i", "", "base image to create from (env: DBX_CONTAINER_IMAGE)")
	createCmd.Flags().StringVarP(&createClone, "clone", "c", "", "stopped container to clone as the creation source")
	createCmd.Flags().StringVarP(&createHome, "home", "H", "", "custom home directory inside the container")
	createCmd.Flags().BoolVarP(&createYes, "yes", "Y", false, "non-interactive: assume yes to prompts (env: DBX_NON_INTERACTIVE)")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	name := createName
	if name == "" {
		name = cfg.ContainerName
	}

	// An explicit image and a clone source are mutually exclusive
	// creation sources.
	if createImage != "" && createClone != "" {
		return &ExitError{
			Code: ExitInvalidArgument,
			Err:  fmt.Errorf("--image and --clone are mutually exclusive creation sources"),
		}
	}

	eng, err := selectEngine()
	if err != nil {
		return wrapExit(err)
	}

	nonInteractive := createYes || cfg.NonInteractive

	imageRef, err := resolveCreationSource(ctx, eng, nonInteractive)
	if err != nil {
		return wrapExit(err)
	}
	if imageRef == "" {
		// The caller declined the image pull: a benign abort.
		fmt.Fprintln(os.Stderr, SubtitleStyle.Render("Aborted."))
		return nil
	}

	id, err := sandbox.ResolveIdentity(createHome)
	if err != nil {
		return wrapExit(err)
	}

	helpers, err := sandbox.LocateHelpers()
	if err != nil {
		return wrapExit(err)
	}

	spec := sandbox.NewCreateSpec(name, imageRef, id, helpers)
	spec.Verbose = verbose

	lc := sandbox.NewLifecycle(eng, logger, cfg.PollInterval, cfg.PollTimeout)
	lc.Output = os.Stderr
	lc.Stdout = os.Stdout
	lc.Stderr = os.Stderr

	if err := lc.Create(ctx, spec); err != nil {
		return wrapExit(err)
	}

	fmt.Fprintln(os.Stdout, SuccessStyle.Render("Container "+name+" created."))
	fmt.Fprintln(os.Stdout, "Enter it with: "+CmdStyle.Render("distrobox enter --name "+name))
	return nil
}

// resolveCreationSource produces the image reference to create from: the
// clone result when cloning, otherwise the requested image, pulled first if
// absent from the local store. An empty reference with a nil error means
// the caller declined the pull.
func resolveCreationSource(ctx context.Context, eng engine.Engine, nonInteractive bool) (string, error) {
	if createClone != "" {
		cloner := &sandbox.Cloner{Engine: eng}
		return cloner.Clone(ctx, createClone)
	}

	image := createImage
	if image == "" {
		image = cfg.Image
	}
	if image == "" {
		return "", issue.NewErrorContext().
			WithOperation("resolve creation source").
			WithSuggestion("Pass --image or --clone, or set a default image in distrobox.toml").
			Wrap(sandbox.ErrInvalidSpec).
			BuildError()
	}

	exists, err := eng.ImageExists(ctx, image)
	if err != nil {
		return "", err
	}
	if !exists {
		if !nonInteractive && !confirmPull(image) {
			return "", nil
		}
		if err := eng.Pull(ctx, image, os.Stdout, os.Stderr); err != nil {
			return "", err
		}
	}
	return image, nil
}

// confirmPull asks the caller whether to pull the missing image. An empty
// answer means yes.
func confirmPull(image string) bool {
	fmt.Fprintf(os.Stderr, "Image %s not found locally. Pull it now? [Y/n] ", CmdStyle.Render(image))
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "" || answer == "y" || answer == "yes"
}

// selectEngine resolves the engine once per invocation, honoring the
// configured preference and forwarding verbosity.
func selectEngine() (engine.Engine, error) {
	return engine.Select(
		engine.Kind(cfg.Engine),
		engine.WithLogger(logger),
		engine.WithVerbose(verbose),
	)
}
