package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/logging"
	"github.com/thoreinstein/tmplorg/internal/organize"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the template tree and registry from the index",
	Long: `Rebuild the per-platform template tree and write the registry.

The templates directory is deleted and recreated on every run; nothing from
a previous build survives. Template files named by the index but missing from
the staging directory are skipped, and a file shared by several index rows is
copied once per platform.

Examples:
  # Build with the default project layout
  tmplorg build

  # Build from another checkout
  tmplorg build --root ~/src/netcli

  # Show every skipped copy
  tmplorg build -vv`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, _ []string) error {
	return runBuildWithWriter(cmd.Context(), cmd.OutOrStdout())
}

// runBuildWithWriter allows injecting a writer for testing.
func runBuildWithWriter(ctx context.Context, w io.Writer) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return errors.Classify(err)
	}

	logging.FromContext(ctx).Info("building template layout",
		"index", opts.IndexPath, "templates", opts.TemplatesDir)

	sum, err := organize.Run(ctx, opts)
	if err != nil {
		return errors.Classify(err)
	}

	if !quiet {
		printSummary(w, sum)
	}
	return nil
}

// printSummary writes the result of a build.
func printSummary(w io.Writer, sum *organize.Summary) {
	done := color.New(color.FgGreen, color.Bold)
	count := color.New(color.Bold)
	path := color.New(color.FgCyan)

	fmt.Fprintf(w, "%s %s registry entries across %s platforms\n",
		done.Sprint("Done:"), count.Sprint(sum.Entries), count.Sprint(len(sum.Platforms)))
	fmt.Fprintf(w, "Copied %s template files\n", count.Sprint(sum.Copied))
	fmt.Fprintf(w, "Registry written to %s\n", path.Sprint(sum.RegistryPath))
}
