package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/organize"
	"github.com/thoreinstein/tmplorg/internal/platform"
)

var (
	resolveJSON   bool
	resolveSource string
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	resolveCmd.Flags().StringVar(&resolveSource, "source", "",
		"only show rows resolved by: literal, prefix, fallback")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show how each index row resolves, without writing anything",
	Long: `Resolve every index row to a concrete platform and command key and print
the result. Nothing is copied and no registry is written.

The SOURCE column tells how the platform was chosen:
  literal   the index named the platform directly
  prefix    a pattern row, matched by the longest known platform prefix
  fallback  a pattern row with no match; the platform is the first two
            underscore-separated segments of the template name

Examples:
  # Inspect all rows
  tmplorg resolve

  # Find rows whose platform was guessed
  tmplorg resolve --source fallback

  # Machine-readable output
  tmplorg resolve --json`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, _ []string) error {
	return runResolveWithWriter(cmd.Context(), cmd.OutOrStdout())
}

// runResolveWithWriter allows injecting a writer for testing.
func runResolveWithWriter(ctx context.Context, w io.Writer) error {
	filter, err := parseSourceFilter(resolveSource)
	if err != nil {
		return err
	}

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return errors.Classify(err)
	}

	steps, err := organize.Plan(ctx, opts.IndexPath)
	if err != nil {
		return errors.Classify(err)
	}

	if filter != "" {
		kept := steps[:0]
		for _, s := range steps {
			if s.Resolution.Source == filter {
				kept = append(kept, s)
			}
		}
		steps = kept
	}

	if resolveJSON {
		return outputResolveJSON(w, steps)
	}
	return outputResolveTabular(w, steps)
}

func parseSourceFilter(s string) (platform.Source, error) {
	switch src := platform.Source(strings.ToLower(s)); src {
	case "", platform.SourceLiteral, platform.SourcePrefix, platform.SourceFallback:
		return src, nil
	}
	return "", errors.NewUserError(errors.Newf("unknown resolution source %q", s),
		"Use --source literal, prefix or fallback")
}

// outputResolveJSON writes the steps as a JSON array.
func outputResolveJSON(w io.Writer, steps []organize.Step) error {
	if steps == nil {
		steps = []organize.Step{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(steps)
}

// outputResolveTabular writes one row per step.
func outputResolveTabular(w io.Writer, steps []organize.Step) error {
	if len(steps) == 0 {
		fmt.Fprintln(w, color.HiBlackString("(no index rows)"))
		return nil
	}

	bold := color.New(color.Bold)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, bold.Sprint("LINE")+"\t"+bold.Sprint("PLATFORM")+"\t"+bold.Sprint("SOURCE")+"\t"+
		bold.Sprint("KEY")+"\t"+bold.Sprint("TEMPLATE"))

	for _, s := range steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			s.Line, s.Resolution.Platform, sourceLabel(s.Resolution.Source), s.Entry.CommandKey, s.Entry.Template)
	}
	return tw.Flush()
}

func sourceLabel(src platform.Source) string {
	switch src {
	case platform.SourceFallback:
		return color.YellowString(string(src))
	case platform.SourcePrefix:
		return color.CyanString(string(src))
	default:
		return string(src)
	}
}
