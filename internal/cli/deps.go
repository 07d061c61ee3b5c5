package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/depgraph"
	"github.com/matzehuels/depscope/pkg/observability"
)

// newDepsCmd creates the deps command for forward dependency lookups.
func newDepsCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "deps <package>",
		Short: "Show the direct dependencies of a package",
		Long: `Show the direct dependencies of a package.

Each dependency is listed with its own dependency count, giving a one-level
lookahead into the graph. Virtual packages are shown under their plain name.

The query runs live against apt-cache; nothing is cached between runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewCmd(cmd.Context(), args[0], false, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the result list interactively")
	return cmd
}

// runViewCmd executes a dependency or reverse-dependency query and renders
// the result, either as a static listing or in the interactive browser.
func runViewCmd(ctx context.Context, pkg string, reverse, interactive bool) error {
	logger := loggerFromContext(ctx)
	builder := depgraph.NewBuilder(newProvider(configFromContext(ctx)))

	kind := "deps"
	verb := "Resolving dependencies"
	if reverse {
		kind = "rdeps"
		verb = "Resolving reverse dependencies"
	}

	queryID := uuid.NewString()
	logger.Debug("starting query", "id", queryID, "kind", kind, "package", pkg)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("%s for %s...", verb, pkg))
	spinner.Start()

	start := time.Now()
	observability.Query().OnQueryStart(ctx, queryID, kind, pkg)

	var (
		view *depgraph.View
		err  error
	)
	if reverse {
		view, err = builder.ReverseView(ctx, pkg)
	} else {
		view, err = builder.DependencyView(ctx, pkg)
	}

	rows := 0
	if view != nil {
		rows = view.Count()
	}
	observability.Query().OnQueryComplete(ctx, queryID, kind, pkg, rows, time.Since(start), err)

	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Query for %s failed", pkg))
		return err
	}
	spinner.Stop()

	if interactive {
		return runEntryBrowser(view)
	}
	fmt.Print(renderView(view))
	return nil
}

// renderView formats a view as a styled listing. Forward views annotate each
// entry with its own dependency count; reverse views list plain names.
func renderView(v *depgraph.View) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(v.Root))
	b.WriteString("\n")

	switch {
	case v.Reverse && v.Count() == 0:
		b.WriteString(StyleDim.Render("no packages depend on this package"))
		b.WriteString("\n")
		return b.String()
	case !v.Reverse && v.Count() == 0:
		b.WriteString(StyleDim.Render("no direct dependencies"))
		b.WriteString("\n")
		return b.String()
	case v.Reverse:
		b.WriteString(StyleDim.Render(fmt.Sprintf("%s depending on it", countNoun(v.Count(), "package", "packages"))))
	default:
		b.WriteString(StyleDim.Render(countNoun(v.Count(), "direct dependency", "direct dependencies")))
	}
	b.WriteString("\n\n")

	for _, e := range v.Entries {
		b.WriteString("  ")
		b.WriteString(StyleDim.Render(iconArrow))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(e.Name))
		if !v.Reverse {
			b.WriteString("  ")
			b.WriteString(StyleDim.Render(entryCountLabel(e)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// entryCountLabel describes an entry's own dependency count, keeping a
// failed lookup distinguishable from a genuine zero.
func entryCountLabel(e depgraph.Entry) string {
	if e.Lookup != nil {
		return "(dependencies unknown)"
	}
	return "(" + countNoun(e.DepCount, "dependency", "dependencies") + ")"
}

// countNoun formats n with a singular or plural noun.
func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
