package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/depgraph"
	"github.com/matzehuels/depscope/pkg/export"
)

// newExportCmd creates the export command for writing Graphviz output.
func newExportCmd() *cobra.Command {
	var (
		output     string
		reverse    bool
		cyclesMode bool
	)

	cmd := &cobra.Command{
		Use:   "export <package>",
		Short: "Write a dependency view or cycle graph as DOT or SVG",
		Long: `Write a dependency view or cycle graph as a Graphviz document.

The output format follows the file extension: .svg renders through the
embedded Graphviz engine, anything else is written as DOT source. With
--cycles the exported graph contains the circular chains found from the
package instead of its direct dependencies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)
			pkg := args[0]

			if output == "" {
				output = pkg + ".dot"
			}

			provider := newProvider(cfg)
			prog := newProgress(logger)

			var (
				dot string
				err error
			)
			switch {
			case cyclesMode:
				finder := depgraph.NewFinder(provider,
					depgraph.WithMaxPerNode(cfg.Cycles.MaxPerNode),
					depgraph.WithErrorHandler(func(failed string, lookupErr error) {
						logger.Warn("lookup failed mid-search, treating as leaf", "package", failed, "err", lookupErr)
					}),
				)
				var cycles []depgraph.Cycle
				cycles, err = finder.FindCycles(ctx, pkg)
				if err == nil {
					dot = export.CyclesToDOT(pkg, cycles)
				}
			case reverse:
				var view *depgraph.View
				view, err = depgraph.NewBuilder(provider).ReverseView(ctx, pkg)
				if err == nil {
					dot = export.ViewToDOT(view)
				}
			default:
				var view *depgraph.View
				view, err = depgraph.NewBuilder(provider).DependencyView(ctx, pkg)
				if err == nil {
					dot = export.ViewToDOT(view)
				}
			}
			if err != nil {
				return err
			}

			data := []byte(dot)
			if export.FormatForPath(output) == "svg" {
				if data, err = export.RenderSVG(ctx, dot); err != nil {
					return fmt.Errorf("render SVG: %w", err)
				}
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			prog.done(fmt.Sprintf("Exported %s", pkg))
			printSuccess("Export written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .svg or .dot (default <package>.dot)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "export the reverse dependency view")
	cmd.Flags().BoolVar(&cyclesMode, "cycles", false, "export the circular chains found from the package")
	cmd.MarkFlagsMutuallyExclusive("reverse", "cycles")
	return cmd
}
