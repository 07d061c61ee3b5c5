package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/depgraph"
	"github.com/matzehuels/depscope/pkg/observability"
)

// newCyclesCmd creates the cycles command for circular-dependency search.
func newCyclesCmd() *cobra.Command {
	var (
		exhaustive bool
		maxPerNode int
	)

	cmd := &cobra.Command{
		Use:   "cycles <package>",
		Short: "Search for circular dependency chains",
		Long: `Search for circular dependency chains reachable from a package.

The search walks the forward dependency graph depth-first, expanding at most
--max-per-node dependencies per package. By default, packages already fully
explored are not re-expanded; that keeps large graphs fast but can miss a
cycle entered through a different path. Use --exhaustive to re-expand them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)
			pkg := args[0]

			if !cmd.Flags().Changed("exhaustive") {
				exhaustive = cfg.Cycles.Exhaustive
			}
			if !cmd.Flags().Changed("max-per-node") {
				maxPerNode = cfg.Cycles.MaxPerNode
			}

			opts := []depgraph.FinderOption{
				depgraph.WithMaxPerNode(maxPerNode),
				depgraph.WithErrorHandler(func(failed string, err error) {
					logger.Warn("lookup failed mid-search, treating as leaf", "package", failed, "err", err)
				}),
			}
			if exhaustive {
				opts = append(opts, depgraph.WithExhaustive())
			}
			finder := depgraph.NewFinder(newProvider(cfg), opts...)

			queryID := uuid.NewString()
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching for cycles from %s...", pkg))
			spinner.Start()

			start := time.Now()
			observability.Query().OnQueryStart(ctx, queryID, "cycles", pkg)

			cycles, err := finder.FindCycles(ctx, pkg)
			observability.Query().OnQueryComplete(ctx, queryID, "cycles", pkg, len(cycles), time.Since(start), err)

			if err != nil {
				spinner.StopWithError(fmt.Sprintf("Cycle search from %s failed", pkg))
				return err
			}
			spinner.Stop()

			fmt.Print(renderCycles(pkg, cycles))
			return nil
		},
	}

	cmd.Flags().BoolVar(&exhaustive, "exhaustive", false, "re-expand already explored packages")
	cmd.Flags().IntVar(&maxPerNode, "max-per-node", depgraph.DefaultMaxPerNode, "dependencies explored per package")
	return cmd
}

// renderCycles formats the cycle search result. Each cycle is one chain
// line; an empty result is reported explicitly.
func renderCycles(root string, cycles []depgraph.Cycle) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(root))
	b.WriteString("\n")

	if len(cycles) == 0 {
		b.WriteString(StyleDim.Render("no circular dependencies found"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(StyleDim.Render(countNoun(len(cycles), "circular dependency chain", "circular dependency chains")))
	b.WriteString("\n\n")

	for _, cycle := range cycles {
		b.WriteString("  ")
		b.WriteString(styleCycle.Render(strings.Join(cycle, " "+iconArrow+" ")))
		b.WriteString("\n")
	}
	return b.String()
}
