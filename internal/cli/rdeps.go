package cli

import (
	"github.com/spf13/cobra"
)

// newRDepsCmd creates the rdeps command for reverse dependency lookups.
func newRDepsCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "rdeps <package>",
		Short: "Show the packages that depend on a package",
		Long: `Show the packages that declare a dependency on a package.

The listing mirrors apt-cache rdepends: one entry per declaring package,
in provider order, without per-entry dependency counts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewCmd(cmd.Context(), args[0], true, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the result list interactively")
	return cmd
}
