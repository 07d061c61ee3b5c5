package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/internal/server"
)

// newServeCmd creates the serve command running the local HTTP API.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Long: `Run the local HTTP API.

The API exposes the same queries as the CLI under /api/v1/packages/{name}:
/dependencies, /dependents, and /cycles, plus a /health endpoint. It binds
to loopback by default and is meant for local tooling, not public exposure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = cfg.Server.ListenAddr
			}

			srv := server.New(newProvider(cfg), server.Options{
				MaxPerNode: cfg.Cycles.MaxPerNode,
				Exhaustive: cfg.Cycles.Exhaustive,
				Logger:     logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8347)")
	return cmd
}
