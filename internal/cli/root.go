package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/aptcache"
	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/depgraph"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the depscope CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (deps, rdeps,
// cycles, export, serve), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger and the loaded configuration are attached to the context and
// accessible to all commands via loggerFromContext and configFromContext.
// ctx carries process-level cancellation; interrupting the process cancels
// any in-flight query.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "depscope",
		Short:        "Depscope explores the dependency graph of installed .deb packages",
		Long:         `Depscope is a CLI tool for exploring the dependency graph of installed Debian packages: direct dependencies, reverse dependencies, and circular dependency chains, queried live through apt-cache.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			installLogHooks(logger)

			path := configPath
			if path == "" {
				if p, err := config.DefaultPath(); err == nil {
					path = p
				}
			}
			cfg := config.Default()
			if path != "" {
				var err error
				cfg, err = config.Load(path)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)

			maybeShowWelcome(logger)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("depscope %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/depscope/config.toml)")

	root.AddCommand(newDepsCmd())
	root.AddCommand(newRDepsCmd())
	root.AddCommand(newCyclesCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}

// withConfig returns a new context with the loaded configuration attached.
func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the configuration from ctx, falling back to
// defaults when none is attached.
func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// newProvider builds the apt-cache client from the loaded configuration.
func newProvider(cfg config.Config) depgraph.Provider {
	return aptcache.NewClient(
		aptcache.WithBinary(cfg.Provider.Binary),
		aptcache.WithTimeout(cfg.Provider.Timeout()),
	)
}
