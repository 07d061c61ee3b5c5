// Package cli implements the depscope command-line interface.
//
// This package provides commands for exploring the dependency graph of
// installed .deb packages: forward dependencies, reverse dependencies,
// circular-dependency detection, Graphviz export, and a local HTTP API.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
//   - deps: Show the direct dependencies of a package
//   - rdeps: Show the packages that depend on a package
//   - cycles: Search for circular dependency chains
//   - export: Write a dependency view or cycle graph as DOT or SVG
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. Safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created,
// rounded to the nearest millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logQueryHooks reports query lifecycle events through the CLI logger at
// debug level, keyed by query ID so interleaved queries stay attributable.
type logQueryHooks struct {
	logger *log.Logger
}

func (h logQueryHooks) OnQueryStart(_ context.Context, queryID, kind, pkg string) {
	h.logger.Debug("query start", "id", queryID, "kind", kind, "package", pkg)
}

func (h logQueryHooks) OnQueryComplete(_ context.Context, queryID, kind, pkg string, rows int, elapsed time.Duration, err error) {
	if err != nil {
		h.logger.Debug("query failed", "id", queryID, "kind", kind, "package", pkg, "err", err)
		return
	}
	h.logger.Debug("query done", "id", queryID, "kind", kind, "package", pkg, "rows", rows, "elapsed", elapsed.Round(time.Millisecond))
}

// logProviderHooks reports apt-cache invocations at debug level.
type logProviderHooks struct {
	logger *log.Logger
}

func (h logProviderHooks) OnInvoke(_ context.Context, subcmd, pkg string) {
	h.logger.Debug("apt-cache invoke", "subcmd", subcmd, "package", pkg)
}

func (h logProviderHooks) OnComplete(_ context.Context, subcmd, pkg string, bytes int, elapsed time.Duration) {
	h.logger.Debug("apt-cache done", "subcmd", subcmd, "package", pkg, "bytes", bytes, "elapsed", elapsed.Round(time.Millisecond))
}

func (h logProviderHooks) OnError(_ context.Context, subcmd, pkg string, err error) {
	h.logger.Debug("apt-cache error", "subcmd", subcmd, "package", pkg, "err", err)
}

// installLogHooks routes observability events into the CLI logger.
func installLogHooks(l *log.Logger) {
	observability.SetQueryHooks(logQueryHooks{logger: l})
	observability.SetProviderHooks(logProviderHooks{logger: l})
}
