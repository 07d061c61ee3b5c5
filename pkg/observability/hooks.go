// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about query execution and provider
// subprocess calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the core library dependency-free from observability frameworks
// and avoids import cycles: hooks are registered by main, not by libraries.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetQueryHooks(&myQueryHooks{})
//	    observability.SetProviderHooks(&myProviderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Query().OnQueryStart(ctx, queryID, kind, pkg)
//	// ... run query ...
//	observability.Query().OnQueryComplete(ctx, queryID, kind, pkg, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// QueryHooks receives events from top-level graph queries
// (dependency view, reverse view, cycle search).
type QueryHooks interface {
	// OnQueryStart records the start of a query. kind is one of
	// "deps", "rdeps", or "cycles".
	OnQueryStart(ctx context.Context, queryID, kind, pkg string)

	// OnQueryComplete records query completion. rows is the number of
	// result rows (entries or cycles) handed to the presentation layer.
	OnQueryComplete(ctx context.Context, queryID, kind, pkg string, rows int, duration time.Duration, err error)
}

// ProviderHooks receives events from apt-cache subprocess invocations.
type ProviderHooks interface {
	// OnInvoke records an outgoing provider call. subcmd is the
	// apt-cache subcommand ("depends" or "rdepends").
	OnInvoke(ctx context.Context, subcmd, pkg string)

	// OnComplete records a successful provider call with output size.
	OnComplete(ctx context.Context, subcmd, pkg string, outputBytes int, duration time.Duration)

	// OnError records a failed provider call (missing tool, timeout,
	// non-zero exit).
	OnError(ctx context.Context, subcmd, pkg string, err error)
}

// NoopQueryHooks is a no-op implementation of QueryHooks.
type NoopQueryHooks struct{}

func (NoopQueryHooks) OnQueryStart(context.Context, string, string, string) {}
func (NoopQueryHooks) OnQueryComplete(context.Context, string, string, string, int, time.Duration, error) {
}

// NoopProviderHooks is a no-op implementation of ProviderHooks.
type NoopProviderHooks struct{}

func (NoopProviderHooks) OnInvoke(context.Context, string, string)                            {}
func (NoopProviderHooks) OnComplete(context.Context, string, string, int, time.Duration)      {}
func (NoopProviderHooks) OnError(context.Context, string, string, error)                      {}

var (
	queryHooks    QueryHooks    = NoopQueryHooks{}
	providerHooks ProviderHooks = NoopProviderHooks{}
	hooksMu       sync.RWMutex
)

// SetQueryHooks registers custom query hooks.
// This should be called once at application startup before any queries.
func SetQueryHooks(h QueryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		queryHooks = h
	}
}

// SetProviderHooks registers custom provider hooks.
// This should be called once at application startup before any queries.
func SetProviderHooks(h ProviderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		providerHooks = h
	}
}

// Query returns the registered query hooks.
func Query() QueryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return queryHooks
}

// Provider returns the registered provider hooks.
func Provider() ProviderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return providerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	queryHooks = NoopQueryHooks{}
	providerHooks = NoopProviderHooks{}
}
