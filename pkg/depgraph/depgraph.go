// Package depgraph builds queryable views of a package dependency graph.
//
// The package sits between a metadata provider (apt-cache, wrapped by
// pkg/aptcache) and a presentation layer. It offers three operations:
//
//   - Builder.DependencyView: direct dependencies of a root package, each
//     annotated with its own dependency count (one-level lookahead)
//   - Builder.ReverseView: packages depending on the root, no lookahead
//   - Finder.FindCycles: depth-first circular-dependency search
//
// All state is per-invocation. Nothing is cached across queries; every
// operation re-fetches from the provider.
package depgraph

import (
	"context"

	"github.com/matzehuels/depscope/pkg/errors"
)

// Provider supplies dependency relations for named packages.
// *aptcache.Client satisfies this; tests substitute stubs.
type Provider interface {
	// Depends returns the direct dependencies of pkg in provider order.
	Depends(ctx context.Context, pkg string) ([]string, error)

	// RDepends returns the packages declaring a dependency on pkg.
	RDepends(ctx context.Context, pkg string) ([]string, error)
}

// Entry is one row of a View: a package related to the root.
type Entry struct {
	// Name is the related package, verbatim from the provider
	// (virtual-package markers already stripped).
	Name string

	// DepCount is the package's own direct-dependency count, filled by the
	// one-level lookahead in DependencyView. Always 0 for reverse views.
	DepCount int

	// Lookup is the error from the lookahead call, if it failed. A zero
	// DepCount with nil Lookup means the package genuinely has no
	// dependencies; with non-nil Lookup the count is unknown.
	Lookup error
}

// View is the flat, ordered result of a dependency or reverse query.
// Entry order matches provider output order; duplicates from the raw
// metadata are preserved.
type View struct {
	Root    string  // queried package
	Reverse bool    // true for reverse-dependency views
	Entries []Entry // one row per related package
}

// Count returns the number of entries in the view.
func (v *View) Count() int { return len(v.Entries) }

// Builder assembles dependency views by querying a Provider.
// A Builder holds no per-query state and is safe for concurrent use as long
// as its Provider is.
type Builder struct {
	provider Provider
}

// NewBuilder creates a Builder backed by the given provider.
func NewBuilder(p Provider) *Builder {
	return &Builder{provider: p}
}

// DependencyView fetches the direct dependencies of root and annotates each
// with its own dependency count via one sequential provider call per child.
// A failed lookahead is recorded on the entry rather than failing the view;
// a failed root fetch fails the whole call.
func (b *Builder) DependencyView(ctx context.Context, root string) (*View, error) {
	if err := errors.ValidatePackageName(root); err != nil {
		return nil, err
	}

	deps, err := b.provider.Depends(ctx, root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(deps))
	for _, dep := range deps {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		entry := Entry{Name: dep}
		subdeps, err := b.provider.Depends(ctx, dep)
		if err != nil {
			entry.Lookup = err
		} else {
			entry.DepCount = len(subdeps)
		}
		entries = append(entries, entry)
	}

	return &View{Root: root, Entries: entries}, nil
}

// ReverseView fetches the packages that depend on root. Reverse entries are
// listed without lookahead counts; apt-cache rdepends reports declaring
// packages only, and a per-row depends call would answer a different
// question than the one the row poses.
func (b *Builder) ReverseView(ctx context.Context, root string) (*View, error) {
	if err := errors.ValidatePackageName(root); err != nil {
		return nil, err
	}

	rdeps, err := b.provider.RDepends(ctx, root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rdeps))
	for _, r := range rdeps {
		entries = append(entries, Entry{Name: r})
	}

	return &View{Root: root, Reverse: true, Entries: entries}, nil
}
