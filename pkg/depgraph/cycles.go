package depgraph

import (
	"context"
	"slices"

	"github.com/matzehuels/depscope/pkg/errors"
)

// DefaultMaxPerNode caps how many dependencies of a single package the
// cycle search expands. The cap bounds provider calls per node, not the
// overall traversal depth.
const DefaultMaxPerNode = 10

// Cycle is a dependency chain returning to its origin: the first and last
// elements are equal and every consecutive pair is a forward-dependency
// edge reported by the provider. A self-dependency is the length-2 cycle
// [A, A].
type Cycle []string

// Finder performs depth-first circular-dependency search over the forward
// relation. Each FindCycles call owns its traversal state; a Finder is safe
// for concurrent use as long as its Provider is.
type Finder struct {
	provider   Provider
	maxPerNode int
	exhaustive bool
	onError    func(pkg string, err error)
}

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// WithMaxPerNode overrides the per-node expansion cap (default 10).
func WithMaxPerNode(n int) FinderOption {
	return func(f *Finder) {
		if n > 0 {
			f.maxPerNode = n
		}
	}
}

// WithExhaustive disables visited-set memoization. The memoized search can
// miss cycles that re-enter an already-cleared subtree via a different
// parent; exhaustive mode finds those at the cost of revisiting shared
// subtrees, which can be expensive on dense graphs.
func WithExhaustive() FinderOption {
	return func(f *Finder) { f.exhaustive = true }
}

// WithErrorHandler registers a callback for non-root provider failures
// encountered mid-traversal. Such failures make the failing package a leaf
// rather than aborting the search. The default handler discards them.
func WithErrorHandler(fn func(pkg string, err error)) FinderOption {
	return func(f *Finder) {
		if fn != nil {
			f.onError = fn
		}
	}
}

// NewFinder creates a cycle Finder backed by the given provider.
func NewFinder(p Provider, opts ...FinderOption) *Finder {
	f := &Finder{
		provider:   p,
		maxPerNode: DefaultMaxPerNode,
		onError:    func(string, error) {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// traversal is the per-invocation search state: fully-explored packages and
// the current DFS path from root to the node being expanded.
type traversal struct {
	visited map[string]bool
	path    []string
	cycles  []Cycle
}

// FindCycles searches for circular dependency chains reachable from root,
// returning them in discovery order. Structurally identical cycles reached
// via different entry points are not deduplicated.
//
// A provider failure on root itself fails the call; failures deeper in the
// traversal are routed to the error handler and terminate only that branch.
func (f *Finder) FindCycles(ctx context.Context, root string) ([]Cycle, error) {
	if err := errors.ValidatePackageName(root); err != nil {
		return nil, err
	}

	st := &traversal{visited: make(map[string]bool), cycles: []Cycle{}}
	if err := f.walk(ctx, root, st, true); err != nil {
		return nil, err
	}
	return st.cycles, nil
}

func (f *Finder) walk(ctx context.Context, pkg string, st *traversal, isRoot bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// A package already on the current path closes a cycle. Emit the path
	// suffix from its first occurrence and stop expanding here.
	if idx := slices.Index(st.path, pkg); idx >= 0 {
		cycle := make(Cycle, 0, len(st.path)-idx+1)
		cycle = append(cycle, st.path[idx:]...)
		cycle = append(cycle, pkg)
		st.cycles = append(st.cycles, cycle)
		return nil
	}

	// Memoization: packages fully explored without producing a cycle are
	// not re-expanded. This can miss cycles re-entering a cleared subtree
	// via a different parent; exhaustive mode trades runtime for those.
	if !f.exhaustive && st.visited[pkg] {
		return nil
	}
	st.visited[pkg] = true

	deps, err := f.provider.Depends(ctx, pkg)
	if err != nil {
		if isRoot {
			return err
		}
		f.onError(pkg, err)
		return nil
	}

	if len(deps) > f.maxPerNode {
		deps = deps[:f.maxPerNode]
	}

	st.path = append(st.path, pkg)
	for _, dep := range deps {
		if err := f.walk(ctx, dep, st, false); err != nil {
			return err
		}
	}
	st.path = st.path[:len(st.path)-1]

	return nil
}
