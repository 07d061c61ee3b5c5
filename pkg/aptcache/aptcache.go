// Package aptcache wraps the apt-cache tool as a package metadata provider.
//
// The package shells out to apt-cache for two queries:
//   - depends: direct dependencies of a package
//   - rdepends: packages that declare a dependency on a package
//
// Each invocation is bounded by a hard timeout (default 10s). Failures are
// never collapsed into empty results: a missing binary, a timeout, and a
// non-zero exit each surface as a distinct coded error, so callers can tell
// "no dependencies" apart from "lookup failed".
package aptcache

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"time"

	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/observability"
)

// DefaultTimeout bounds a single apt-cache invocation.
const DefaultTimeout = 10 * time.Second

// DefaultBinary is the provider executable looked up on PATH.
const DefaultBinary = "apt-cache"

// Runner executes the provider tool and returns its standard output.
// The production implementation shells out; tests substitute canned output.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run executes bin with args under ctx and returns stdout.
// Stderr is discarded; apt-cache prints its diagnostics there.
func (ExecRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Client queries apt-cache for dependency metadata.
//
// The zero value is not usable; use NewClient. Client is safe for concurrent
// use: each query spawns its own subprocess and shares no mutable state.
type Client struct {
	bin     string
	timeout time.Duration
	runner  Runner
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the provider executable (default "apt-cache").
func WithBinary(bin string) Option {
	return func(c *Client) {
		if bin != "" {
			c.bin = bin
		}
	}
}

// WithTimeout overrides the per-invocation timeout (default 10s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRunner substitutes the subprocess runner. Intended for tests.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		if r != nil {
			c.runner = r
		}
	}
}

// NewClient creates a provider client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		bin:     DefaultBinary,
		timeout: DefaultTimeout,
		runner:  ExecRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Depends returns the direct dependencies of pkg in provider output order.
// Duplicates from the raw metadata are preserved. The returned slice is
// non-nil on success, even when the package has no dependencies.
func (c *Client) Depends(ctx context.Context, pkg string) ([]string, error) {
	out, err := c.invoke(ctx, "depends", pkg)
	if err != nil {
		return nil, err
	}
	return parseDepends(out), nil
}

// RDepends returns the packages that declare a dependency on pkg, one entry
// per declaring package as reported by apt-cache, not deduplicated.
func (c *Client) RDepends(ctx context.Context, pkg string) ([]string, error) {
	out, err := c.invoke(ctx, "rdepends", pkg)
	if err != nil {
		return nil, err
	}
	return parseRDepends(out), nil
}

// invoke runs a single apt-cache query under the client timeout and maps
// execution failures onto coded errors.
func (c *Client) invoke(ctx context.Context, subcmd, pkg string) ([]byte, error) {
	if err := errors.ValidatePackageName(pkg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	observability.Provider().OnInvoke(ctx, subcmd, pkg)

	out, err := c.runner.Run(ctx, c.bin, subcmd, pkg)
	if err != nil {
		coded := c.classify(ctx, subcmd, pkg, err)
		observability.Provider().OnError(ctx, subcmd, pkg, coded)
		return nil, coded
	}

	observability.Provider().OnComplete(ctx, subcmd, pkg, len(out), time.Since(start))
	return out, nil
}

// classify maps a subprocess failure onto the error taxonomy. Timeout is
// checked before exit status: a killed process also reports a non-zero exit.
func (c *Client) classify(ctx context.Context, subcmd, pkg string, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s %s %s exceeded %s", c.bin, subcmd, pkg, c.timeout)
	}
	if stderrors.Is(err, exec.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeToolNotFound, err, "%s not found on PATH", c.bin)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.Wrap(errors.ErrCodeProviderUnavailable, err, "%s %s %s exited with status %d", c.bin, subcmd, pkg, exitErr.ExitCode())
	}
	return errors.Wrap(errors.ErrCodeProviderUnavailable, err, "%s %s %s failed", c.bin, subcmd, pkg)
}
