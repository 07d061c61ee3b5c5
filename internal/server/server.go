// Package server exposes the graph queries over a local HTTP API.
//
// The API is a thin presentation shell: each request builds its view or
// cycle list through the same core operations the CLI uses and renders the
// result as JSON. The server holds no cross-request state.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/depscope/pkg/depgraph"
	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/observability"
)

// Server serves the depscope HTTP API.
type Server struct {
	provider   depgraph.Provider
	builder    *depgraph.Builder
	maxPerNode int
	exhaustive bool
	logger     *log.Logger
}

// Options configures a Server.
type Options struct {
	// MaxPerNode caps per-package expansion in cycle queries (default 10).
	MaxPerNode int

	// Exhaustive disables cycle-search memoization unless the request
	// overrides it via the exhaustive query parameter.
	Exhaustive bool

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// New creates a Server querying the given provider.
func New(provider depgraph.Provider, opts Options) *Server {
	if opts.MaxPerNode <= 0 {
		opts.MaxPerNode = depgraph.DefaultMaxPerNode
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		provider:   provider,
		builder:    depgraph.NewBuilder(provider),
		maxPerNode: opts.MaxPerNode,
		exhaustive: opts.Exhaustive,
		logger:     opts.Logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Route("/api/v1/packages/{name}", func(r chi.Router) {
		r.Get("/dependencies", s.handleDependencies)
		r.Get("/dependents", s.handleDependents)
		r.Get("/cycles", s.handleCycles)
	})
	return r
}

// ListenAndServe runs the API until ctx is cancelled, then shuts down
// gracefully with a short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// entryJSON is one view row on the wire. LookupError keeps a failed count
// lookup distinguishable from a genuine zero.
type entryJSON struct {
	Name            string `json:"name"`
	DependencyCount int    `json:"dependency_count"`
	LookupError     string `json:"lookup_error,omitempty"`
}

type viewResponse struct {
	QueryID string      `json:"query_id"`
	Package string      `json:"package"`
	Reverse bool        `json:"reverse"`
	Count   int         `json:"count"`
	Entries []entryJSON `json:"entries"`
}

type cyclesResponse struct {
	QueryID string           `json:"query_id"`
	Package string           `json:"package"`
	Count   int              `json:"count"`
	Cycles  []depgraph.Cycle `json:"cycles"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	s.handleView(w, r, false)
}

func (s *Server) handleDependents(w http.ResponseWriter, r *http.Request) {
	s.handleView(w, r, true)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, reverse bool) {
	name := chi.URLParam(r, "name")
	queryID := uuid.NewString()
	kind := "deps"
	if reverse {
		kind = "rdeps"
	}

	start := time.Now()
	observability.Query().OnQueryStart(r.Context(), queryID, kind, name)

	var (
		view *depgraph.View
		err  error
	)
	if reverse {
		view, err = s.builder.ReverseView(r.Context(), name)
	} else {
		view, err = s.builder.DependencyView(r.Context(), name)
	}

	rows := 0
	if view != nil {
		rows = view.Count()
	}
	observability.Query().OnQueryComplete(r.Context(), queryID, kind, name, rows, time.Since(start), err)

	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := viewResponse{
		QueryID: queryID,
		Package: view.Root,
		Reverse: view.Reverse,
		Count:   view.Count(),
		Entries: make([]entryJSON, 0, view.Count()),
	}
	for _, e := range view.Entries {
		row := entryJSON{Name: e.Name, DependencyCount: e.DepCount}
		if e.Lookup != nil {
			row.LookupError = errors.UserMessage(e.Lookup)
		}
		resp.Entries = append(resp.Entries, row)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	queryID := uuid.NewString()

	opts := []depgraph.FinderOption{depgraph.WithMaxPerNode(s.maxPerNode)}
	if n, err := strconv.Atoi(r.URL.Query().Get("max_per_node")); err == nil && n > 0 {
		opts = []depgraph.FinderOption{depgraph.WithMaxPerNode(n)}
	}
	exhaustive := s.exhaustive
	if v := r.URL.Query().Get("exhaustive"); v != "" {
		exhaustive = v == "true" || v == "1"
	}
	if exhaustive {
		opts = append(opts, depgraph.WithExhaustive())
	}
	opts = append(opts, depgraph.WithErrorHandler(func(pkg string, err error) {
		s.logger.Warnf("cycle search: %s: %v", pkg, err)
	}))

	start := time.Now()
	observability.Query().OnQueryStart(r.Context(), queryID, "cycles", name)

	cycles, err := depgraph.NewFinder(s.provider, opts...).FindCycles(r.Context(), name)
	observability.Query().OnQueryComplete(r.Context(), queryID, "cycles", name, len(cycles), time.Since(start), err)

	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cyclesResponse{
		QueryID: queryID,
		Package: name,
		Count:   len(cycles),
		Cycles:  cycles,
	})
}

// writeError maps the error taxonomy onto HTTP statuses: invalid input is
// the client's fault, timeouts are gateway timeouts, and any other provider
// failure is a bad gateway. The machine-readable code always travels in
// the body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeInvalidPackage), errors.Is(err, errors.ErrCodeInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeTimeout):
		status = http.StatusGatewayTimeout
	case errors.IsProviderFailure(err):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		s.logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
