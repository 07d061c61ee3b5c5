package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/depscope/pkg/errors"
)

type stubProvider struct {
	deps  map[string][]string
	rdeps map[string][]string
	errs  map[string]error
}

func (p *stubProvider) Depends(_ context.Context, pkg string) ([]string, error) {
	if err := p.errs[pkg]; err != nil {
		return nil, err
	}
	return p.deps[pkg], nil
}

func (p *stubProvider) RDepends(_ context.Context, pkg string) ([]string, error) {
	if err := p.errs[pkg]; err != nil {
		return nil, err
	}
	return p.rdeps[pkg], nil
}

func newTestServer(p *stubProvider) *httptest.Server {
	return httptest.NewServer(New(p, Options{}).Handler())
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&stubProvider{})
	defer ts.Close()

	var body map[string]string
	status := getJSON(t, ts.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestDependencies(t *testing.T) {
	p := &stubProvider{
		deps: map[string][]string{
			"bash":       {"base-files", "libc6"},
			"base-files": {},
			"libc6":      {"libgcc-s1", "libcrypt1"},
		},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var body viewResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/bash/dependencies", &body)

	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body.QueryID)
	assert.Equal(t, "bash", body.Package)
	assert.False(t, body.Reverse)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, entryJSON{Name: "base-files", DependencyCount: 0}, body.Entries[0])
	assert.Equal(t, entryJSON{Name: "libc6", DependencyCount: 2}, body.Entries[1])
}

func TestDependencies_LookupFailureMarkedOnEntry(t *testing.T) {
	p := &stubProvider{
		deps: map[string][]string{"bash": {"broken"}},
		errs: map[string]error{
			"broken": errors.New(errors.ErrCodeProviderUnavailable, "apt-cache failed"),
		},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var body viewResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/bash/dependencies", &body)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "broken", body.Entries[0].Name)
	assert.NotEmpty(t, body.Entries[0].LookupError)
}

func TestDependents(t *testing.T) {
	p := &stubProvider{
		rdeps: map[string][]string{"libc6": {"bash", "coreutils"}},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var body viewResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/libc6/dependents", &body)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Reverse)
	assert.Equal(t, 2, body.Count)
	for _, e := range body.Entries {
		assert.Zero(t, e.DependencyCount)
	}
}

func TestCycles(t *testing.T) {
	p := &stubProvider{
		deps: map[string][]string{
			"a": {"b"},
			"b": {"a"},
		},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var body cyclesResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/a/cycles", &body)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Cycles, 1)
	assert.Equal(t, []string{"a", "b", "a"}, []string(body.Cycles[0]))
}

func TestCycles_ExhaustiveQueryParam(t *testing.T) {
	// Memoized search misses the cycle through c because b is already
	// cleared when the c branch reaches it.
	p := &stubProvider{
		deps: map[string][]string{
			"a": {"b", "c"},
			"b": {"a"},
			"c": {"b"},
		},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var memo cyclesResponse
	getJSON(t, ts.URL+"/api/v1/packages/a/cycles", &memo)
	assert.Equal(t, 1, memo.Count)

	var full cyclesResponse
	getJSON(t, ts.URL+"/api/v1/packages/a/cycles?exhaustive=true", &full)
	assert.Equal(t, 2, full.Count)
}

func TestInvalidPackageName(t *testing.T) {
	ts := newTestServer(&stubProvider{})
	defer ts.Close()

	var body errorResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/bad;name/dependencies", &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(errors.ErrCodeInvalidPackage), body.Error.Code)
}

func TestProviderFailureIsBadGateway(t *testing.T) {
	p := &stubProvider{
		errs: map[string]error{
			"bash": errors.New(errors.ErrCodeProviderUnavailable, "apt-cache exited with status 100"),
		},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var body errorResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/bash/dependencies", &body)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, string(errors.ErrCodeProviderUnavailable), body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}

func TestTimeoutIsGatewayTimeout(t *testing.T) {
	p := &stubProvider{
		errs: map[string]error{
			"bash": errors.New(errors.ErrCodeTimeout, "apt-cache timed out"),
		},
	}
	ts := newTestServer(p)
	defer ts.Close()

	var body errorResponse
	status := getJSON(t, ts.URL+"/api/v1/packages/bash/cycles", &body)

	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, string(errors.ErrCodeTimeout), body.Error.Code)
}
