package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yumyai/protview/pkg/handler"
	"github.com/yumyai/protview/pkg/middle"
	"github.com/yumyai/protview/pkg/source"
)

func newTestServer(t *testing.T, src source.Source) *httptest.Server {
	t.Helper()
	app := &handler.AppContext{
		Source:      src,
		Sessions:    handler.NewSessionStore(src, 2, 8, time.Minute),
		Metrics:     middle.NewMetrics("test"),
		Concurrency: 2,
		FixtureDir:  "public",
	}
	h := middle.Chain(NewRouter(app),
		middle.RequestIDMiddleware(zap.NewNop()),
		middle.LoggingMiddleware(zap.NewNop()),
		app.Metrics.InstrumentHandler,
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func mockSource() source.Source {
	return source.NewFixtureSource(fstest.MapFS{
		source.ProteinsFixture: {Data: []byte(`[
			{"entry":"P1","entry_name":"A_HUMAN","protein_name":"Alpha","organism":"Homo sapiens","reviewed":"reviewed","sequence":"MKV"},
			{"entry":"P2","entry_name":"B_HUMAN","protein_name":"Beta","organism":"Homo sapiens","reviewed":"reviewed","sequence":"MAA"}
		]`)},
		source.CorrelationsFixture: {Data: []byte(`[{"entry":"P1","jaccardCorrelations":[{"entry":"P2","jaccard":0.9}]}]`)},
	})
}

func TestRouterRoutes(t *testing.T) {
	srv := newTestServer(t, mockSource())

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "2 proteins"},
		{"/protein/P1", http.StatusOK, "Related proteins"},
		{"/protein/P3", http.StatusNotFound, "P3"},
		{"/graph/P1", http.StatusOK, "2 nodes, 1 edges"},
		{"/api/v1/health", http.StatusOK, `"mode":"mock"`},
		{"/api/v1/proteins?q=p2", http.StatusOK, `"entry":"P2"`},
		{"/api/v1/proteins/P1/related", http.StatusOK, `"jaccard":0.9`},
		{"/api/v1/proteins/P1/graph", http.StatusOK, `"center":"P1"`},
		{"/sequence/by-entry?entry=P1", http.StatusOK, ">sp|P1|A_HUMAN"},
		{"/metrics", http.StatusOK, "test_http_requests_total"},
		{"/nowhere", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			buf := new(strings.Builder)
			_, err = buf.ReadFrom(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, buf.String(), tt.body)
			assert.NotEmpty(t, resp.Header.Get(middle.RequestIDHeader))
		})
	}
}

func TestRouterLiveModeHidesFixtures(t *testing.T) {
	src, err := source.NewRemoteSource("http://127.0.0.1:1", "http://127.0.0.1:1", source.WithMaxRetries(0))
	require.NoError(t, err)
	srv := newTestServer(t, src)

	resp, err := http.Get(srv.URL + "/mock-proteins.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Unreachable services degrade to empty pages.
	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
