package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/protview/internal/config"
	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/handler"
	"github.com/yumyai/protview/pkg/middle"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/related"
	"github.com/yumyai/protview/pkg/source"
)

const exportTSV = "Entry\tReviewed\tEntry Name\tProtein names\tOrganism\tSequence\n" +
	"P1\treviewed\tALPHA_HUMAN\tAlpha protein\tHomo sapiens\tMKVL\n" +
	"P2\tunreviewed\tBETA_MOUSE\tBeta protein\tMus musculus\tMAA\n" +
	"P3\treviewed\tGAMMA_HUMAN\tGamma kinase\tHomo sapiens\tMGGGG\n"

func newRegistry(t *testing.T) (*db.Repository, *httptest.Server) {
	t.Helper()
	conn, err := db.New(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	repo := db.NewRepository(conn)
	t.Cleanup(func() { repo.Close() })

	reg := &handler.RegistryContext{Repo: repo, MinJaccard: 0.4}
	srv := httptest.NewServer(NewRouter(reg, middle.NewMetrics("test")))
	t.Cleanup(srv.Close)
	return repo, srv
}

func TestImportProteinsFromFile(t *testing.T) {
	repo, _ := newRegistry(t)
	path := filepath.Join(t.TempDir(), "export.tsv")
	require.NoError(t, os.WriteFile(path, []byte(exportTSV), 0o644))

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "registry.db"), ImportPath: path}
	require.NoError(t, importProteins(context.Background(), cfg, repo))

	n, err := repo.CountProteins()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestImportProteinsFromURL(t *testing.T) {
	repo, _ := newRegistry(t)
	export := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(exportTSV))
	}))
	defer export.Close()

	dir := t.TempDir()
	cfg := &config.Config{DBPath: filepath.Join(dir, "registry.db"), ImportURL: export.URL}
	require.NoError(t, importProteins(context.Background(), cfg, repo))

	assert.FileExists(t, filepath.Join(dir, importFileName))
	p, err := repo.GetProtein("P3")
	require.NoError(t, err)
	assert.Equal(t, "Gamma kinase", p.ProteinName)
}

func TestImportProteinsNothingConfigured(t *testing.T) {
	repo, _ := newRegistry(t)
	require.NoError(t, importProteins(context.Background(), &config.Config{DBPath: "x.db"}, repo))

	n, err := repo.CountProteins()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// The viewer's remote source talks to the registry backend end to end.
func TestRemoteSourceAgainstRegistry(t *testing.T) {
	repo, srv := newRegistry(t)
	path := filepath.Join(t.TempDir(), "export.tsv")
	require.NoError(t, os.WriteFile(path, []byte(exportTSV), 0o644))
	require.NoError(t, importProteins(context.Background(), &config.Config{ImportPath: path}, repo))

	src, err := source.NewRemoteSource(srv.URL, srv.URL,
		source.WithHTTPClient(srv.Client()),
		source.WithTimeout(2*time.Second),
	)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Len(t, src.FetchAll(ctx), 3)

	p, ok := src.FetchByIdentifier(ctx, "P2")
	require.True(t, ok)
	assert.Equal(t, model.ReviewStatusUnreviewed, p.Reviewed)

	_, ok = src.FetchByIdentifier(ctx, "P9")
	assert.False(t, ok)

	found := src.Search(ctx, source.Filter{Name: "kinase"})
	require.Len(t, found, 1)
	assert.Equal(t, "P3", found[0].Entry)

	require.NoError(t, src.SaveCorrelations(ctx, []model.Correlation{{
		Entry: "P1",
		JaccardCorrelations: []model.JaccardScore{
			{Entry: "P3", Jaccard: 0.7},
			{Entry: "P9", Jaccard: 0.6},
			{Entry: "P2", Jaccard: 0.2},
		},
	}}))

	got := src.FetchCorrelations(ctx, "P1")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"P3", "P9"}, model.RelatedEntries("P1", got), "pairs under the threshold are not stored")

	rel := related.Resolve(ctx, src, "P1", related.DefaultLimit)
	require.Len(t, rel, 1, "P9 is unknown to the registry")
	assert.Equal(t, "P3", rel[0].Entry)
}

func TestRegistryRoutes(t *testing.T) {
	_, srv := newRegistry(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/protein/", http.StatusOK},
		{http.MethodGet, "/protein/stats", http.StatusOK},
		{http.MethodGet, "/protein/P9", http.StatusNotFound},
		{http.MethodGet, "/api/proteins?entry=P1", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodDelete, "/api/proteins", http.StatusMethodNotAllowed},
		{http.MethodGet, "/protein/P1/extra", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRegistryInsertThenFind(t *testing.T) {
	_, srv := newRegistry(t)

	body := `{"entry":"Q1","entry_name":"DELTA_YEAST","protein_name":"Delta","organism":"Saccharomyces cerevisiae","reviewed":"reviewed","sequence":"MKK"}`
	resp, err := http.Post(srv.URL+"/protein/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	src, err := source.NewRemoteSource(srv.URL, srv.URL)
	require.NoError(t, err)
	p, ok := src.FetchByIdentifier(context.Background(), "Q1")
	require.True(t, ok)
	assert.Equal(t, "DELTA_YEAST", p.EntryName)

	resp, err = http.Get(srv.URL + "/protein/Q1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Protein
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Delta", got.ProteinName)
}
