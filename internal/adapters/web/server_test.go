package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpielabs/magpie/internal/adapters/bboltstore"
	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/analyzers"
	"github.com/magpielabs/magpie/internal/ports"
)

type fakeRuns struct {
	runs map[string]*ports.AnalysisRun // key: project + "/" + analyzer
}

func (f *fakeRuns) LatestRun(project, analyzerID string) (*ports.AnalysisRun, error) {
	return f.runs[project+"/"+analyzerID], nil
}

func newTestServer(t *testing.T, runs *fakeRuns) (*Server, string) {
	t.Helper()
	store, err := bboltstore.NewStore(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.SaveProject(&ports.Project{
		Name:      "demo",
		RowCount:  3,
		CreatedAt: time.Now().UTC(),
	}))

	if runs == nil {
		runs = &fakeRuns{runs: map[string]*ports.AnalysisRun{}}
	}
	s := NewServer(store, runs)
	require.NoError(t, s.Start(0))
	t.Cleanup(s.Stop)
	return s, fmt.Sprintf("http://127.0.0.1:%d", s.Port())
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	_, base := newTestServer(t, nil)

	var got healthResult
	code := getJSON(t, base+"/api/health", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 1, got.ProjectCount)
}

func TestProjects(t *testing.T) {
	_, base := newTestServer(t, nil)

	var got []projectInfo
	code := getJSON(t, base+"/api/projects", &got)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, got, 1)
	assert.Equal(t, "demo", got[0].Name)
	assert.Equal(t, 3, got[0].RowCount)
}

func TestNgrams_ServesLatestRun(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "ngram_stats.parquet")
	require.NoError(t, parquetio.WriteAll(table, []ports.NgramStatsRow{
		{NgramID: 0, Words: "go go go", Length: 3, TotalReps: 3, DistinctPosters: 3},
	}))

	runs := &fakeRuns{runs: map[string]*ports.AnalysisRun{
		"demo/" + analyzers.NgramStatsID: {
			ID:      "run-1",
			Outputs: map[string]string{analyzers.OutNgramSummary: table},
		},
	}}
	_, base := newTestServer(t, runs)

	var got ngramsResult
	code := getJSON(t, base+"/api/ngrams?project=demo", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "run-1", got.RunID)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "go go go", got.Rows[0].Words)
}

func TestNgrams_NoRunIs404(t *testing.T) {
	_, base := newTestServer(t, nil)

	var got map[string]string
	code := getJSON(t, base+"/api/ngrams?project=demo", &got)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, got["error"], "no completed")
}

func TestNgrams_MissingProjectIs400(t *testing.T) {
	_, base := newTestServer(t, nil)

	var got map[string]string
	code := getJSON(t, base+"/api/ngrams", &got)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGini_ServesLatestRun(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "hashtag_gini.parquet")
	require.NoError(t, parquetio.WriteAll(table, []ports.HashtagGiniRow{
		{WindowStart: 1717236000, Count: 3, Users: 2, Gini: 0.25, GiniSmooth: 0.25},
	}))

	runs := &fakeRuns{runs: map[string]*ports.AnalysisRun{
		"demo/" + analyzers.HashtagsID: {
			ID:      "run-2",
			Outputs: map[string]string{analyzers.OutGini: table},
		},
	}}
	_, base := newTestServer(t, runs)

	var got giniResult
	code := getJSON(t, base+"/api/gini?project=demo", &got)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, got.Rows, 1)
	assert.InDelta(t, 0.25, got.Rows[0].Gini, 1e-9)
}

func TestDashboardPage(t *testing.T) {
	_, base := newTestServer(t, nil)

	resp, err := http.Get(base + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
