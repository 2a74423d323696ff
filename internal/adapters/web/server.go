package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/analyzers"
	"github.com/magpielabs/magpie/internal/ports"
)

// RunResolver locates the newest completed run of an analyzer for a project.
type RunResolver interface {
	LatestRun(project, analyzerID string) (*ports.AnalysisRun, error)
}

// Server exposes the project registry and analysis results as a JSON API
// plus a static dashboard page.
type Server struct {
	store    ports.ProjectStore
	runs     RunResolver
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates the dashboard server.
func NewServer(store ports.ProjectStore, runs RunResolver) *Server {
	return &Server{store: store, runs: runs}
}

// Start begins listening on localhost at the preferred port; port 0 picks a
// free one.
func (s *Server) Start(preferredPort int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", preferredPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("static fs: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(static))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/ngrams", s.handleNgrams)
	mux.HandleFunc("GET /api/gini", s.handleGini)

	s.httpSrv = &http.Server{Handler: mux}
	go s.httpSrv.Serve(ln)
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the dashboard URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

type healthResult struct {
	Status       string `json:"status"`
	ProjectCount int    `json:"project_count"`
	Uptime       string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, healthResult{
		Status:       "ok",
		ProjectCount: len(projects),
		Uptime:       time.Since(s.started).Round(time.Second).String(),
	})
}

type projectInfo struct {
	Name      string    `json:"name"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]projectInfo, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectInfo{Name: p.Name, RowCount: p.RowCount, CreatedAt: p.CreatedAt})
	}
	writeJSON(w, out)
}

type ngramsResult struct {
	Project string                `json:"project"`
	RunID   string                `json:"run_id"`
	Rows    []ports.NgramStatsRow `json:"rows"`
}

func (s *Server) handleNgrams(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	run, ok := s.resolveRun(w, project, analyzers.NgramStatsID)
	if !ok {
		return
	}
	rows, err := parquetio.ReadAll[ports.NgramStatsRow](run.Outputs[analyzers.OutNgramSummary])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if limit := 200; len(rows) > limit {
		rows = rows[:limit]
	}
	writeJSON(w, ngramsResult{Project: project, RunID: run.ID, Rows: rows})
}

type giniResult struct {
	Project string                 `json:"project"`
	RunID   string                 `json:"run_id"`
	Rows    []ports.HashtagGiniRow `json:"rows"`
}

func (s *Server) handleGini(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	run, ok := s.resolveRun(w, project, analyzers.HashtagsID)
	if !ok {
		return
	}
	rows, err := parquetio.ReadAll[ports.HashtagGiniRow](run.Outputs[analyzers.OutGini])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, giniResult{Project: project, RunID: run.ID, Rows: rows})
}

// resolveRun handles the shared project/run lookup and error responses.
func (s *Server) resolveRun(w http.ResponseWriter, project, analyzerID string) (*ports.AnalysisRun, bool) {
	if project == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing project parameter"))
		return nil, false
	}
	run, err := s.runs.LatestRun(project, analyzerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	if run == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no completed %s run for %q", analyzerID, project))
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
