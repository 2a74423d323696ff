package ports

import "time"

// Project is one imported dataset with its column mapping.
type Project struct {
	Name       string            `json:"name"`
	SourceFile string            `json:"source_file"`
	RowCount   int               `json:"row_count"`
	// ColumnMap maps analyzer input column names to source dataset headers.
	ColumnMap  map[string]string `json:"column_map"`
	TablePath  string            `json:"table_path"` // imported messages parquet
	CreatedAt  time.Time         `json:"created_at"`
}

// AnalysisRun records one completed analyzer execution and where its output
// tables landed.
type AnalysisRun struct {
	ID          string            `json:"id"`
	Project     string            `json:"project"`
	AnalyzerID  string            `json:"analyzer_id"`
	Params      map[string]any    `json:"params"`
	// Outputs maps analyzer output IDs to parquet paths.
	Outputs     map[string]string `json:"outputs"`
	CompletedAt time.Time         `json:"completed_at"`
}

// ProjectStore persists the project registry and analysis run history.
// The backing store (bbolt) namespaces by project name. Concurrent reads are
// safe; writes are serialized by the adapter.
//
// Crash safety: saves must be transactional. A crash mid-write must not
// corrupt previously committed data.
type ProjectStore interface {
	// SaveProject persists a project record, overwriting any prior record
	// with the same name.
	SaveProject(p *Project) error

	// LoadProject retrieves a project by name.
	// Returns nil, nil if no such project exists.
	LoadProject(name string) (*Project, error)

	// ListProjects returns all projects sorted by name.
	ListProjects() ([]*Project, error)

	// DeleteProject removes a project and all its run records.
	// Idempotent: deleting a nonexistent project is not an error.
	DeleteProject(name string) error

	// SaveRun appends an analysis run record for a project.
	SaveRun(r *AnalysisRun) error

	// ListRuns returns all runs for a project, oldest first.
	ListRuns(project string) ([]*AnalysisRun, error)
}
