// Package ports defines the interfaces (contracts) that adapters and
// analyzers implement. These are the boundaries of the hexagonal
// architecture: domain logic and orchestration depend only on these
// interfaces, never on concrete implementations.
package ports

import "time"

// DataType classifies a table column for import mapping and display.
type DataType string

const (
	TypeIdentifier DataType = "identifier"
	TypeText       DataType = "text"
	TypeDatetime   DataType = "datetime"
	TypeTime       DataType = "time"
	TypeInteger    DataType = "integer"
	TypeFloat      DataType = "float"
	TypeURL        DataType = "url"
)

// InputColumn describes a column an analyzer requires from the imported
// dataset. NameHints drive automatic column mapping during import: a source
// column whose header contains a hint maps to this input.
type InputColumn struct {
	Name        string
	HumanName   string
	Type        DataType
	Description string
	NameHints   []string
}

// OutputColumn describes one column of an analyzer output table.
type OutputColumn struct {
	Name string
	Type DataType
}

// Output describes one table an analyzer produces. Internal outputs feed
// downstream analyzers and dashboards; non-internal ones are user-facing
// export candidates.
type Output struct {
	ID          string
	Name        string
	Description string
	Internal    bool
	Columns     []OutputColumn
}

// ParamKind discriminates analyzer parameter types.
type ParamKind string

const (
	ParamInteger    ParamKind = "integer"
	ParamTimeWindow ParamKind = "time_window"
)

// Param declares a tunable analyzer parameter with its bounds and default.
type Param struct {
	ID            string
	HumanName     string
	Description   string
	Kind          ParamKind
	Min, Max      int           // integer bounds (ParamInteger)
	Default       int           // default value (ParamInteger)
	DefaultWindow time.Duration // default window (ParamTimeWindow)
}

// ParamValues carries the caller-supplied parameter values for a run.
type ParamValues map[string]any

// Int returns the integer parameter id, or fallback when absent.
func (p ParamValues) Int(id string, fallback int) int {
	if v, ok := p[id]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return fallback
}

// Window returns the time-window parameter id, or fallback when absent.
func (p ParamValues) Window(id string, fallback time.Duration) time.Duration {
	if v, ok := p[id]; ok {
		if d, ok := v.(time.Duration); ok {
			return d
		}
	}
	return fallback
}

// Kind discriminates primary analyzers (consume the imported dataset) from
// secondary analyzers (consume a primary's output tables).
type Kind string

const (
	KindPrimary   Kind = "primary"
	KindSecondary Kind = "secondary"
)

// Spec is the declarative metadata for one analyzer.
type Spec struct {
	ID               string
	Version          string
	Name             string
	ShortDescription string
	Kind             Kind
	BasedOn          string // primary analyzer ID, secondary analyzers only
	Input            []InputColumn
	Outputs          []Output
	Params           []Param
}

// TableRef locates one columnar table on disk. Analyzers exchange data
// exclusively through parquet paths; they have no other file-format or wire
// responsibilities.
type TableRef struct {
	Path string
}

// AnalyzerContext is handed to an analyzer's Run. It resolves input,
// upstream, and output table locations and reports progress.
type AnalyzerContext interface {
	// Params returns the parameter values for this run.
	Params() ParamValues

	// Input locates the imported dataset table (primary analyzers).
	Input() TableRef

	// Base locates an output table of the primary this secondary analyzer
	// is based on.
	Base(outputID string) TableRef

	// Output locates the table this analyzer should write for outputID.
	Output(outputID string) TableRef

	// Progress reports a stage label and completion fraction (0..1).
	Progress(stage string, frac float64)
}

// Analyzer is the plugin contract. Spec is static metadata; Run performs
// the analysis, reading and writing parquet tables through ctx.
type Analyzer interface {
	Spec() Spec
	Run(ctx AnalyzerContext) error
}
