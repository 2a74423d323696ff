package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/magpielabs/magpie/internal/analyzers"
	"github.com/magpielabs/magpie/internal/ports"
)

// Runner orchestrates analyzer execution: a primary runs against the
// project's messages table, then every secondary based on it runs against
// the primary's outputs. Run records land in the project store.
type Runner struct {
	Store    ports.ProjectStore
	Registry *analyzers.Registry
	DataDir  string
	Log      zerolog.Logger
}

// Analyze runs the analyzer with the given ID for a project. Running a
// primary also runs its dependent secondaries; running a secondary directly
// reuses the newest completed run of its primary. Returns the run record of
// the requested analyzer.
func (r *Runner) Analyze(project, analyzerID string, params ports.ParamValues) (*ports.AnalysisRun, error) {
	proj, err := r.Store.LoadProject(project)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, fmt.Errorf("no such project %q", project)
	}

	analyzer, err := r.Registry.Get(analyzerID)
	if err != nil {
		return nil, err
	}
	spec := analyzer.Spec()

	if spec.Kind == ports.KindSecondary {
		base, err := r.latestRun(project, spec.BasedOn)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, fmt.Errorf("analyzer %s requires a completed %s run", spec.ID, spec.BasedOn)
		}
		return r.runOne(proj, analyzer, params, base)
	}

	run, err := r.runOne(proj, analyzer, params, nil)
	if err != nil {
		return nil, err
	}
	for _, sec := range r.Registry.Secondaries(spec.ID) {
		if _, err := r.runOne(proj, sec, params, run); err != nil {
			return nil, fmt.Errorf("secondary %s: %w", sec.Spec().ID, err)
		}
	}
	return run, nil
}

// runOne executes a single analyzer and records its run.
func (r *Runner) runOne(proj *ports.Project, analyzer ports.Analyzer, params ports.ParamValues, base *ports.AnalysisRun) (*ports.AnalysisRun, error) {
	spec := analyzer.Spec()
	runID := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102-150405.000"), spec.ID)
	runDir := filepath.Join(r.DataDir, "projects", proj.Name, "runs", runID)

	ctx := &runContext{
		params:  params,
		input:   ports.TableRef{Path: proj.TablePath},
		base:    base,
		runDir:  runDir,
		outputs: make(map[string]string),
		log:     r.Log.With().Str("project", proj.Name).Str("analyzer", spec.ID).Logger(),
	}

	r.Log.Info().Str("project", proj.Name).Str("analyzer", spec.ID).Msg("analysis started")
	start := time.Now()
	if err := analyzer.Run(ctx); err != nil {
		return nil, fmt.Errorf("analyzer %s: %w", spec.ID, err)
	}
	r.Log.Info().Str("analyzer", spec.ID).Dur("took", time.Since(start)).Msg("analysis finished")

	run := &ports.AnalysisRun{
		ID:          runID,
		Project:     proj.Name,
		AnalyzerID:  spec.ID,
		Params:      params,
		Outputs:     ctx.outputs,
		CompletedAt: time.Now().UTC(),
	}
	if err := r.Store.SaveRun(run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// latestRun returns the newest completed run of analyzerID, or nil.
func (r *Runner) latestRun(project, analyzerID string) (*ports.AnalysisRun, error) {
	runs, err := r.Store.ListRuns(project)
	if err != nil {
		return nil, err
	}
	var latest *ports.AnalysisRun
	for _, run := range runs {
		if run.AnalyzerID == analyzerID {
			latest = run
		}
	}
	return latest, nil
}

// LatestRun exposes latestRun for the CLI and dashboard.
func (r *Runner) LatestRun(project, analyzerID string) (*ports.AnalysisRun, error) {
	return r.latestRun(project, analyzerID)
}

// runContext implements ports.AnalyzerContext for one analyzer execution.
type runContext struct {
	params  ports.ParamValues
	input   ports.TableRef
	base    *ports.AnalysisRun
	runDir  string
	outputs map[string]string
	log     zerolog.Logger
}

func (c *runContext) Params() ports.ParamValues { return c.params }

func (c *runContext) Input() ports.TableRef { return c.input }

func (c *runContext) Base(outputID string) ports.TableRef {
	if c.base == nil {
		return ports.TableRef{}
	}
	return ports.TableRef{Path: c.base.Outputs[outputID]}
}

func (c *runContext) Output(outputID string) ports.TableRef {
	path := filepath.Join(c.runDir, outputID+".parquet")
	c.outputs[outputID] = path
	return ports.TableRef{Path: path}
}

func (c *runContext) Progress(stage string, frac float64) {
	c.log.Debug().Str("stage", stage).Float64("frac", frac).Msg("progress")
}
