package extract

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/typeminer/typeminer/internal/loader"
	"github.com/typeminer/typeminer/internal/model"
)

// Identity names the repository a set of source units belongs to.
type Identity struct {
	Name          string
	URL           string
	PypiTag       string
	GitCommitHash string
}

// Result is the assembled repository plus the per-file failures collected
// during extraction.
type Result struct {
	Repository model.Repository
	Failures   []model.Failure
}

// ProgressReporter receives a callback per completed file. Implementations
// must be safe for concurrent use.
type ProgressReporter interface {
	FileDone(path string)
}

// NoOpProgressReporter ignores all progress events.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) FileDone(string) {}

// Engine runs parse-and-extract work in parallel across source units and
// assembles the results into a Repository. Workers write only their own
// result slot; assembly happens in a single step after all workers join,
// so no partial tree is ever exposed.
type Engine struct {
	extractor *Extractor
	workers   int
	progress  ProgressReporter
}

// NewEngine creates an engine with the given worker bound. A non-positive
// count defaults to the number of CPUs. A nil reporter disables progress.
func NewEngine(workers int, progress ProgressReporter) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if progress == nil {
		progress = NoOpProgressReporter{}
	}
	return &Engine{
		extractor: NewExtractor(),
		workers:   workers,
		progress:  progress,
	}
}

// fileResult is one worker's output slot.
type fileResult struct {
	module  model.Module
	failure *model.Failure
	done    bool
}

// Extract parses every unit concurrently and folds the per-file records
// into a Repository, preserving unit order as module order. Cancelling
// the context abandons remaining files; their partial results are
// discarded, not assembled.
func (e *Engine) Extract(ctx context.Context, id Identity, units []loader.SourceUnit) *Result {
	results := make([]fileResult, len(units))

	workers := e.workers
	if workers > len(units) {
		workers = len(units)
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, unit := range units {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			module, err := e.extractor.ExtractModule(unit.Path, unit.Source)
			if err != nil {
				results[i] = fileResult{
					failure: &model.Failure{
						Path:    unit.Path,
						Kind:    model.FailureSyntax,
						Message: err.Error(),
					},
					done: true,
				}
			} else {
				results[i] = fileResult{module: module, done: true}
			}
			// Failed files count as done too, the progress total is all units.
			e.progress.FileDone(unit.Path)
			return nil
		})
	}
	_ = g.Wait()

	// Sequential fold after the barrier: module order = unit order.
	repo := model.Repository{
		Name:          id.Name,
		URL:           id.URL,
		PypiTag:       id.PypiTag,
		GitCommitHash: id.GitCommitHash,
		Modules:       []model.Module{},
	}
	failures := []model.Failure{}
	for i := range results {
		r := &results[i]
		if !r.done {
			continue
		}
		if r.failure != nil {
			failures = append(failures, *r.failure)
			continue
		}
		repo.Modules = append(repo.Modules, r.module)
	}
	return &Result{Repository: repo, Failures: failures}
}
