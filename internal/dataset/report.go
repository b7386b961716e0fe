package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/typeminer/typeminer/internal/model"
)

// Report summarizes one extraction run. It keeps "excluded by filter"
// (ModulesFiltered) apart from "failed to parse" (Failures) so consumers
// can audit dataset completeness.
type Report struct {
	RunID            string          `json:"run_id"`
	Repository       string          `json:"repository"`
	FilesDiscovered  int             `json:"files_discovered"`
	ModulesExtracted int             `json:"modules_extracted"`
	ModulesKept      int             `json:"modules_kept"`
	ModulesFiltered  int             `json:"modules_filtered"`
	RepositoryKept   bool            `json:"repository_kept"`
	Failures         []model.Failure `json:"failures"`
}

// NewReport stamps a new run for a repository.
func NewReport(repository string) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		Repository: repository,
		Failures:   []model.Failure{},
	}
}

// AddFailures appends per-file failures to the report.
func (r *Report) AddFailures(failures ...model.Failure) {
	r.Failures = append(r.Failures, failures...)
}

// SetModuleCounts records the extraction and filtering tallies.
func (r *Report) SetModuleCounts(extracted, kept int, repositoryKept bool) {
	r.ModulesExtracted = extracted
	r.ModulesKept = kept
	r.ModulesFiltered = extracted - kept
	r.RepositoryKept = repositoryKept
}

// Log emits the summary, one warning per failure.
func (r *Report) Log(logger *slog.Logger) {
	logger.Info("extraction summary",
		"run_id", r.RunID,
		"repository", r.Repository,
		"files", r.FilesDiscovered,
		"extracted", r.ModulesExtracted,
		"kept", r.ModulesKept,
		"filtered", r.ModulesFiltered,
		"failed", len(r.Failures),
	)
	for _, f := range r.Failures {
		logger.Warn("file skipped", "path", f.Path, "kind", string(f.Kind), "reason", f.Message)
	}
}

// Save writes the report as JSON, creating parent directories.
func (r *Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
