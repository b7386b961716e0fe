package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/typeminer/typeminer/internal/config"
	"github.com/typeminer/typeminer/internal/dataset"
	"github.com/typeminer/typeminer/internal/extract"
	"github.com/typeminer/typeminer/internal/filter"
	"github.com/typeminer/typeminer/internal/loader"
	"github.com/typeminer/typeminer/internal/model"
)

var (
	rootFlag    string
	nameFlag    string
	urlFlag     string
	pypiTagFlag string
	commitFlag  string
	filtersFlag string
	outputFlag  string
	reportFlag  string
	workersFlag int
	quietFlag   bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a Python repository into a structural JSON dataset",
	Long: `Extract parses every Python module of a repository, assembles the
structural entity tree (modules, classes, functions, methods and
parameters) and prunes it through a chain of named filters before
writing the result as JSON.

Files that fail to parse are skipped and reported, they never abort
the run.

Examples:
  # Extract the current directory using the default filter chain
  typeminer extract --root . --name requests

  # Keep everything, including untyped callables
  typeminer extract --root . --name requests --filters EmptyFilter

  # Write the dataset and a run report to files
  typeminer extract --root ./repo --name flask \
    --output dataset.json --report report.json
`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&rootFlag, "root", ".", "Repository root directory to extract from")
	extractCmd.Flags().StringVar(&nameFlag, "name", "", "Repository name recorded in the dataset")
	extractCmd.Flags().StringVar(&urlFlag, "url", "", "Repository URL recorded in the dataset")
	extractCmd.Flags().StringVar(&pypiTagFlag, "pypi-tag", "", "PyPI release tag recorded in the dataset")
	extractCmd.Flags().StringVar(&commitFlag, "commit", "", "Git commit hash recorded in the dataset")
	extractCmd.Flags().StringVar(&filtersFlag, "filters", "", "Comma-separated filter chain (default from config)")
	extractCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Dataset output file (default stdout)")
	extractCmd.Flags().StringVar(&reportFlag, "report", "", "Write the run report JSON to this file")
	extractCmd.Flags().IntVar(&workersFlag, "workers", 0, "Parse workers (0 = one per CPU)")
	extractCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	extractCmd.MarkFlagRequired("name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling extraction...")
		cancel()
	}()

	cfgLoader := config.NewLoader(rootFlag)
	if cfgFile != "" {
		cfgLoader = config.NewLoaderWithFile(rootFlag, cfgFile)
	}
	cfg, err := cfgLoader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}

	// Resolve the filter chain before touching any source file, so a
	// misspelled filter name fails the run with no partial work done.
	registry := filter.NewRegistry()
	var filters []filter.Filter
	if filtersFlag != "" {
		filters, err = registry.ResolveList(filtersFlag)
	} else {
		filters, err = registry.Resolve(cfg.Filters)
	}
	if err != nil {
		return err
	}

	ld, err := loader.New(rootFlag, loader.Options{
		Include: cfg.Paths.Include,
		Ignore:  cfg.Paths.Ignore,
	})
	if err != nil {
		return fmt.Errorf("failed to scan repository: %w", err)
	}
	units, loadFailures, err := ld.Load()
	if err != nil {
		return fmt.Errorf("failed to scan repository: %w", err)
	}

	report := dataset.NewReport(nameFlag)
	report.FilesDiscovered = len(units) + len(loadFailures)
	report.AddFailures(loadFailures...)

	var progress extract.ProgressReporter = extract.NoOpProgressReporter{}
	if !quietFlag {
		progress = NewCLIProgressReporter(len(units))
	}

	engine := extract.NewEngine(cfg.Workers, progress)
	result := engine.Extract(ctx, extract.Identity{
		Name:          nameFlag,
		URL:           urlFlag,
		PypiTag:       pypiTagFlag,
		GitCommitHash: commitFlag,
	}, units)
	if ctx.Err() != nil {
		return fmt.Errorf("extraction cancelled")
	}
	report.AddFailures(result.Failures...)

	extracted := len(result.Repository.Modules)
	pipeline := filter.NewPipeline(filters)
	repo, kept := pipeline.Run(result.Repository)
	report.SetModuleCounts(extracted, len(repo.Modules), kept)

	if err := writeDataset(repo, kept); err != nil {
		return err
	}

	if reportFlag != "" {
		if err := report.Save(reportFlag); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if !quietFlag {
		report.Log(slog.Default())
	}
	return nil
}

// writeDataset renders the dataset to --output or stdout. A repository
// pruned away entirely still produces a valid dataset: an empty list.
func writeDataset(repo model.Repository, kept bool) error {
	repositories := []model.Repository{}
	if kept {
		repositories = append(repositories, repo)
	}
	if outputFlag != "" {
		if err := dataset.SaveFile(outputFlag, repositories); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
		return nil
	}
	return dataset.WriteJSON(os.Stdout, repositories)
}
