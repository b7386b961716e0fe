// Package loader resolves the set of source files belonging to a
// repository root and materializes their text. One file = one module
// boundary; downstream stages never touch the filesystem.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/typeminer/typeminer/internal/model"
)

// DefaultInclude matches the Python source files of a repository.
var DefaultInclude = []string{"**/*.py"}

// DefaultIgnore excludes trees that never contain dataset-relevant modules.
var DefaultIgnore = []string{
	".git/**",
	"__pycache__/**",
	".venv/**",
	"venv/**",
	".tox/**",
	"build/**",
	"dist/**",
	"*.egg-info/**",
}

// SourceUnit is one source file, materialized: a relative slash-separated
// path and the full file text.
type SourceUnit struct {
	Path   string
	Source string
}

// compiledPattern pairs a glob pattern with its compiled matcher.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Loader discovers and reads source units under a root directory.
type Loader struct {
	root    string
	include []compiledPattern
	ignore  []compiledPattern
}

// Options configures discovery. Nil slices fall back to the defaults.
type Options struct {
	Include []string
	Ignore  []string
}

// New compiles the include/ignore patterns for a root directory.
func New(root string, opts Options) (*Loader, error) {
	include := opts.Include
	if include == nil {
		include = DefaultInclude
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}

	l := &Loader{root: root}
	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		l.include = append(l.include, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		l.ignore = append(l.ignore, compiledPattern{pattern: pattern, glob: g})
	}
	return l, nil
}

// Load walks the root and returns matching source units in walk order
// (lexical), plus a failure entry for every file that matched but could
// not be read. Unreadable files never abort discovery.
func (l *Loader) Load() ([]SourceUnit, []model.Failure, error) {
	units := []SourceUnit{}
	failures := []model.Failure{}

	err := filepath.Walk(l.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			relPath, relErr := filepath.Rel(l.root, path)
			if relErr != nil {
				relPath = path
			}
			failures = append(failures, model.Failure{
				Path:    filepath.ToSlash(relPath),
				Kind:    model.FailureIO,
				Message: err.Error(),
			})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if l.shouldIgnore(relPath) {
			return nil
		}
		if !matchesAnyPattern(relPath, l.include) {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			failures = append(failures, model.Failure{
				Path:    relPath,
				Kind:    model.FailureIO,
				Message: err.Error(),
			})
			return nil
		}

		units = append(units, SourceUnit{Path: relPath, Source: string(source)})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return units, failures, nil
}

// shouldIgnore checks a relative path against the ignore patterns, also
// matching directories against patterns written with a /** suffix.
func (l *Loader) shouldIgnore(relPath string) bool {
	if matchesAnyPattern(relPath, l.ignore) {
		return true
	}
	for _, part := range strings.Split(relPath, "/") {
		if matchesAnyPattern(part+"/**", l.ignore) {
			return true
		}
	}
	return false
}

// matchesAnyPattern checks if a path matches any of the given patterns.
// Root-level paths additionally match patterns written with a **/ prefix,
// so "**/*.py" covers both "setup.py" and "src/pkg/core.py".
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}
	return false
}
