package model

// FailureKind classifies why a source file produced no module.
type FailureKind string

const (
	// FailureSyntax marks a file whose text could not be parsed.
	FailureSyntax FailureKind = "syntax"
	// FailureIO marks a file that could not be read from disk.
	FailureIO FailureKind = "io"
)

// Failure records a per-file extraction failure. Failures are collected
// and reported alongside the assembled tree; they never abort a run.
type Failure struct {
	Path    string      `json:"path"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}
