package extract

import "fmt"

// SyntaxError reports a source file whose text could not be parsed.
// It is per-file and non-fatal: the file is skipped and the failure is
// surfaced to the caller, never aborting the rest of the repository.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}
