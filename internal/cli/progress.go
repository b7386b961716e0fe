package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders a progress bar over the files being parsed.
// It is safe for concurrent use by the parse workers.
type CLIProgressReporter struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a progress reporter for totalFiles files.
func NewCLIProgressReporter(totalFiles int) *CLIProgressReporter {
	// The bar goes to stderr so a dataset written to stdout stays clean.
	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Parsing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
	return &CLIProgressReporter{bar: bar}
}

// FileDone advances the bar by one file.
func (c *CLIProgressReporter) FileDone(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bar.Add(1)
}
