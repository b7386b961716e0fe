package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "typeminer",
	Short: "Typeminer - structural dataset extraction for Python repositories",
	Long: `Typeminer parses Python repositories and extracts their structural
entities (modules, classes, functions, methods and parameters) into a
JSON dataset, after pruning the entity tree with a configurable chain
of named filters.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags. The config file is consumed by the command's own
	// loader, not by a process-wide viper instance.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.typeminer/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initLogging wires the default logger to the --verbose flag.
func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
