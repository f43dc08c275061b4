package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cxxtract/internal/slogutil"
	"cxxtract/internal/version"
)

var (
	verbosity  int
	quiet      bool
	logFile    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "cxxtract",
	Short: "cxxtract - structural C++ code indexing core",
	Long: `cxxtract converts a directory of C++ source files into a stream of
canonical, deterministically-identified entities (classes, structs, functions)
with their attached documentation, ready for vector-store and dependency-graph
ingestion.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("cxxtract version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to a file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a cxxtract config file")
}

// newLogger builds the logger from the persistent CLI flags. The returned
// closer is nil when no log file is open.
func newLogger() (*slog.Logger, *os.File, error) {
	level := slogutil.LevelFromVerbosity(verbosity, quiet)
	if logFile != "" {
		return slogutil.NewFileLogger(logFile, level)
	}
	return slogutil.NewLogger(os.Stderr, level), nil, nil
}
