// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/ChrisMcGann/FeatureFinder/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "featurefinder",
	Short: "FeatureFinder - LC-MS feature detection tool",
	Long: `FeatureFinder groups deconvoluted isotope peaks (_isos.csv or .pek files) into
unique mass classes (UMCs): features that represent one species eluting across scans.

Peaks are clustered by single linkage under a weighted distance over mono and
average mass, log abundance, elution time, isotopic fit and drift time, with
hard mass tolerance gates. Short clusters are removed and every surviving
feature is summarized.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)
}

// newLogger builds the console logger from the global flags.
func newLogger() (*logging.Logger, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Level: level, Format: logFormat})
}
