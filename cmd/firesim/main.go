package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "firesim",
	Short: "FIRE Monte Carlo retirement simulator",
	Long:  "Monte Carlo simulation of multi-asset retirement portfolios: success rates, percentile bands and bear/base/bull scenario comparisons",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "firesim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// loadSettings reads the settings file named by --config, falls back to
// firesim.yaml in the working directory, and finally to built-in defaults.
func loadSettings() (*config.Settings, error) {
	parser := config.NewInputParser()

	if configFile != "" {
		return parser.LoadFromFile(configFile)
	}
	if fileExists("firesim.yaml") {
		return parser.LoadFromFile("firesim.yaml")
	}
	return config.DefaultSettings(), nil
}

// newLogger builds the CLI logger; verbose mode surfaces debug entries.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
