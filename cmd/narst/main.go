// Command narst is the command-line front end of the reasoner: it parses
// Narsese, evaluates truth functions, runs derivations, manages the
// belief memory and serves Narsese over TCP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ntoxeg/narst/internal/logging"
	"github.com/ntoxeg/narst/pkg/narst/config"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "narst",
	Short: "narst - Non-Axiomatic Logic reasoner",
	Long: `narst reasons over Narsese statements with evidential truth values.

Judgements such as "<robin --> bird>. {0.9 0.9}" are stored as beliefs;
NAL-1 syllogistic rules (deduction, induction, abduction, exemplification)
combine them into new beliefs with mechanically computed truth values.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to narst.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(parseCmd, truthCmd, deriveCmd, memoryCmd, serveCmd, replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
