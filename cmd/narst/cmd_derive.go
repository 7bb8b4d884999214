package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntoxeg/narst/pkg/narst/inference/syllogistic"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

var (
	deriveFile  string
	deriveSteps int
	deriveWhy   string
)

// deriveCmd runs the syllogistic engine over a Narsese file
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive conclusions from a Narsese file",
	Long: `Loads judgements from a file and forward-chains NAL-1 syllogisms
until nothing new is derived or the step limit is reached.

Example:
  narst derive --file birds.nal --steps 4
  narst derive --file birds.nal --explain "<robin --> animal>"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(deriveFile)
		if err != nil {
			return err
		}

		engine := syllogistic.New(
			syllogistic.WithConcurrency(cfg.Concurrency),
			syllogistic.WithLogger(logger.Named("engine")),
		)
		if err := engine.LoadNarsese(string(data)); err != nil {
			return fmt.Errorf("load %s: %w", deriveFile, err)
		}

		steps := deriveSteps
		if steps <= 0 {
			steps = cfg.MaxSteps
		}
		derived, err := engine.DeriveAll(cmd.Context(), steps)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, d := range derived {
			j := nal.Judgement{Statement: d.Conclusion, Truth: *d.Conclusion.TV}
			fmt.Fprintf(out, "%s  [%s %s, %s]\n", j, d.Rule, d.Premises[0], d.Premises[1])
		}

		if deriveWhy != "" {
			subject, predicate, err := nal.SplitInheritance(deriveWhy)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, engine.Explain(subject, predicate))
		}
		return nil
	},
}

func init() {
	deriveCmd.Flags().StringVarP(&deriveFile, "file", "f", "", "Narsese file to load")
	deriveCmd.Flags().IntVar(&deriveSteps, "steps", 0, "Maximum derivation steps (default from config)")
	deriveCmd.Flags().StringVar(&deriveWhy, "explain", "", "Explain how a statement was derived")
	_ = deriveCmd.MarkFlagRequired("file")
}
