package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ntoxeg/narst/internal/server"
)

// replCmd reads Narsese interactively
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive Narsese shell",
	Long: `Reads sentences and commands from stdin and answers like the TCP server.

Commands:
  !think [n]            run n derivation steps
  !explain <a --> b>    show how a statement was derived
  quit                  leave the shell`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		reasoner, err := openReasoner(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := reasoner.Close(); err != nil {
				logger.Warn("close reasoner", zap.Error(err))
			}
		}()

		srv := server.New(server.Options{Reasoner: reasoner, Logger: logger, MaxSteps: cfg.MaxSteps})
		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())

		fmt.Fprintln(out, "narst repl. Type 'quit' to exit.")
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			if line == "quit" || line == "exit" {
				break
			}
			for _, reply := range srv.Respond(ctx, line) {
				fmt.Fprintln(out, reply)
			}
		}
		fmt.Fprintln(out)
		return scanner.Err()
	},
}
