package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ntoxeg/narst/internal/server"
)

var serveAddr string

// serveCmd serves the reasoner over TCP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Narsese over a line-oriented TCP protocol",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reasoner, err := openReasoner(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := reasoner.Close(); err != nil {
				logger.Warn("close reasoner", zap.Error(err))
			}
		}()

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}
		srv := server.New(server.Options{
			Reasoner:       reasoner,
			Logger:         logger.Named("server"),
			MaxConns:       cfg.Server.MaxConns,
			LinesPerSecond: cfg.Server.LinesPerSecond,
			Burst:          cfg.Server.Burst,
			MaxSteps:       cfg.MaxSteps,
		})
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}
