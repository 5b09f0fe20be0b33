package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shahrzads/ml-application-test-master/pkg/config"
	"github.com/shahrzads/ml-application-test-master/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

// @title Member Offer Scoring API
// @version 1.0
// @description Derives loyalty member features, scores them and assigns an offer.

// @host localhost:8080
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// env carries what every subcommand needs after the root pre-run.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "offerctl",
		Short:         "Score loyalty members and assign offers",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Init(cfg.Logger.Level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			e.cfg = cfg
			e.log = logger.Get()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	rootCmd.AddCommand(summarizeCmd(e))
	rootCmd.AddCommand(featuresCmd(e))
	rootCmd.AddCommand(serveCmd(e))
	rootCmd.AddCommand(importCmd(e))
	rootCmd.AddCommand(migrateCmd(e))

	return rootCmd
}
