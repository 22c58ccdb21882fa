package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var autofillCmd = &cobra.Command{
	Use:   "autofill <page-id> [page-id...]",
	Short: "Fill existing Notion company pages from their registry code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSyncEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		for _, pageID := range args {
			log := zap.L().With(zap.String("page_id", pageID))

			outcome, err := env.Syncer.AutofillPage(ctx, pageID)
			if err != nil {
				log.Error("autofill failed", zap.Error(err))
				continue
			}

			if outcome.Warning() {
				log.Warn(outcome.Message())
			} else {
				log.Info(outcome.Message())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autofillCmd)
}
