package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nordlink/regsync/internal/model"
)

var syncConcurrency int

var syncCmd = &cobra.Command{
	Use:   "sync <regcode> [regcode...]",
	Short: "Sync companies from the registry into the Notion company database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSyncEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return syncCodes(ctx, args, syncConcurrency, func(ctx context.Context, regcode string) (*model.SyncOutcome, error) {
			return env.Syncer.SyncByRegcode(ctx, regcode)
		})
	},
}

func init() {
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 3, "max concurrent company syncs")
	rootCmd.AddCommand(syncCmd)
}

// syncFunc is the callback signature for syncing one registry code.
type syncFunc func(ctx context.Context, regcode string) (*model.SyncOutcome, error)

// syncCodes processes registry codes concurrently using the given sync
// function. An individual failure is logged and counted, never aborts the
// batch.
func syncCodes(ctx context.Context, codes []string, concurrency int, sync syncFunc) error {
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("syncing companies",
		zap.Int("companies", len(codes)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, code := range codes {
		g.Go(func() error {
			log := zap.L().With(zap.String("regcode", code))

			outcome, err := sync(gctx, code)
			if err != nil {
				failed.Add(1)
				log.Error("sync failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			if outcome.Warning() {
				log.Warn(outcome.Message())
			} else {
				log.Info(outcome.Message())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "sync batch")
	}

	zap.L().Info("sync complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)

	if succeeded.Load() == 0 && failed.Load() > 0 {
		return eris.New("all syncs failed")
	}
	return nil
}
