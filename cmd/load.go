package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/fetcher"
	"github.com/nordlink/regsync/internal/register"
)

var loadUseCSV bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Download the registry open data feed into the local cache",
	Long:  "Replaces the cached registry snapshot with a fresh copy of the full feed. Runs automatically before a sync when the cache is stale, but can be forced here.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			RateLimiters: fetcher.DefaultRateLimiters(),
		})
		loader := register.NewLoader(f, st)

		var n int64
		if loadUseCSV {
			n, err = loader.LoadCSV(ctx, cfg.Registry.CSVURL)
		} else {
			n, err = loader.Load(ctx, cfg.Registry.JSONURL)
		}
		if err != nil {
			return eris.Wrap(err, "load feed")
		}

		zap.L().Info("feed loaded", zap.Int64("companies", n), zap.Bool("csv", loadUseCSV))
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&loadUseCSV, "csv", false, "load the reduced CSV feed instead of the full JSON feed")
	rootCmd.AddCommand(loadCmd)
}
