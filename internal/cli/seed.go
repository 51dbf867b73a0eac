package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"porter/internal/infra"
	"porter/internal/modules/gazetteer"
	"porter/internal/modules/pricing"
)

func newSeedGazetteerCmd(e *env) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed-gazetteer",
		Short: "Replace the stored gazetteer with the JSON dataset in --dir",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := gazetteer.LoadDir(ctx, dir)
			if err != nil {
				return err
			}
			snap, err := gazetteer.NewSnapshot(d)
			if err != nil {
				return fmt.Errorf("invalid gazetteer dataset: %w", err)
			}
			db, err := infra.NewDB(ctx, e.cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := gazetteer.NewStore(db).Replace(ctx, d); err != nil {
				return err
			}
			regions, provinces, cities, barangays := snap.Counts()
			e.log.Info("gazetteer seeded",
				zap.Int("regions", regions),
				zap.Int("provinces", provinces),
				zap.Int("cities", cities),
				zap.Int("barangays", barangays),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data/gazetteer", "directory holding regions.json, provinces.json, cities.json and barangays.json")
	return cmd
}

func newSeedPricingCmd(e *env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-pricing",
		Short: "Replace the stored pricing feed with --file and drop cached lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			regions, err := pricing.LoadFile(file)
			if err != nil {
				return err
			}
			db, err := infra.NewDB(ctx, e.cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pricing.NewStore(db).Replace(ctx, regions); err != nil {
				return err
			}
			e.log.Info("pricing feed seeded", zap.Int("regions", len(regions)))

			rdb, err := infra.NewRedis(ctx, e.cfg.Redis.Addr)
			if err != nil {
				e.log.Warn("pricing cache not invalidated; entries expire on their own", zap.Error(err))
				return nil
			}
			defer rdb.Close()
			cache := pricing.NewCachedFeed(nil, rdb, e.cfg.Pricing.CacheTTL, e.log)
			return cache.Invalidate(ctx)
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/pricing.json", "JSON pricing feed")
	return cmd
}
