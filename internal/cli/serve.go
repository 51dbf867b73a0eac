package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"porter/internal/config"
	httptransport "porter/internal/http"
	"porter/internal/http/middleware"
	"porter/internal/infra"
	"porter/internal/maps"
	"porter/internal/modules/address"
	"porter/internal/modules/booking"
	"porter/internal/modules/gazetteer"
	"porter/internal/modules/pricing"
	"porter/internal/modules/shipment"
	"porter/internal/modules/tracking"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdle          = 10 * time.Minute
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), e.cfg, e.log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if cfg.Maps.APIKey == "" {
		return fmt.Errorf("PORTER_MAPS_API_KEY is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		return fmt.Errorf("firebase init: %w", err)
	}

	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	defer rdb.Close()

	snap, err := loadGazetteer(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	geocoder, err := maps.NewGeocoder(cfg.Maps.APIKey)
	if err != nil {
		return err
	}
	routes, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		return err
	}

	addressSvc := address.NewService(geocoder, address.NewMatcher(snap), log.Named("address"))

	pricingFeed := pricing.NewCachedFeed(pricing.NewStore(db), rdb, cfg.Pricing.CacheTTL, log.Named("pricing"))
	pricingSvc := pricing.NewService(pricingFeed, log.Named("pricing"))

	shipmentSvc := shipment.NewService(shipment.NewStore(db), shipment.NewFeed(rdb, log.Named("feed")), log.Named("shipment"))

	bookingSvc := booking.NewService(pricingSvc, shipmentSvc, booking.Config{Facility: cfg.Booking.Facility}, log.Named("booking"))

	trackingMgr := tracking.NewManager(shipmentSvc, routes, tracking.Config{
		PollInterval:  cfg.Tracking.PollInterval,
		RouteCooldown: cfg.Tracking.RouteCooldown,
	}, cfg.Tracking.IdleTTL, log.Named("tracking"))
	defer trackingMgr.Shutdown()

	limiter := middleware.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Address:  addressSvc,
		Pricing:  pricingSvc,
		Booking:  bookingSvc,
		Shipment: shipmentSvc,
		Tracking: trackingMgr,
		Verifier: verifier,
		Limiter:  limiter,
		Log:      log.Named("http"),
	})
	server := httptransport.NewServer(cfg.HTTP.Addr, router, log.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		trackingMgr.RunReaper(gctx)
		return nil
	})
	g.Go(func() error {
		limiter.RunSweeper(gctx, limiterSweepInterval, limiterIdle)
		return nil
	})
	g.Go(func() error {
		return server.Run(gctx)
	})
	return g.Wait()
}

// loadGazetteer prefers the dataset directory when configured and falls
// back to the seeded tables.
func loadGazetteer(ctx context.Context, cfg config.Config, db *pgxpool.Pool, log *zap.Logger) (*gazetteer.Snapshot, error) {
	var (
		d   gazetteer.Dataset
		err error
	)
	source := "database"
	if cfg.Gazetteer.Dir != "" {
		source = cfg.Gazetteer.Dir
		d, err = gazetteer.LoadDir(ctx, cfg.Gazetteer.Dir)
	} else {
		d, err = gazetteer.NewStore(db).Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load gazetteer from %s: %w", source, err)
	}
	snap, err := gazetteer.NewSnapshot(d)
	if err != nil {
		return nil, fmt.Errorf("gazetteer from %s: %w", source, err)
	}
	regions, provinces, cities, barangays := snap.Counts()
	if cities == 0 {
		log.Warn("gazetteer is empty; addresses will not resolve", zap.String("source", source))
	}
	log.Info("gazetteer loaded",
		zap.String("source", source),
		zap.Int("regions", regions),
		zap.Int("provinces", provinces),
		zap.Int("cities", cities),
		zap.Int("barangays", barangays),
	)
	return snap, nil
}
