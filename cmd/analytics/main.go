package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/holasaidlola/shop-analytics/internal/api"
	"github.com/holasaidlola/shop-analytics/internal/pkg/config"
	"github.com/holasaidlola/shop-analytics/internal/pkg/logger"
	"github.com/holasaidlola/shop-analytics/internal/pkg/store"
	"github.com/holasaidlola/shop-analytics/internal/service/analytics"
	"github.com/holasaidlola/shop-analytics/internal/service/geo"
	"github.com/holasaidlola/shop-analytics/internal/service/orders"
	"github.com/holasaidlola/shop-analytics/internal/service/shopify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geoService := geo.NewGeoService()
	if err := geoService.LoadReferenceFile(cfg.Geo.ZipcodesPath); err != nil {
		logger.Fatal(ctx, fmt.Errorf("load zip reference: %w", err))
	}

	st := store.NewStore()
	shopifyService := shopify.NewShopifyService(cfg.Shopify, cfg.Server.RequestTimeout)
	ordersService := orders.NewOrdersService(shopifyService, st, geoService, cfg.Demo)
	analyticsService := analytics.NewAnalyticsService(geoService)

	// the dashboard must never serve a partial table: the initial fetch
	// happens before the first request and any failure is fatal
	if _, err := ordersService.Refresh(ctx); err != nil {
		logger.Fatal(ctx, fmt.Errorf("initial order fetch: %w", err))
	}

	apiService, err := api.NewAPIService(cfg, ordersService, analyticsService)
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("init api: %w", err))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Infof(egCtx, "serving on %s", cfg.Server.Addr)
		return apiService.Serve(cfg.Server.Addr)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return apiService.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal(context.Background(), err)
	}
}
