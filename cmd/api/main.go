package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhi-28-key/abhimusickeys-server/internal/adapter/repo"
	"github.com/abhi-28-key/abhimusickeys-server/internal/cache"
	"github.com/abhi-28-key/abhimusickeys-server/internal/entitlement"
	"github.com/abhi-28-key/abhimusickeys-server/internal/http/handlers"
	httpapi "github.com/abhi-28-key/abhimusickeys-server/internal/http/httpapi"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra/credentials"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra/firebase"
	"github.com/abhi-28-key/abhimusickeys-server/internal/infra/geoip"
	"github.com/abhi-28-key/abhimusickeys-server/internal/middleware"
	razorpay "github.com/abhi-28-key/abhimusickeys-server/internal/payments/razorpay"
	"github.com/abhi-28-key/abhimusickeys-server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	localCache, err := cache.Open(cfg.LocalCachePath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open local cache")
	}
	defer localCache.Close()

	files, err := storage.NewFileStore(cfg.DownloadsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare downloads storage")
	}

	entStore := repo.NewEntitlementStore(runner)
	access := entitlement.NewService(entStore, localCache, logger)

	keySecret := cfg.RazorpayKeySecret
	if keySecret == "" {
		creds := credentials.NewStore(runner)
		loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		keySecret, err = creds.RazorpayKeySecret(loadCtx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load razorpay key secret")
		}
	}
	if keySecret == "" {
		logger.Warn().Msg("razorpay key secret not configured; checkout will fail")
	}
	gateway := razorpay.NewClient(cfg.RazorpayKeyID, keySecret, cfg.RazorpayBaseURL)

	var country middleware.CountryLookup
	if cfg.GeoIPDBPath != "" {
		resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("geoip unavailable, falling back to default currency")
		} else {
			country = resolver.CountryCode
		}
	}

	app := &handlers.App{
		Logger:          logger,
		Access:          access,
		Cache:           localCache,
		Gateway:         gateway,
		Purchases:       repo.NewPurchaseRepository(runner),
		Downloads:       repo.NewDownloadRepository(runner),
		Files:           files,
		RazorpayKeyID:   cfg.RazorpayKeyID,
		DownloadBaseURL: cfg.DownloadBaseURL,
		DeniedRedirect:  cfg.DeniedRedirect,
		AdminEmails:     cfg.AdminEmails,
	}

	router := httpapi.NewRouter(httpapi.Deps{
		App:      app,
		Verifier: firebase.NewVerifier(cfg.FirebaseProjectID),
		Guard: &middleware.Guard{
			Checker: access,
			Cache:   localCache,
			Login:   cfg.LoginRedirect,
			Denied:  cfg.DeniedRedirect,
			Logger:  logger,
		},
		Country:         country,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != os.ErrClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
