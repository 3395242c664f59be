package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JimJafar/pension-tracker/internal/config"
	"github.com/JimJafar/pension-tracker/internal/database"
	"github.com/JimJafar/pension-tracker/internal/logger"
	"github.com/JimJafar/pension-tracker/internal/middleware"
	"github.com/JimJafar/pension-tracker/internal/quotes"
	"github.com/JimJafar/pension-tracker/internal/server"
	"github.com/JimJafar/pension-tracker/internal/services"
	"github.com/JimJafar/pension-tracker/internal/validator"
)

// @title           Pension Tracker API
// @version         1.0
// @description     Track pensions, reconcile regular contributions against their schedule, and value SIPP holdings at cached market prices.

// @host      localhost:3000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. Browsers send the pension_session cookie instead.

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := seedInitialUser(services.NewUserService(db), appConfig); err != nil {
		return err
	}

	// One quote service per process: every provider call is queued through it.
	fetcher := quotes.NewAlphaVantageFetcher(quotes.AlphaVantageConfig{
		APIKey:       appConfig.AlphaVantageAPIKey,
		BaseURL:      appConfig.AlphaVantageBaseURL,
		SymbolSuffix: appConfig.AlphaVantageSymbolSuffix,
		Currency:     appConfig.AlphaVantageCurrency,
	}, &http.Client{})
	quoteService := quotes.NewService(fetcher, quotes.Config{
		TTL:             appConfig.QuoteCacheTTL,
		RequestInterval: appConfig.QuoteRequestInterval,
		FetchTimeout:    appConfig.QuoteFetchTimeout,
		Logger:          logger.Named("quotes"),
	})
	defer quoteService.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go sweepQuoteCache(ctx, quoteService, appConfig.QuoteCacheTTL)

	validator.Register()
	sessions := middleware.NewSessions(appConfig.SessionSecret, appConfig.SessionTTL, appConfig.IsProduction())
	router := server.NewRouter(db, quoteService, sessions, server.Options{
		CORSOrigin:         appConfig.CORSOrigin,
		LoginRatePerMinute: appConfig.LoginRatePerMinute,
		Swagger:            !appConfig.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting pension tracker API on port %s", appConfig.Port)
		if !appConfig.IsProduction() {
			log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func seedInitialUser(users services.UserServicer, cfg *config.Config) error {
	user, created, err := users.EnsureUser(cfg.InitialUsername, cfg.InitialPassword)
	if err != nil {
		return fmt.Errorf("failed to seed initial user: %w", err)
	}
	if created {
		logger.Get().Infow("Seeded initial user", "username", user.Username)
	}
	return nil
}

// sweepQuoteCache drops expired quotes once per TTL until ctx is done.
func sweepQuoteCache(ctx context.Context, svc *quotes.Service, ttl time.Duration) {
	if ttl <= 0 {
		ttl = quotes.DefaultTTL
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	log := logger.Named("quotes")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := svc.ClearStaleCache(); removed > 0 {
				log.Debugw("cleared stale quotes", "removed", removed)
			}
		}
	}
}
