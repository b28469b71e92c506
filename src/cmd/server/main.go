package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/cache"
	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/controller"
	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/middleware"
	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/router"
	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/repository/memory"
	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/repository/postgres"
	"github.com/api-sage/mortgage-quote-service/src/internal/config"
	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/quoting"
	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("server stopped with error", err, nil)
		os.Exit(1)
	}
	logger.Info("server stopped", nil)
}

func run(ctx context.Context, cfg config.Config) error {
	healthCheckers := map[string]router.HealthChecker{}

	var (
		customerRepo domain.CustomerRepository
		loanRepo     domain.LoanApplicationRepository
	)
	if cfg.Database.DSN != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()

		if cfg.Database.RunMigrations {
			if err := postgres.RunMigrations(connectCtx, cfg.Database.DSN); err != nil {
				return err
			}
			logger.Info("database migrations applied", nil)
		}

		db, err := postgres.Open(connectCtx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		customerRepo = postgres.NewCustomerRepository(db)
		loanRepo = postgres.NewLoanApplicationRepository(db)
		healthCheckers["database"] = postgres.NewHealthChecker(db)
	} else {
		logger.Warn("DATABASE_DSN not set, using in-memory storage", nil, nil)
		customerRepo = memory.NewCustomerRepository()
		memoryLoans := memory.NewLoanApplicationRepository()
		loanRepo = memoryLoans
		healthCheckers["database"] = memoryLoans
	}

	var tierCache quoting.TierCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisTierCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TierTTL)
		defer redisCache.Close()
		tierCache = redisCache
		healthCheckers["cache"] = redisCache
	} else {
		tierCache = cache.NewMemoryTierCache(cfg.Redis.TierCacheSize, cfg.Redis.TierTTL)
	}

	policy := quoting.NewCachedRiskPolicy(quoting.NewIncomeRiskPolicy(cfg.Quoting.BaseRate), tierCache)
	engine := quoting.NewEngine(policy, quoting.Terms{
		AnnualFeeRate:         cfg.Quoting.AnnualFeeRate,
		MaxDebtToIncome:       cfg.Quoting.MaxDebtToIncome,
		MinDownPaymentPercent: cfg.Quoting.MinDownPaymentPercent,
		MaxRiskTier:           domain.RiskTier(cfg.Quoting.MaxRiskTier),
		MaxTermYears:          cfg.Quoting.MaxTermYears,
	})

	customerService := services.NewCustomerService(customerRepo)
	loanApplicationService := services.NewLoanApplicationService(engine, customerRepo, loanRepo)

	opts := router.Options{HealthCheckers: healthCheckers}
	if cfg.Channel.Enabled() {
		opts.AuthMiddleware = middleware.BasicAuth(cfg.Channel.ID, cfg.Channel.Key)
	} else {
		logger.Warn("channel credentials not set, API is unauthenticated", nil, nil)
	}
	if cfg.RateLimit.Requests > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer limiter.Stop()
		opts.RateLimit = limiter.Middleware
	}

	handler := router.New(
		controller.NewCustomerController(customerService),
		controller.NewLoanApplicationController(loanApplicationService),
		opts,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
