package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/motoworld/storefront/internal/application/catalog"
	identityapp "github.com/motoworld/storefront/internal/application/identity"
	orderingapp "github.com/motoworld/storefront/internal/application/ordering"
	reviewapp "github.com/motoworld/storefront/internal/application/review"
	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/review"
	"github.com/motoworld/storefront/internal/infrastructure/ai"
	"github.com/motoworld/storefront/internal/infrastructure/auth"
	"github.com/motoworld/storefront/internal/infrastructure/config"
	"github.com/motoworld/storefront/internal/infrastructure/logger"
	"github.com/motoworld/storefront/internal/infrastructure/persistence"
	"github.com/motoworld/storefront/internal/interfaces/http/handler"
	"github.com/motoworld/storefront/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	summaryRepo := persistence.NewGormReviewSummaryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Token infrastructure. Without Redis the blacklist degrades to the
	// in-process implementation, which does not survive restarts.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis token blacklist connected")
	}

	// Review summarization. An empty API key disables the AI path and
	// summaries come from the rule-based fallback.
	var summarizer review.Summarizer = ai.NewOpenAISummarizer(cfg.AI, log)

	pricing := ordering.PricingPolicy{
		FreeShippingThreshold: decimal.NewFromFloat(cfg.Checkout.FreeShippingThreshold),
		FlatShippingRate:      decimal.NewFromFloat(cfg.Checkout.FlatShippingRate),
		TaxRate:               decimal.NewFromFloat(cfg.Checkout.TaxRate),
	}

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	cartService := orderingapp.NewCartService(cartRepo, productRepo, log)
	orderService := orderingapp.NewOrderService(orderRepo, cartRepo, productRepo, txManager, pricing, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, summaryRepo, productRepo, summarizer, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	engine := router.New(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Blacklist:  blacklist,

		System:   handler.NewSystemHandler(db, cfg.App.Name, version),
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Review:   handler.NewReviewHandler(reviewService, productService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
