package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rivenshop/storefront/internal/config"
	"github.com/rivenshop/storefront/internal/db"
	"github.com/rivenshop/storefront/internal/events"
	"github.com/rivenshop/storefront/internal/httpserver"
	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/palette"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/search"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/validate"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	esClient, err := search.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init: %v", err)
	}

	r := repo.New(gdb)

	discounts := &service.DiscountService{Repo: r}
	recommendations := &service.RecommendationService{Repo: r}
	orders := &service.OrderService{Repo: r, Producer: producer}
	catalog := &service.CatalogService{Repo: r, Producer: producer, ES: esClient}
	analytics := &service.AnalyticsService{Repo: r, Producer: producer}
	theme := &service.ThemeService{Repo: r}
	crossSell := &service.CrossSellService{Repo: r}
	checkout := &service.CheckoutService{
		Repo:           r,
		Producer:       producer,
		Discounts:      discounts,
		Recommendation: recommendations,
		ShippingFee:    cfg.ShippingFee,
	}
	admin := &service.AdminService{
		Repo:              r,
		BootstrapUsername: cfg.AdminUsername,
		BootstrapPassword: cfg.AdminPassword,
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:            gdb,
		SessionSecret: cfg.SessionSecret,
		Storefront: &httpserver.StorefrontHTTP{
			Repo:            r,
			ES:              esClient,
			CrossSell:       crossSell,
			Discounts:       discounts,
			Recommendations: recommendations,
			Theme:           theme,
			Analytics:       analytics,
		},
		Checkout:       &httpserver.CheckoutHTTP{Svc: checkout, Orders: orders},
		Auth:           &httpserver.AuthHTTP{Admin: admin, Secret: cfg.SessionSecret},
		AdminCatalog:   &httpserver.AdminCatalogHTTP{Svc: catalog, Repo: r},
		AdminOrders:    &httpserver.AdminOrdersHTTP{Svc: orders, Repo: r},
		AdminCustomers: &httpserver.AdminCustomersHTTP{Repo: r, Recommendations: recommendations},
		AdminDiscounts: &httpserver.AdminDiscountsHTTP{Repo: r},
		AdminTheme:     &httpserver.AdminThemeHTTP{Theme: theme, Palette: palette.NewClient(cfg.PaletteAPIURL)},
		AdminUsers:     &httpserver.AdminUsersHTTP{Svc: admin},
		AdminAnalytics: &httpserver.AdminAnalyticsHTTP{Svc: analytics},
		Uploads:        &httpserver.UploadsHTTP{Dir: cfg.UploadDir},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
