package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AdamBrutsaert/trinity-sub000/internal/auth"
	"github.com/AdamBrutsaert/trinity-sub000/internal/cache"
	"github.com/AdamBrutsaert/trinity-sub000/internal/config"
	"github.com/AdamBrutsaert/trinity-sub000/internal/httpapi"
	"github.com/AdamBrutsaert/trinity-sub000/internal/metrics"
	"github.com/AdamBrutsaert/trinity-sub000/internal/payment"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/AdamBrutsaert/trinity-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	cred := &repository.Credentials{
		Host:              cfg.PGHost,
		Port:              cfg.PGPort,
		User:              cfg.PGUser,
		Password:          cfg.PGPassword,
		DBName:            cfg.PGDBName,
		MigrationsDirPath: cfg.MigrationsDir,
	}

	repo, err := repository.NewRepository(cred)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cred); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("connected to postgres, migrations applied")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	productCache := cache.NewRedisCache(redisClient)

	authService, err := auth.NewService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("auth config error: %v", err)
	}

	paypalClient := payment.NewPayPalClient(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret)

	checkoutService := service.NewCheckoutService(repo, paypalClient)
	cartService := service.NewCartService(repo)
	productService := service.NewProductService(repo, productCache)
	reportService := service.NewReportService(repo)

	serverMetrics := metrics.NewServerMetrics()

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:      authService,
		Metrics:   serverMetrics,
		AuthH:     httpapi.NewAuthHandler(repo, authService),
		UsersH:    httpapi.NewUsersHandler(repo),
		CatalogH:  httpapi.NewCatalogHandler(repo),
		ProductsH: httpapi.NewProductsHandler(productService),
		CartH:     httpapi.NewCartHandler(cartService),
		OrdersH:   httpapi.NewOrdersHandler(checkoutService),
		InvoicesH: httpapi.NewInvoicesHandler(repo),
		ReportsH:  httpapi.NewReportsHandler(reportService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("trinity api starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
