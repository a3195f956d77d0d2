package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/chrisapx/farm-to-table-fav/internal/auth"
	"github.com/chrisapx/farm-to-table-fav/internal/cart"
	"github.com/chrisapx/farm-to-table-fav/internal/catalog"
	"github.com/chrisapx/farm-to-table-fav/internal/checkout"
	h "github.com/chrisapx/farm-to-table-fav/internal/http"
	"github.com/chrisapx/farm-to-table-fav/internal/notify"
	"github.com/chrisapx/farm-to-table-fav/internal/repository"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	RedisAddr    string
	KafkaBrokers string

	AdminEmail        string
	AdminPasswordHash string
	SessionTTL        time.Duration

	DB repository.Credentials
}

func loadConfig() *Config {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),

		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@farmtotable.local"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionTTL:        24 * time.Hour,

		DB: repository.Credentials{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              dbPort,
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "farmtotable"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("farm-to-table starting...")

	cfg := loadConfig()
	if cfg.AdminPasswordHash == "" {
		log.Fatal("ADMIN_PASSWORD_HASH is required")
	}

	repo, err := repository.NewRepository(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(&cfg.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var publisher notify.Publisher = notify.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := notify.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	cartStore := cart.NewStore()
	cartStore.Subscribe(func(snap cart.Snapshot) {
		log.Printf("cart changed: %d lines, count=%d, total=%.2f", len(snap.Lines), snap.Count, snap.Total)
	})

	catalogService := catalog.NewService(repo, catalog.NewRedisCache(redisClient))
	checkoutService := checkout.NewService(cartStore, repo, publisher)
	authManager := auth.NewManager(
		auth.NewRedisSessionStore(redisClient),
		cfg.AdminEmail,
		cfg.AdminPasswordHash,
		cfg.SessionTTL,
	)

	router := h.NewRouter(h.Handlers{
		Catalog:  h.NewCatalogHandler(catalogService),
		Cart:     h.NewCartHandler(cartStore),
		Checkout: h.NewCheckoutHandler(checkoutService),
		Admin:    h.NewAdminHandler(authManager, repo, repo, catalogService),
		Manager:  authManager,
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "farm-to-table"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("farm-to-table listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
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
