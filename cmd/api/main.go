package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"portfolioCMS/internal/api"
	"portfolioCMS/internal/auth"
	"portfolioCMS/internal/cms"
	"portfolioCMS/internal/config"
	"portfolioCMS/internal/database"
	"portfolioCMS/internal/site"
	"portfolioCMS/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	log.Printf("api bootstrapped with storage driver=%s key=%s", cfg.Storage.Driver, cfg.Storage.Key)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("ping redis: %v", err)
		}
		log.Printf("redis connection ready at %s", addr)
	}

	var minioClient *storage.Client
	if cfg.MinIO.Enabled() {
		client, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		minioClient = client
		log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)
	}

	var db *gorm.DB
	if cfg.Storage.Driver == config.DriverPostgres || cfg.Storage.Driver == config.DriverSQLite {
		conn, err := database.Open(cfg.Storage.Driver, cfg.Database)
		if err != nil {
			log.Fatalf("init database: %v", err)
		}
		if err := database.Migrate(conn); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
		db = conn
		log.Printf("database connection ready")
	}

	res := storage.Resources{DB: db, MinIO: minioClient}
	if redisClient != nil {
		res.Redis = redisClient
	}
	backend, err := storage.Open(cfg.Storage, res)
	if err != nil {
		log.Fatalf("open content storage: %v", err)
	}

	adapter := cms.NewAdapter(backend, cfg.Storage.Key, logger)
	if !adapter.Available() {
		logger.Warn("content storage unavailable, serving default content and discarding changes")
	}
	store := cms.NewStore(adapter, cms.WithLogger(logger))
	provider := site.NewProvider(store, logger)
	if err := provider.Init(ctx); err != nil {
		log.Fatalf("init content provider: %v", err)
	}
	defer provider.Teardown()

	gate, err := auth.NewGate(cfg.Auth.Username, cfg.Auth.Password)
	if err != nil {
		log.Fatalf("init auth gate: %v", err)
	}
	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		logger.Warn("JWT_SECRET not set, generating an ephemeral secret; sessions end on restart")
		if secret, err = auth.RandomSecret(); err != nil {
			log.Fatalf("generate jwt secret: %v", err)
		}
	}
	authService, err := auth.NewAuthService(secret, cfg.Auth.AccessTokenTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	deps := api.Deps{
		Provider:              provider,
		Gate:                  gate,
		AuthService:           authService,
		Redis:                 redisClient,
		Logger:                logger,
		StorageKey:            cfg.Storage.Key,
		ClamdAddr:             cfg.API.ClamdAddr,
		MaxUploadBytes:        cfg.API.MaxUploadBytes,
		AllowedOrigins:        cfg.API.AllowedOrigins,
		LoginRateLimitPerHour: cfg.Auth.LoginRateLimitPerHour,
	}
	if minioClient != nil {
		deps.Storage = minioClient
	}
	if redisClient != nil {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
		defer asynqClient.Close()
		deps.Queue = asynqClient
	}

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, deps)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		provider.Teardown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("api shutdown failed", slog.Any("error", err))
		}
	}()

	log.Printf("api listening on %s", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to start api server: %v", err)
	}
}
