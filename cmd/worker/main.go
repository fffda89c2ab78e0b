package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"portfolioCMS/internal/cms"
	"portfolioCMS/internal/config"
	"portfolioCMS/internal/database"
	"portfolioCMS/internal/metrics"
	"portfolioCMS/internal/storage"
	"portfolioCMS/internal/tasks"
	"portfolioCMS/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 快照必须读到 api 进程写入的文档，进程内驱动会得到一份自己的默认内容。
	if !cfg.Storage.Shared() {
		log.Fatalf("worker requires a shared storage driver, got %q", cfg.Storage.Driver)
	}

	redisAddr := cfg.Redis.Addr()
	if redisAddr == "" {
		log.Fatal("worker requires REDIS_HOST")
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	var storageClient *storage.Client
	if cfg.MinIO.Enabled() {
		client, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		storageClient = client
		log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)
	}

	// 快照总是写入数据库；文档存储不是数据库时使用 SQLite 文件。
	dbDriver := cfg.Storage.Driver
	if dbDriver != config.DriverPostgres {
		dbDriver = config.DriverSQLite
	}
	db, err := database.Open(dbDriver, cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	log.Println("database connection ready for worker")

	backend, err := storage.Open(cfg.Storage, storage.Resources{
		DB:    documentDB(cfg.Storage.Driver, db),
		Redis: redisClient,
		MinIO: storageClient,
	})
	if err != nil {
		log.Fatalf("open content storage: %v", err)
	}
	adapter := cms.NewAdapter(backend, cfg.Storage.Key, logger)

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
	})

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePortfolioSnapshot, worker.NewSnapshotTaskHandler(adapter, database.NewSnapshotRepository(db), logger))
	if storageClient != nil {
		mux.Handle(tasks.TypePortfolioPDF, worker.NewPDFTaskHandler(storageClient, redisClient, logger, cfg.Worker.FrontendBaseURL, nil))
	} else {
		logger.Warn("minio not configured, pdf export tasks will not be processed")
	}

	logger.Info("worker service started", slog.String("redis_addr", redisAddr))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}

func documentDB(driver string, db *gorm.DB) *gorm.DB {
	if driver == config.DriverPostgres || driver == config.DriverSQLite {
		return db
	}
	return nil
}
