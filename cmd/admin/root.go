package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"portfolioCMS/internal/cms"
	"portfolioCMS/internal/config"
	"portfolioCMS/internal/database"
	"portfolioCMS/internal/storage"
)

// env 汇总子命令共用的连接，close 释放全部资源。
type env struct {
	cfg     *config.Config
	adapter *cms.Adapter
	store   *cms.Store
	db      *gorm.DB
	close   func()
}

var v = viper.New()

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "作品集内容维护工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("driver", "", "存储驱动（可选，默认读 STORAGE_DRIVER）")
	flags.String("key", "", "文档存储键（可选，默认读 STORAGE_KEY）")
	flags.String("dir", "", "file 驱动的数据目录（可选，默认读 STORAGE_DIR）")
	flags.String("sqlite-path", "", "SQLite 文件路径（可选，默认读 SQLITE_PATH）")
	for key, flag := range map[string]string{
		"storage.driver":       "driver",
		"storage.key":          "key",
		"storage.dir":          "dir",
		"database.sqlite_path": "sqlite-path",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newShowCommand(),
		newExportCommand(),
		newImportCommand(),
		newResetCommand(),
		newSnapshotsCommand(),
		newAssetsCommand(),
	)
	return root
}

// openEnv 根据配置打开文档存储；needDB 为 true 时总会打开数据库用于快照。
func openEnv(ctx context.Context, needDB bool) (*env, error) {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.Storage.Shared() {
		return nil, fmt.Errorf("storage driver %q is not shared with the api; use file, redis, postgres, sqlite or minio", cfg.Storage.Driver)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var closers []func()
	e := &env{cfg: cfg, close: func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}}

	res := storage.Resources{}
	if addr := cfg.Redis.Addr(); addr != "" && cfg.Storage.Driver == config.DriverRedis {
		client := redis.NewClient(&redis.Options{Addr: addr})
		closers = append(closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			e.close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		res.Redis = client
	}
	if cfg.Storage.Driver == config.DriverMinIO {
		client, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			e.close()
			return nil, fmt.Errorf("init storage client: %w", err)
		}
		res.MinIO = client
	}

	isDBDriver := cfg.Storage.Driver == config.DriverPostgres || cfg.Storage.Driver == config.DriverSQLite
	if isDBDriver || needDB {
		dbDriver := cfg.Storage.Driver
		if !isDBDriver {
			dbDriver = config.DriverSQLite
		}
		db, err := database.Open(dbDriver, cfg.Database)
		if err != nil {
			e.close()
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			e.close()
			return nil, err
		}
		e.db = db
		if isDBDriver {
			res.DB = db
		}
	}

	backend, err := storage.Open(cfg.Storage, res)
	if err != nil {
		e.close()
		return nil, fmt.Errorf("open content storage: %w", err)
	}
	e.adapter = cms.NewAdapter(backend, cfg.Storage.Key, logger)
	e.store = cms.NewStore(e.adapter, cms.WithLogger(logger))
	return e, nil
}
