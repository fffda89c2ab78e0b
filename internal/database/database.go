package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolioCMS/internal/config"
)

// InitDatabase 使用配置初始化 PostgreSQL 连接，并返回 GORM 数据库实例。
func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// InitSQLite 打开单文件 SQLite 数据库，适合单机部署。
func InitSQLite(path string) (*gorm.DB, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	return db, nil
}

// Open 根据存储驱动选择数据库。
func Open(driver string, cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch driver {
	case config.DriverPostgres:
		return InitDatabase(cfg)
	case config.DriverSQLite:
		return InitSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q is not backed by a database", driver)
	}
}

// Migrate 创建/更新本服务使用的全部表。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Entry{}, &Snapshot{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
