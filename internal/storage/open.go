package storage

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"portfolioCMS/internal/config"
)

// Resources 是构造后端时可能用到的外部连接，按驱动取用。
type Resources struct {
	DB    *gorm.DB
	Redis redis.UniversalClient
	MinIO *Client
	Fs    afero.Fs
}

// RedisKeyPrefix 是 redis 驱动下文档键的前缀。
const RedisKeyPrefix = "portfolio:cms:"

// Open 按 storage.driver 选择文档后端。
func Open(cfg config.StorageConfig, res Resources) (Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverNone:
		return Noop{}, nil
	case config.DriverFile:
		return NewFile(res.Fs, cfg.Dir)
	case config.DriverRedis:
		if res.Redis == nil {
			return nil, errors.New("redis driver requires a redis client")
		}
		return NewRedis(res.Redis, RedisKeyPrefix), nil
	case config.DriverPostgres, config.DriverSQLite:
		if res.DB == nil {
			return nil, fmt.Errorf("%s driver requires a database connection", cfg.Driver)
		}
		return NewTable(res.DB), nil
	case config.DriverMinIO:
		if res.MinIO == nil {
			return nil, errors.New("minio driver requires a minio client")
		}
		return NewObject(res.MinIO), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
