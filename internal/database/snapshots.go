package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrSnapshotNotFound 表示指定的快照不存在。
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository 读写内容文档的历史快照。
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create 写入一条快照并回填 ID。
func (r *SnapshotRepository) Create(ctx context.Context, snapshot *Snapshot) error {
	if err := r.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return nil
}

// List 按时间倒序列出某个存储键的快照。
func (r *SnapshotRepository) List(ctx context.Context, storageKey string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	var snapshots []Snapshot
	err := r.db.WithContext(ctx).
		Where(&Snapshot{StorageKey: storageKey}).
		Order("id desc").
		Limit(limit).
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snapshots, nil
}

// Get 按 ID 读取快照。
func (r *SnapshotRepository) Get(ctx context.Context, id uint) (*Snapshot, error) {
	var snapshot Snapshot
	if err := r.db.WithContext(ctx).First(&snapshot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get snapshot %d: %w", id, err)
	}
	return &snapshot, nil
}
