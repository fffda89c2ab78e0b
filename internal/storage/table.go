package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolioCMS/internal/database"
)

// Table 将文档保存在数据库键值表（database.Entry）中。
type Table struct {
	db *gorm.DB
}

func NewTable(db *gorm.DB) *Table {
	return &Table{db: db}
}

func (t *Table) Get(ctx context.Context, key string) ([]byte, error) {
	var entry database.Entry
	if err := t.db.WithContext(ctx).Where(&database.Entry{Key: key}).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query entry %q: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (t *Table) Set(ctx context.Context, key string, value []byte) error {
	entry := database.Entry{Key: key, Value: string(value)}
	err := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert entry %q: %w", key, err)
	}
	return nil
}
