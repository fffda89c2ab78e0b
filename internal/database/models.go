package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry 是键值表中的一行，保存整个内容文档的原始字节。
// Value 使用 text 而非 jsonb：损坏的数据也要能原样保留。
type Entry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// Snapshot 表示内容文档的一次历史快照。
type Snapshot struct {
	gorm.Model
	StorageKey    string         `gorm:"index;size:128"`
	Document      datatypes.JSON `gorm:"type:jsonb"`
	CorrelationID string         `gorm:"size:64"`
	Reason        string         `gorm:"size:64"`
}
