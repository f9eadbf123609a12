package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the key-value table.
type Entry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormKV stores values in a single table through gorm.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV expects the Entry table to be migrated already (see db.Open).
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(e.Value), nil
}

func (g *GormKV) Set(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (g *GormKV) Remove(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error
}
