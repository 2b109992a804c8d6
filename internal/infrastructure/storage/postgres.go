package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageItem is one visitor storage entry persisted in Postgres.
type StorageItem struct {
	Scope     string    `gorm:"primaryKey;column:scope"`
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StorageItem) TableName() string {
	return "visitor_storage"
}

// PostgresStore keeps visitor storage in a GORM-managed table.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var it StorageItem
	err := s.db.WithContext(ctx).Where("scope = ? AND key = ?", scope, key).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return it.Value, true, nil
}

// Set upserts; the last writer wins.
func (s *PostgresStore) Set(ctx context.Context, scope, key, value string) error {
	it := StorageItem{Scope: scope, Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&it).Error
}

func (s *PostgresStore) Delete(ctx context.Context, scope, key string) error {
	return s.db.WithContext(ctx).Where("scope = ? AND key = ?", scope, key).Delete(&StorageItem{}).Error
}
