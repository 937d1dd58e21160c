package db

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/sendit/internal/models"
)

// KV is a durable slot of keyed blobs.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// SQLiteKV keeps blobs in the blobs table of a local SQLite file.
type SQLiteKV struct {
	db *gorm.DB
}

func NewSQLiteKV(db *gorm.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (kv *SQLiteKV) Get(key string) ([]byte, bool, error) {
	var blob models.Blob
	err := kv.db.Where(&models.Blob{Key: key}).Take(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return blob.Value, true, nil
}

func (kv *SQLiteKV) Put(key string, value []byte) error {
	blob := models.Blob{Key: key, Value: value, UpdatedAt: time.Now()}
	err := kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// MemoryKV is a process-local KV, used by tests and --memory runs.
type MemoryKV struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: make(map[string][]byte)}
}

func (kv *MemoryKV) Get(key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (kv *MemoryKV) Put(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.blobs[key] = append([]byte(nil), value...)
	return nil
}
