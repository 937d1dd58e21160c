package models

import "time"

// Blob is one keyed document in the local key-value table
type Blob struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
