package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_caller_key;size:255;not null"` // The idempotency key from client
	CallerKey    string    `gorm:"uniqueIndex:idx_idempotency_caller_key;size:64;not null"`  // Digest of the caller's token, or client IP
	Endpoint     string    `gorm:"size:255;not null"`                                       // Method and request path (e.g., "PUT /api/v1/bookings/buddha-lamp/101")
	ResponseCode int       `gorm:"not null"`                                                // HTTP status code of original response
	ResponseBody string    `gorm:"type:text"`                                               // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// BeforeCreate generates a UUID before storing a key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
