package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response of a print request so a retried
// request with the same key does not print the labels twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" db:"id"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_key_operator;size:255;not null" db:"key"`
	OperatorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_key_operator" db:"operator_id"`
	Endpoint     string    `gorm:"size:255;not null" db:"endpoint"` // e.g. "POST /api/v1/printer/print"
	RequestHash  string    `gorm:"size:64" db:"request_hash"`
	ResponseCode int       `gorm:"not null" db:"response_code"`
	ResponseBody string    `gorm:"type:text" db:"response_body"`
	CreatedAt    time.Time `gorm:"autoCreateTime" db:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" db:"expires_at"`
}

// BeforeCreate generates a UUID before storing the key
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

// IsPending reports whether the request holding the key has not finished.
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
