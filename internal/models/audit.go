package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginAudit records a successful login with client device information
type LoginAudit struct {
	ID         uuid.UUID `json:"id" db:"id"`
	AccountID  uuid.UUID `json:"account_id" db:"account_id"`
	Role       Role      `json:"role" db:"role"`
	IPAddress  string    `json:"ip_address" db:"ip_address"`
	UserAgent  string    `json:"user_agent" db:"user_agent"`
	DeviceType string    `json:"device_type" db:"device_type"`
	OS         string    `json:"os" db:"os"`
	Browser    string    `json:"browser" db:"browser"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
