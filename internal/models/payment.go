package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the settlement state of a payment.
// Payments are recorded after the fact, so only completed is written.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
)

// Payment represents a settled customer payment for a booking.
// Payments are immutable once created.
type Payment struct {
	ID            uuid.UUID     `json:"payment_id" db:"payment_id"`
	BookingID     uuid.UUID     `json:"booking_id" db:"booking_id"`
	Amount        float64       `json:"amount" db:"amount"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	TransactionID string        `json:"transaction_id" db:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// PaymentInput is the request payload for recording a payment
type PaymentInput struct {
	BookingID     uuid.UUID `json:"booking_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	TransactionID string    `json:"transaction_id"`
}

// PaymentDetail is a payment joined with customer display data for the
// admin payments overview.
type PaymentDetail struct {
	Payment
	CustomerName NullString `json:"customer_name" db:"customer_name"`
}
