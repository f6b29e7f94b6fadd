package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating represents a customer's score and review for a completed booking.
// A rating row references the driver, owner and vehicle independently so
// each side's average can be computed on its own.
type Rating struct {
	ID         uuid.UUID  `json:"rating_id" db:"rating_id"`
	BookingID  uuid.UUID  `json:"booking_id" db:"booking_id"`
	CustomerID uuid.UUID  `json:"customer_id" db:"customer_id"`
	DriverID   *uuid.UUID `json:"driver_id,omitempty" db:"driver_id"`
	OwnerID    uuid.UUID  `json:"owner_id" db:"owner_id"`
	VehicleID  uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	Rating     float64    `json:"rating" db:"rating"`
	Review     NullString `json:"review,omitempty" db:"review"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// RatingInput is the request payload for submitting a rating
type RatingInput struct {
	BookingID uuid.UUID  `json:"booking_id" binding:"required"`
	DriverID  *uuid.UUID `json:"driver_id"`
	OwnerID   uuid.UUID  `json:"owner_id" binding:"required"`
	VehicleID uuid.UUID  `json:"vehicle_id" binding:"required"`
	Rating    float64    `json:"rating" binding:"required"`
	Review    string     `json:"review"`
}

// RatingDetail is a rating joined with display names for the admin overview
type RatingDetail struct {
	Rating
	CustomerName NullString `json:"customer_name" db:"customer_name"`
	DriverName   NullString `json:"driver_name" db:"driver_name"`
	OwnerName    NullString `json:"owner_name" db:"owner_name"`
	VehicleModel NullString `json:"vehicle_model" db:"vehicle_model"`
}
