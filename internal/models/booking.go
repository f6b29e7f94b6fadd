package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingOnTrip    BookingStatus = "on_trip"
	BookingCompleted BookingStatus = "completed"
)

// ErrInvalidStatus is returned when a status value is not one of the
// five known booking states.
var ErrInvalidStatus = errors.New("invalid booking status")

// ErrInvalidTransition is returned when a status change does not follow
// the booking lifecycle.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// bookingTransitions is the allowed lifecycle:
// requested -> approved | rejected, approved -> on_trip,
// on_trip -> completed. Rejected and completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingRequested: {BookingApproved, BookingRejected},
	BookingApproved:  {BookingOnTrip},
	BookingOnTrip:    {BookingCompleted},
	BookingRejected:  {},
	BookingCompleted: {},
}

// Valid reports whether s is a known booking status
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a customer request to use a vehicle for a time window
type Booking struct {
	ID             uuid.UUID     `json:"booking_id" db:"booking_id"`
	CustomerID     uuid.UUID     `json:"customer_id" db:"customer_id"`
	VehicleID      uuid.UUID     `json:"vehicle_id" db:"vehicle_id"`
	DriverID       *uuid.UUID    `json:"driver_id,omitempty" db:"driver_id"`
	OwnerID        uuid.UUID     `json:"owner_id" db:"owner_id"`
	PickupLocation string        `json:"pickup_location" db:"pickup_location"`
	DropLocation   string        `json:"drop_location" db:"drop_location"`
	PickupTime     time.Time     `json:"pickup_time" db:"pickup_time"`
	DropTime       time.Time     `json:"drop_time" db:"drop_time"`
	TripType       string        `json:"trip_type" db:"trip_type"`
	PriceEstimate  float64       `json:"price_estimate" db:"price_estimate"`
	ActualPrice    NullFloat64   `json:"actual_price,omitempty" db:"actual_price"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      NullTime      `json:"updated_at,omitempty" db:"updated_at"`
}

// BookingInput is the request payload for creating a booking
type BookingInput struct {
	VehicleID      uuid.UUID  `json:"vehicle_id" binding:"required"`
	DriverID       *uuid.UUID `json:"driver_id"`
	OwnerID        uuid.UUID  `json:"owner_id" binding:"required"`
	PickupLocation string     `json:"pickup_location" binding:"required"`
	DropLocation   string     `json:"drop_location" binding:"required"`
	PickupTime     time.Time  `json:"pickup_time" binding:"required"`
	DropTime       time.Time  `json:"drop_time" binding:"required"`
	TripType       string     `json:"trip_type"`
	PriceEstimate  float64    `json:"price_estimate"`
}

// BookingDetail is a booking joined with display names for listing views
type BookingDetail struct {
	Booking
	VehicleModel NullString `json:"vehicle_model" db:"vehicle_model"`
	VehicleType  NullString `json:"vehicle_type" db:"vehicle_type"`
	CustomerName NullString `json:"customer_name,omitempty" db:"customer_name"`
	DriverName   NullString `json:"driver_name,omitempty" db:"driver_name"`
	OwnerName    NullString `json:"owner_name,omitempty" db:"owner_name"`
}

// BookingRequestDetail is a booking as seen on the driver request list,
// with the customer's rating row for the booking if one exists.
type BookingRequestDetail struct {
	Booking
	CustomerName   NullString `json:"customer_name" db:"customer_name"`
	VehicleModel   NullString `json:"vehicle_model" db:"vehicle_model"`
	CustomerRating float64    `json:"customer_rating" db:"customer_rating"`
	CustomerReview string     `json:"customer_review" db:"customer_review"`
}
