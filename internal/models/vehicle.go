package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus represents the availability of a vehicle
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleUnavailable VehicleStatus = "unavailable"
)

// Vehicle represents a vehicle listed by an owner or driver
type Vehicle struct {
	ID                 uuid.UUID     `json:"vehicle_id" db:"vehicle_id"`
	OwnerID            uuid.UUID     `json:"owner_id" db:"owner_id"`
	DriverID           *uuid.UUID    `json:"driver_id,omitempty" db:"driver_id"`
	VehicleType        string        `json:"vehicle_type" db:"vehicle_type"`
	Model              string        `json:"model" db:"model"`
	CapacityPassengers int           `json:"capacity_passengers" db:"capacity_passengers"`
	CapacityLuggage    int           `json:"capacity_luggage" db:"capacity_luggage"`
	FuelType           string        `json:"fuel_type" db:"fuel_type"`
	LicensePlate       string        `json:"license_plate" db:"license_plate"`
	PricePerKm         float64       `json:"price_per_km" db:"price_per_km"`
	PricePerHour       float64       `json:"price_per_hour" db:"price_per_hour"`
	Status             VehicleStatus `json:"status" db:"status"`
	ImageURL           NullString    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          NullTime      `json:"updated_at,omitempty" db:"updated_at"`
}

// VehicleInput is the request payload for creating or updating a vehicle
type VehicleInput struct {
	OwnerID            *uuid.UUID `json:"owner_id"`
	DriverID           *uuid.UUID `json:"driver_id"`
	VehicleType        string     `json:"vehicle_type" binding:"required"`
	Model              string     `json:"model" binding:"required"`
	CapacityPassengers int        `json:"capacity_passengers"`
	CapacityLuggage    int        `json:"capacity_luggage"`
	FuelType           string     `json:"fuel_type"`
	LicensePlate       string     `json:"license_plate" binding:"required"`
	PricePerKm         float64    `json:"price_per_km"`
	PricePerHour       float64    `json:"price_per_hour"`
	ImageURL           *string    `json:"image_url"`
}

// VehicleUpdate is the request payload for the vehicle update endpoints.
// Only the fields the dashboards edit are updatable.
type VehicleUpdate struct {
	Model        string        `json:"model" binding:"required"`
	PricePerKm   float64       `json:"price_per_km"`
	PricePerHour float64       `json:"price_per_hour"`
	Status       VehicleStatus `json:"status"`
}
