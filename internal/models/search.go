package models

import "github.com/google/uuid"

// SearchFilters is the open set of optional vehicle search criteria.
// A nil field imposes no constraint; supplied filters are ANDed.
type SearchFilters struct {
	VehicleType    *string
	VehicleModel   *string
	WithDriver     *bool
	Passengers     *int
	Luggage        *int
	FuelType       *string
	PriceMin       *float64
	PriceMax       *float64
	PickupLocation *string
	DropLocation   *string
	TripType       *string
}

// VehicleSearchResult is a vehicle annotated with owner/driver names and
// per-relation rating aggregates.
type VehicleSearchResult struct {
	Vehicle
	OwnerName          NullString `json:"owner_name" db:"owner_name"`
	DriverName         NullString `json:"driver_name" db:"driver_name"`
	DriverRatingAvg    float64    `json:"driver_rating_avg" db:"driver_rating_avg"`
	DriverRatingCount  int        `json:"driver_rating_count" db:"driver_rating_count"`
	VehicleRatingAvg   float64    `json:"vehicle_rating_avg" db:"vehicle_rating_avg"`
	VehicleRatingCount int        `json:"vehicle_rating_count" db:"vehicle_rating_count"`
	OwnerRatingAvg     float64    `json:"owner_rating_avg" db:"owner_rating_avg"`
	OwnerRatingCount   int        `json:"owner_rating_count" db:"owner_rating_count"`
}

// VehicleAdminView is a vehicle annotated with owner/driver names for the
// admin vehicle listing.
type VehicleAdminView struct {
	Vehicle
	OwnerName  NullString `json:"owner_name" db:"owner_name"`
	DriverName NullString `json:"driver_name" db:"driver_name"`
}

// BookingUpdateEvent is the realtime message sent to a customer when one
// of their bookings changes status.
type BookingUpdateEvent struct {
	Type      string        `json:"type"`
	BookingID uuid.UUID     `json:"booking_id"`
	Status    BookingStatus `json:"status"`
}
