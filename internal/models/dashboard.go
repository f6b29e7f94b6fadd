package models

import (
	"time"

	"github.com/google/uuid"
)

// DayCount is a count of bookings bucketed by calendar day
type DayCount struct {
	Day   time.Time `json:"day" db:"day"`
	Count int       `json:"count" db:"count"`
}

// MonthCount is a count of bookings bucketed by calendar month,
// optionally with booked revenue for the admin view.
type MonthCount struct {
	Month   time.Time   `json:"month" db:"month"`
	Count   int         `json:"count" db:"count"`
	Revenue NullFloat64 `json:"revenue,omitempty" db:"revenue"`
}

// YearCount is a count of bookings bucketed by calendar year
type YearCount struct {
	Year    time.Time   `json:"year" db:"year"`
	Count   int         `json:"count" db:"count"`
	Revenue NullFloat64 `json:"revenue,omitempty" db:"revenue"`
}

// HourCount is a count of bookings bucketed by hour of day
type HourCount struct {
	Hour  int `json:"hour" db:"hour"`
	Count int `json:"count" db:"count"`
}

// VehicleTypeCount is a count of bookings grouped by vehicle type
type VehicleTypeCount struct {
	VehicleType string      `json:"vehicle_type" db:"vehicle_type"`
	Count       int         `json:"count" db:"count"`
	Revenue     NullFloat64 `json:"revenue,omitempty" db:"revenue"`
}

// VehicleCount is a per-vehicle booking count
type VehicleCount struct {
	VehicleID uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Model     string    `json:"model" db:"model"`
	Count     int       `json:"count" db:"count"`
}

// VehicleRevenue is per-vehicle completed-payment revenue
type VehicleRevenue struct {
	VehicleID uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Model     string    `json:"model" db:"model"`
	Revenue   float64   `json:"revenue" db:"revenue"`
}

// LocationCount is a count of bookings grouped by pickup location
type LocationCount struct {
	PickupLocation string      `json:"pickup_location" db:"pickup_location"`
	Count          int         `json:"bookings" db:"bookings"`
	Revenue        NullFloat64 `json:"revenue,omitempty" db:"revenue"`
}

// PeriodCounts holds booking counts for the calendar periods containing now
type PeriodCounts struct {
	Today     int `json:"bookings_today"`
	ThisWeek  int `json:"bookings_this_week"`
	ThisMonth int `json:"bookings_this_month"`
	ThisYear  int `json:"bookings_this_year"`
}

// TopDriver is an admin dashboard row ranking drivers by completed bookings
type TopDriver struct {
	DriverID      uuid.UUID `json:"driver_id" db:"driver_id"`
	FullName      string    `json:"full_name" db:"full_name"`
	TotalBookings int       `json:"total_bookings" db:"total_bookings"`
	AvgRating     float64   `json:"avg_rating" db:"avg_rating"`
}

// TopVehicle is an admin dashboard row ranking vehicles by completed bookings
type TopVehicle struct {
	VehicleID     uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Model         string    `json:"model" db:"model"`
	VehicleType   string    `json:"vehicle_type" db:"vehicle_type"`
	TotalBookings int       `json:"total_bookings" db:"total_bookings"`
	AvgRating     float64   `json:"avg_rating" db:"avg_rating"`
}

// CustomerDashboard is the customer's aggregate view
type CustomerDashboard struct {
	TotalBookings     int             `json:"total_bookings"`
	CompletedBookings int             `json:"completed_bookings"`
	TotalPaid         float64         `json:"total_paid"`
	UpcomingBookings  []BookingDetail `json:"upcoming_bookings"`
}

// DriverDashboard is the driver's aggregate view
type DriverDashboard struct {
	TotalBookings        int                `json:"total_bookings"`
	TotalVehicles        int                `json:"total_vehicles"`
	TotalReviews         int                `json:"total_reviews"`
	AvgRating            float64            `json:"avg_rating"`
	TotalEarnings        float64            `json:"total_earnings"`
	BookingsVsDays       []DayCount         `json:"bookings_vs_days"`
	BookingsVsTime       []HourCount        `json:"bookings_vs_time"`
	BookingsToday        int                `json:"bookings_today"`
	BookingsThisWeek     int                `json:"bookings_this_week"`
	BookingsThisMonth    int                `json:"bookings_this_month"`
	BookingsThisYear     int                `json:"bookings_this_year"`
	BookingsByVehicleTyp []VehicleTypeCount `json:"bookings_by_vehicle_type"`
	BookingsPerVehicle   []VehicleCount     `json:"bookings_per_vehicle"`
}

// OwnerDashboard is the owner's aggregate view
type OwnerDashboard struct {
	TotalTrips           int                `json:"total_trips"`
	TotalRevenue         float64            `json:"total_revenue"`
	AvgRating            float64            `json:"avg_rating"`
	BookingsVsDays       []DayCount         `json:"bookings_vs_days"`
	BookingsVsMonth      []MonthCount       `json:"bookings_vs_month"`
	BookingsByTime       []HourCount        `json:"bookings_by_time"`
	BookingsByVehicleTyp []VehicleTypeCount `json:"bookings_by_vehicle_type"`
	BookingsPerVehicle   []VehicleCount     `json:"bookings_per_vehicle"`
	RevenuePerVehicle    []VehicleRevenue   `json:"revenue_per_vehicle"`
	BookingsToday        int                `json:"bookings_today"`
	BookingsThisWeek     int                `json:"bookings_this_week"`
	BookingsThisMonth    int                `json:"bookings_this_month"`
	BookingsThisYear     int                `json:"bookings_this_year"`
}

// AdminDashboard is the platform-wide aggregate view
type AdminDashboard struct {
	TotalCustomers       int                `json:"total_customers"`
	TotalDrivers         int                `json:"total_drivers"`
	TotalOwners          int                `json:"total_owners"`
	TotalBookings        int                `json:"total_bookings"`
	TotalRevenue         float64            `json:"total_revenue"`
	BookingsByDay        []DayCount         `json:"bookings_by_day"`
	BookingsByMonth      []MonthCount       `json:"bookings_by_month"`
	BookingsByYear       []YearCount        `json:"bookings_by_year"`
	BookingsByVehicleTyp []VehicleTypeCount `json:"bookings_by_vehicle_type"`
	BookingsByLocation   []LocationCount    `json:"bookings_by_location"`
	TopDrivers           []TopDriver        `json:"top_drivers"`
	TopVehicles          []TopVehicle       `json:"top_vehicles"`
}
