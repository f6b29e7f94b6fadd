package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// SearchRepository runs the customer-facing vehicle search. Every filter is
// rendered as a predicate fragment with a bind placeholder; user input never
// enters the SQL text itself.
type SearchRepository struct {
	db DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db DB) *SearchRepository {
	return &SearchRepository{db: db}
}

const searchSelect = `
	SELECT v.vehicle_id, v.owner_id, v.driver_id, v.vehicle_type, v.model,
		   v.capacity_passengers, v.capacity_luggage, v.fuel_type, v.license_plate,
		   v.price_per_km, v.price_per_hour, v.status, v.image_url, v.created_at, v.updated_at,
		   o.full_name AS owner_name, d.full_name AS driver_name,
		   COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.driver_id = v.driver_id), 0) AS driver_rating_avg,
		   (SELECT COUNT(*) FROM ratings r WHERE r.driver_id = v.driver_id) AS driver_rating_count,
		   COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.vehicle_id = v.vehicle_id), 0) AS vehicle_rating_avg,
		   (SELECT COUNT(*) FROM ratings r WHERE r.vehicle_id = v.vehicle_id) AS vehicle_rating_count,
		   COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.owner_id = v.owner_id), 0) AS owner_rating_avg,
		   (SELECT COUNT(*) FROM ratings r WHERE r.owner_id = v.owner_id) AS owner_rating_count
	FROM vehicles v
	LEFT JOIN owners o ON v.owner_id = o.owner_id
	LEFT JOIN drivers d ON v.driver_id = d.driver_id
`

// Search retrieves vehicles matching the supplied filters, newest
// listing first. A filter that is not supplied imposes no predicate.
func (r *SearchRepository) Search(filters models.SearchFilters) ([]models.VehicleSearchResult, error) {
	query, args := buildSearchQuery(filters)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.VehicleSearchResult{}
	for rows.Next() {
		var res models.VehicleSearchResult
		var driverID sql.NullString
		err := rows.Scan(
			&res.ID, &res.OwnerID, &driverID, &res.VehicleType, &res.Model,
			&res.CapacityPassengers, &res.CapacityLuggage, &res.FuelType, &res.LicensePlate,
			&res.PricePerKm, &res.PricePerHour, &res.Status, &res.ImageURL,
			&res.CreatedAt, &res.UpdatedAt,
			&res.OwnerName, &res.DriverName,
			&res.DriverRatingAvg, &res.DriverRatingCount,
			&res.VehicleRatingAvg, &res.VehicleRatingCount,
			&res.OwnerRatingAvg, &res.OwnerRatingCount,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			res.DriverID = &id
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// buildSearchQuery composes the WHERE clause from the supplied filters.
// Each condition is appended as a fragment with its own positional
// placeholder, so the argument list and the placeholder numbering always
// line up.
func buildSearchQuery(filters models.SearchFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	addArg := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filters.VehicleType != nil {
		addArg("v.vehicle_type = $%d", *filters.VehicleType)
	}
	if filters.VehicleModel != nil {
		addArg("v.model = $%d", *filters.VehicleModel)
	}
	if filters.WithDriver != nil {
		if *filters.WithDriver {
			conditions = append(conditions, "v.driver_id IS NOT NULL")
		} else {
			conditions = append(conditions, "v.driver_id IS NULL")
		}
	}
	if filters.Passengers != nil {
		addArg("v.capacity_passengers >= $%d", *filters.Passengers)
	}
	if filters.Luggage != nil {
		addArg("v.capacity_luggage >= $%d", *filters.Luggage)
	}
	if filters.FuelType != nil {
		addArg("v.fuel_type = $%d", *filters.FuelType)
	}
	if filters.PriceMin != nil {
		addArg("v.price_per_km >= $%d", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		addArg("v.price_per_km <= $%d", *filters.PriceMax)
	}

	// The location and trip-type filters match vehicles through their open
	// booking requests, so a vehicle with no requested booking never matches
	// them. Kept for compatibility with the existing clients.
	if filters.PickupLocation != nil {
		addArg("v.vehicle_id IN (SELECT vehicle_id FROM bookings WHERE pickup_location = $%d AND status = 'requested')", *filters.PickupLocation)
	}
	if filters.DropLocation != nil {
		addArg("v.vehicle_id IN (SELECT vehicle_id FROM bookings WHERE drop_location = $%d AND status = 'requested')", *filters.DropLocation)
	}
	if filters.TripType != nil {
		addArg("v.vehicle_id IN (SELECT vehicle_id FROM bookings WHERE trip_type = $%d AND status = 'requested')", *filters.TripType)
	}

	query := searchSelect
	if len(conditions) > 0 {
		query += "\tWHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += "\tORDER BY v.created_at DESC"
	return query, args
}
