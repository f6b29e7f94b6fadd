package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

func TestBuildSearchQuery(t *testing.T) {
	t.Run("No Filters Means No Predicates", func(t *testing.T) {
		query, args := buildSearchQuery(models.SearchFilters{})

		// Only the supplied filters constrain the result set; in particular
		// there is no implicit availability clause.
		assert.Equal(t, searchSelect+"\tORDER BY v.created_at DESC", query)
		assert.NotContains(t, query, "v.status")
		assert.Empty(t, args)
	})

	t.Run("Placeholders Track Argument Order", func(t *testing.T) {
		vehicleType := "van"
		passengers := 8
		priceMax := 150.0

		query, args := buildSearchQuery(models.SearchFilters{
			VehicleType: &vehicleType,
			Passengers:  &passengers,
			PriceMax:    &priceMax,
		})

		assert.Contains(t, query, "v.vehicle_type = $1")
		assert.Contains(t, query, "v.capacity_passengers >= $2")
		assert.Contains(t, query, "v.price_per_km <= $3")
		assert.Equal(t, []interface{}{"van", 8, 150.0}, args)
	})

	t.Run("Filter Values Never Enter The Query Text", func(t *testing.T) {
		hostile := "'; DROP TABLE vehicles; --"

		query, args := buildSearchQuery(models.SearchFilters{VehicleModel: &hostile})

		assert.NotContains(t, query, hostile)
		assert.Contains(t, query, "v.model = $1")
		assert.Equal(t, []interface{}{hostile}, args)
	})

	t.Run("With Driver Flag", func(t *testing.T) {
		withDriver := true
		query, args := buildSearchQuery(models.SearchFilters{WithDriver: &withDriver})
		assert.Contains(t, query, "v.driver_id IS NOT NULL")
		assert.Empty(t, args)

		withDriver = false
		query, args = buildSearchQuery(models.SearchFilters{WithDriver: &withDriver})
		assert.Contains(t, query, "v.driver_id IS NULL")
		assert.Empty(t, args)
	})

	t.Run("Location And Trip Filters Go Through Requested Bookings", func(t *testing.T) {
		pickup := "Colombo"
		tripType := "one_way"

		query, args := buildSearchQuery(models.SearchFilters{
			PickupLocation: &pickup,
			TripType:       &tripType,
		})

		assert.Contains(t, query, "SELECT vehicle_id FROM bookings WHERE pickup_location = $1 AND status = 'requested'")
		assert.Contains(t, query, "SELECT vehicle_id FROM bookings WHERE trip_type = $2 AND status = 'requested'")
		assert.Equal(t, []interface{}{"Colombo", "one_way"}, args)
	})
}

func TestSearchRepositorySearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSearchRepository(newMockDatabase(db))

	cols := []string{
		"vehicle_id", "owner_id", "driver_id", "vehicle_type", "model",
		"capacity_passengers", "capacity_luggage", "fuel_type", "license_plate",
		"price_per_km", "price_per_hour", "status", "image_url", "created_at", "updated_at",
		"owner_name", "driver_name",
		"driver_rating_avg", "driver_rating_count",
		"vehicle_rating_avg", "vehicle_rating_count",
		"owner_rating_avg", "owner_rating_count",
	}

	t.Run("Rating Aggregates", func(t *testing.T) {
		vehicleID := uuid.New()
		driverID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM vehicles v`).
			WithArgs("van").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				vehicleID, uuid.New(), driverID.String(), "van", "Toyota Hiace",
				12, 8, "diesel", "WP NA-4521",
				120.0, 1500.0, "available", nil, now, now,
				"Kamal Silva", "Sunil Fernando",
				4.5, 12, 4.2, 9, 4.8, 30,
			))

		vehicleType := "van"
		results, err := repo.Search(models.SearchFilters{VehicleType: &vehicleType})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, vehicleID, results[0].ID)
		assert.Equal(t, 4.5, results[0].DriverRatingAvg)
		assert.Equal(t, 12, results[0].DriverRatingCount)
		assert.Equal(t, 4.8, results[0].OwnerRatingAvg)
		require.NotNil(t, results[0].DriverID)
		assert.Equal(t, driverID, *results[0].DriverID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Matches", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM vehicles v`).
			WillReturnRows(sqlmock.NewRows(cols))

		results, err := repo.Search(models.SearchFilters{})
		require.NoError(t, err)
		assert.Empty(t, results)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
