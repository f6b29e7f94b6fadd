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

var vehicleCols = []string{
	"vehicle_id", "owner_id", "driver_id", "vehicle_type", "model",
	"capacity_passengers", "capacity_luggage", "fuel_type", "license_plate",
	"price_per_km", "price_per_hour", "status", "image_url", "created_at", "updated_at",
}

func TestVehicleRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(newMockDatabase(db))

	t.Run("Starts As Available", func(t *testing.T) {
		vehicle := &models.Vehicle{
			OwnerID:            uuid.New(),
			VehicleType:        "van",
			Model:              "Toyota Hiace",
			CapacityPassengers: 12,
			CapacityLuggage:    8,
			FuelType:           "diesel",
			LicensePlate:       "WP NA-4521",
			PricePerKm:         120,
			PricePerHour:       1500,
		}

		mock.ExpectQuery(`INSERT INTO vehicles`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "created_at"}).
				AddRow("available", time.Now()))

		require.NoError(t, repo.Create(vehicle))
		assert.Equal(t, models.VehicleAvailable, vehicle.Status)
		assert.NotEqual(t, uuid.Nil, vehicle.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVehicleRepositoryUpdateByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(newMockDatabase(db))

	update := models.VehicleUpdate{
		Model:        "Toyota Hiace GL",
		PricePerKm:   135,
		PricePerHour: 1600,
		Status:       models.VehicleUnavailable,
	}

	t.Run("Success", func(t *testing.T) {
		vehicleID := uuid.New()
		ownerID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`UPDATE vehicles`).
			WithArgs("Toyota Hiace GL", 135.0, 1600.0, "unavailable", vehicleID, ownerID).
			WillReturnRows(sqlmock.NewRows(vehicleCols).AddRow(
				vehicleID, ownerID, nil, "van", "Toyota Hiace GL",
				12, 8, "diesel", "WP NA-4521",
				135.0, 1600.0, "unavailable", nil, now, now,
			))

		vehicle, err := repo.UpdateByOwner(vehicleID, ownerID, update)
		require.NoError(t, err)
		assert.Equal(t, models.VehicleUnavailable, vehicle.Status)
		assert.Equal(t, "Toyota Hiace GL", vehicle.Model)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Omitted Status Keeps Current Value", func(t *testing.T) {
		vehicleID := uuid.New()
		ownerID := uuid.New()
		now := time.Now()

		// The empty string is nulled out in SQL so the stored status wins.
		mock.ExpectQuery(`UPDATE vehicles SET model = \$1, price_per_km = \$2, price_per_hour = \$3, status = COALESCE\(NULLIF\(\$4, ''\), status\)`).
			WithArgs("Toyota Hiace GL", 135.0, 1600.0, "", vehicleID, ownerID).
			WillReturnRows(sqlmock.NewRows(vehicleCols).AddRow(
				vehicleID, ownerID, nil, "van", "Toyota Hiace GL",
				12, 8, "diesel", "WP NA-4521",
				135.0, 1600.0, "available", nil, now, now,
			))

		partial := update
		partial.Status = ""
		vehicle, err := repo.UpdateByOwner(vehicleID, ownerID, partial)
		require.NoError(t, err)
		assert.Equal(t, models.VehicleAvailable, vehicle.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Owner Reports Not Found", func(t *testing.T) {
		vehicleID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectQuery(`UPDATE vehicles`).
			WithArgs("Toyota Hiace GL", 135.0, 1600.0, "unavailable", vehicleID, ownerID).
			WillReturnRows(sqlmock.NewRows(vehicleCols))

		vehicle, err := repo.UpdateByOwner(vehicleID, ownerID, update)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, vehicle)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVehicleRepositoryDeleteByDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(newMockDatabase(db))

	t.Run("Scoped To Driver", func(t *testing.T) {
		vehicleID := uuid.New()
		driverID := uuid.New()

		mock.ExpectExec(`DELETE FROM vehicles`).
			WithArgs(vehicleID, driverID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteByDriver(vehicleID, driverID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Driver Reports Not Found", func(t *testing.T) {
		vehicleID := uuid.New()
		driverID := uuid.New()

		mock.ExpectExec(`DELETE FROM vehicles`).
			WithArgs(vehicleID, driverID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteByDriver(vehicleID, driverID), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
