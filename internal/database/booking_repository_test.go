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

var bookingCols = []string{
	"booking_id", "customer_id", "vehicle_id", "driver_id", "owner_id",
	"pickup_location", "drop_location", "pickup_time", "drop_time", "trip_type",
	"price_estimate", "actual_price", "status", "created_at", "updated_at",
}

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(newMockDatabase(db))

	t.Run("Starts As Requested", func(t *testing.T) {
		now := time.Now()
		booking := &models.Booking{
			CustomerID:     uuid.New(),
			VehicleID:      uuid.New(),
			OwnerID:        uuid.New(),
			PickupLocation: "Colombo Fort",
			DropLocation:   "Kandy",
			PickupTime:     now.Add(24 * time.Hour),
			DropTime:       now.Add(30 * time.Hour),
			TripType:       "one_way",
			PriceEstimate:  15000,
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "created_at"}).
				AddRow("requested", now))

		require.NoError(t, repo.Create(booking))
		assert.Equal(t, models.BookingRequested, booking.Status)
		assert.NotEqual(t, uuid.Nil, booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryUpdateStatusByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		bookingID := uuid.New()
		ownerID := uuid.New()
		customerID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs("approved", bookingID, ownerID).
			WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
				bookingID, customerID, uuid.New(), nil, ownerID,
				"Colombo Fort", "Kandy", now, now.Add(6*time.Hour), "one_way",
				15000.0, nil, "approved", now, now,
			))

		booking, err := repo.UpdateStatusByOwner(bookingID, ownerID, models.BookingApproved)
		require.NoError(t, err)
		assert.Equal(t, models.BookingApproved, booking.Status)
		assert.Equal(t, customerID, booking.CustomerID)
		assert.Nil(t, booking.DriverID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Owner Reports Not Found", func(t *testing.T) {
		bookingID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs("approved", bookingID, ownerID).
			WillReturnRows(sqlmock.NewRows(bookingCols))

		booking, err := repo.UpdateStatusByOwner(bookingID, ownerID, models.BookingApproved)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepositoryListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(newMockDatabase(db))

	cols := append(append([]string{}, bookingCols...),
		"vehicle_model", "vehicle_type", "driver_name", "owner_name")

	t.Run("Joined Names", func(t *testing.T) {
		customerID := uuid.New()
		driverID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				uuid.New(), customerID, uuid.New(), driverID.String(), uuid.New(),
				"Galle", "Matara", now, now.Add(2*time.Hour), "return",
				4200.0, nil, "completed", now, now,
				"Toyota Prius", "car", "Sunil Fernando", "Kamal Silva",
			))

		bookings, err := repo.ListByCustomer(customerID)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "Toyota Prius", bookings[0].VehicleModel.String)
		assert.Equal(t, "Sunil Fernando", bookings[0].DriverName.String)
		require.NotNil(t, bookings[0].DriverID)
		assert.Equal(t, driverID, *bookings[0].DriverID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty", func(t *testing.T) {
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows(cols))

		bookings, err := repo.ListByCustomer(customerID)
		require.NoError(t, err)
		assert.Empty(t, bookings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
