package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/services"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

func driverBookingRow(bookingID, driverID uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).AddRow(
		bookingID, uuid.New(), uuid.New(), driverID.String(), uuid.New(),
		"Bandaranaike Airport", "Ella", now, now.Add(8*time.Hour), "round_trip",
		24000.0, nil, status, now, now,
	)
}

func newDriverTestHandler(t *testing.T) (*DriverHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &sqlDatabase{db: db}
	bookings := database.NewBookingRepository(wrapped)

	handler := NewDriverHandler(
		database.NewDriverRepository(wrapped),
		database.NewVehicleRepository(wrapped),
		bookings,
		services.NewBookingService(bookings, nil),
		database.NewDashboardRepository(wrapped),
		jwt.NewService("test-secret", time.Hour),
		services.NewAuditService(wrapped, false),
		bcrypt.MinCost,
	)
	return handler, mock
}

func TestDriverUpdateRequestStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	driverID := uuid.New()
	handler, mock := newDriverTestHandler(t)

	router := gin.New()
	router.PUT("/api/drivers/requests/:id/status", asUser(driverID, models.RoleDriver), handler.UpdateRequestStatus)

	t.Run("Assigned Driver Starts Trip", func(t *testing.T) {
		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs(bookingID).
			WillReturnRows(driverBookingRow(bookingID, driverID, "approved"))
		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs("on_trip", bookingID, driverID).
			WillReturnRows(driverBookingRow(bookingID, driverID, "on_trip"))

		w := performJSON(router, http.MethodPut, "/api/drivers/requests/"+bookingID.String()+"/status", gin.H{
			"status": "on_trip",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Booking status updated", decodeBody(t, w)["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unassigned Booking Reports Not Found", func(t *testing.T) {
		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs(bookingID).
			WillReturnRows(ownerBookingRow(bookingID, uuid.New(), "approved"))

		w := performJSON(router, http.MethodPut, "/api/drivers/requests/"+bookingID.String()+"/status", gin.H{
			"status": "on_trip",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Booking not found", decodeBody(t, w)["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Requested Booking Cannot Start Trip", func(t *testing.T) {
		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs(bookingID).
			WillReturnRows(driverBookingRow(bookingID, driverID, "requested"))

		w := performJSON(router, http.MethodPut, "/api/drivers/requests/"+bookingID.String()+"/status", gin.H{
			"status": "on_trip",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Invalid booking status transition", decodeBody(t, w)["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDriverCreateVehicle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	driverID := uuid.New()
	handler, mock := newDriverTestHandler(t)

	router := gin.New()
	router.POST("/api/drivers/vehicle", asUser(driverID, models.RoleDriver), handler.CreateVehicle)

	t.Run("Success", func(t *testing.T) {
		ownerID := uuid.New()

		mock.ExpectQuery(`INSERT INTO vehicles`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "created_at"}).
				AddRow("available", time.Now()))

		w := performJSON(router, http.MethodPost, "/api/drivers/vehicle", gin.H{
			"owner_id":            ownerID.String(),
			"vehicle_type":        "van",
			"model":               "Toyota Hiace GL",
			"capacity_passengers": 10,
			"fuel_type":           "diesel",
			"license_plate":       "WP NB-4471",
			"price_per_km":        120,
			"price_per_hour":      1500,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Vehicle created", body["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Owner Id", func(t *testing.T) {
		w := performJSON(router, http.MethodPost, "/api/drivers/vehicle", gin.H{
			"vehicle_type":  "van",
			"model":         "Toyota Hiace GL",
			"license_plate": "WP NB-4471",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "owner_id is required", decodeBody(t, w)["error"])
	})
}
