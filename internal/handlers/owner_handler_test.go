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
	"github.com/rentwheels/vehicle-rental-backend/internal/middleware"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/services"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

var bookingCols = []string{
	"booking_id", "customer_id", "vehicle_id", "driver_id", "owner_id",
	"pickup_location", "drop_location", "pickup_time", "drop_time", "trip_type",
	"price_estimate", "actual_price", "status", "created_at", "updated_at",
}

func ownerBookingRow(bookingID, ownerID uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).AddRow(
		bookingID, uuid.New(), uuid.New(), nil, ownerID,
		"Galle Face", "Negombo", now, now.Add(3*time.Hour), "one_way",
		8200.0, nil, status, now, now,
	)
}

// asUser injects an authenticated identity the way the auth middleware does
func asUser(accountID uuid.UUID, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, middleware.UserContext{
			AccountID: accountID,
			Role:      role,
		})
		c.Next()
	}
}

func newOwnerTestHandler(t *testing.T) (*OwnerHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &sqlDatabase{db: db}
	bookings := database.NewBookingRepository(wrapped)

	handler := NewOwnerHandler(
		database.NewOwnerRepository(wrapped),
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

func TestOwnerUpdateBookingStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ownerID := uuid.New()
	handler, mock := newOwnerTestHandler(t)

	router := gin.New()
	router.PUT("/api/owners/booking/:id/status", asUser(ownerID, models.RoleOwner), handler.UpdateBookingStatus)

	t.Run("Approves Requested Booking", func(t *testing.T) {
		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs(bookingID).
			WillReturnRows(ownerBookingRow(bookingID, ownerID, "requested"))
		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs("approved", bookingID, ownerID).
			WillReturnRows(ownerBookingRow(bookingID, ownerID, "approved"))

		w := performJSON(router, http.MethodPut, "/api/owners/booking/"+bookingID.String()+"/status", gin.H{
			"status": "approved",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Booking status updated", decodeBody(t, w)["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Another Owners Booking Reports Not Found", func(t *testing.T) {
		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs(bookingID).
			WillReturnRows(ownerBookingRow(bookingID, uuid.New(), "requested"))

		w := performJSON(router, http.MethodPut, "/api/owners/booking/"+bookingID.String()+"/status", gin.H{
			"status": "approved",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Booking not found", decodeBody(t, w)["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Completed Booking Refuses Transition", func(t *testing.T) {
		bookingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs(bookingID).
			WillReturnRows(ownerBookingRow(bookingID, ownerID, "completed"))

		w := performJSON(router, http.MethodPut, "/api/owners/booking/"+bookingID.String()+"/status", gin.H{
			"status": "approved",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Invalid booking status transition", decodeBody(t, w)["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Status Value", func(t *testing.T) {
		bookingID := uuid.New()

		w := performJSON(router, http.MethodPut, "/api/owners/booking/"+bookingID.String()+"/status", gin.H{
			"status": "vanished",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Invalid booking status", decodeBody(t, w)["error"])
	})

	t.Run("Malformed Booking Id", func(t *testing.T) {
		w := performJSON(router, http.MethodPut, "/api/owners/booking/not-a-uuid/status", gin.H{
			"status": "approved",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
