package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// RegisterRequest is the signup payload shared by customers, drivers and owners
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
}

// LoginRequest is the login payload for every role
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest is the editable profile payload
type ProfileUpdateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// StatusUpdateRequest carries a booking status change
type StatusUpdateRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// parseSearchFilters reads the vehicle search query parameters. A parameter
// that is absent or empty imposes no filter; a malformed numeric or boolean
// value aborts with 400.
func parseSearchFilters(c *gin.Context) (models.SearchFilters, bool) {
	filters := models.SearchFilters{}

	setString := func(param string, dest **string) {
		if v := c.Query(param); v != "" {
			*dest = &v
		}
	}
	setString("vehicle_type", &filters.VehicleType)
	setString("vehicle_model", &filters.VehicleModel)
	setString("fuel_type", &filters.FuelType)
	setString("pickup_location", &filters.PickupLocation)
	setString("drop_location", &filters.DropLocation)
	setString("trip_type", &filters.TripType)

	if v := c.Query("with_driver"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid with_driver value"})
			return filters, false
		}
		filters.WithDriver = &b
	}

	setInt := func(param string, dest **int) bool {
		if v := c.Query(param); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " value"})
				return false
			}
			*dest = &n
		}
		return true
	}
	if !setInt("passengers", &filters.Passengers) || !setInt("luggage", &filters.Luggage) {
		return filters, false
	}

	setFloat := func(param string, dest **float64) bool {
		if v := c.Query(param); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " value"})
				return false
			}
			*dest = &f
		}
		return true
	}
	if !setFloat("price_min", &filters.PriceMin) || !setFloat("price_max", &filters.PriceMax) {
		return filters, false
	}

	return filters, true
}
