package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/middleware"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/services"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

// DriverHandler serves the driver-facing endpoints. Every vehicle and
// booking mutation is scoped to the authenticated driver.
type DriverHandler struct {
	drivers        *database.DriverRepository
	vehicles       *database.VehicleRepository
	bookings       *database.BookingRepository
	bookingService *services.BookingService
	dashboards     *database.DashboardRepository
	jwtService     *jwt.Service
	audit          *services.AuditService
	bcryptCost     int
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(
	drivers *database.DriverRepository,
	vehicles *database.VehicleRepository,
	bookings *database.BookingRepository,
	bookingService *services.BookingService,
	dashboards *database.DashboardRepository,
	jwtService *jwt.Service,
	audit *services.AuditService,
	bcryptCost int,
) *DriverHandler {
	return &DriverHandler{
		drivers:        drivers,
		vehicles:       vehicles,
		bookings:       bookings,
		bookingService: bookingService,
		dashboards:     dashboards,
		jwtService:     jwtService,
		audit:          audit,
		bcryptCost:     bcryptCost,
	}
}

// Register creates a driver account
// POST /api/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	driver, err := h.drivers.Create(req.FullName, req.Email, string(hashed), req.Phone)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		logrus.WithError(err).Error("driver registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"driver":  driver,
	})
}

// Login authenticates a driver and issues a token
// POST /api/drivers/login
func (h *DriverHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.drivers.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("driver login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(driver.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(driver.ID, models.RoleDriver)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.audit.RecordLogin(driver.ID, models.RoleDriver, c.ClientIP(), c.GetHeader("User-Agent"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"driver":  driver,
	})
}

// GetProfile returns the authenticated driver's profile
// GET /api/drivers/profile
func (h *DriverHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	driver, err := h.drivers.GetByID(userCtx.AccountID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// UpdateProfile updates the authenticated driver's profile
// PUT /api/drivers/profile
func (h *DriverHandler) UpdateProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.drivers.UpdateProfile(userCtx.AccountID, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"driver":  driver,
	})
}

// CreateVehicle lists a vehicle driven by the authenticated driver.
// The payload names the owner whose fleet the vehicle belongs to.
// POST /api/drivers/vehicle
func (h *DriverHandler) CreateVehicle(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OwnerID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id is required"})
		return
	}

	driverID := userCtx.AccountID
	vehicle := vehicleFromInput(req, *req.OwnerID, &driverID)

	if err := h.vehicles.Create(vehicle); err != nil {
		logrus.WithError(err).Error("vehicle creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle created",
		"vehicle": vehicle,
	})
}

// UpdateVehicle updates a vehicle the authenticated driver is assigned to
// PUT /api/drivers/vehicle/:id
func (h *DriverHandler) UpdateVehicle(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle id"})
		return
	}

	var req models.VehicleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "" && req.Status != models.VehicleAvailable && req.Status != models.VehicleUnavailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle status"})
		return
	}

	vehicle, err := h.vehicles.UpdateByDriver(vehicleID, userCtx.AccountID, req)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		logrus.WithError(err).Error("vehicle update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle updated",
		"vehicle": vehicle,
	})
}

// DeleteVehicle removes a vehicle the authenticated driver is assigned to
// DELETE /api/drivers/vehicle/:id
func (h *DriverHandler) DeleteVehicle(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle id"})
		return
	}

	if err := h.vehicles.DeleteByDriver(vehicleID, userCtx.AccountID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		logrus.WithError(err).Error("vehicle deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// ListVehicles returns the vehicles assigned to the authenticated driver
// GET /api/drivers/vehicles
func (h *DriverHandler) ListVehicles(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vehicles, err := h.vehicles.ListByDriver(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("vehicle listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListRequests returns every booking assigned to the driver, with the
// customer's rating row when one exists
// GET /api/drivers/requests
func (h *DriverHandler) ListRequests(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.bookings.ListRequestsByDriver(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("booking request listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListPendingRequests returns the driver's bookings still awaiting a decision
// GET /api/drivers/requests/pending
func (h *DriverHandler) ListPendingRequests(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.bookings.ListPendingByDriver(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("pending request listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// UpdateRequestStatus moves one of the driver's bookings through its lifecycle
// PUT /api/drivers/requests/:id/status
func (h *DriverHandler) UpdateRequestStatus(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateStatusByDriver(bookingID, userCtx.AccountID, req.Status)
	if err != nil {
		respondBookingUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated",
		"booking": booking,
	})
}

// Dashboard returns the driver's aggregate view
// GET /api/drivers/dashboard
func (h *DriverHandler) Dashboard(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dashboard, err := h.dashboards.DriverStats(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("driver dashboard query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// Logout acknowledges a logout
// POST /api/drivers/logout
func (h *DriverHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// respondBookingUpdateError maps booking lifecycle errors onto HTTP statuses.
// Unknown statuses and forbidden transitions are 422; a booking that does
// not exist or belongs to someone else is 404.
func respondBookingUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, models.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid booking status"})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid booking status transition"})
	default:
		logrus.WithError(err).Error("booking status update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking status"})
	}
}

// vehicleFromInput builds a Vehicle row from the create payload
func vehicleFromInput(req models.VehicleInput, ownerID uuid.UUID, driverID *uuid.UUID) *models.Vehicle {
	vehicle := &models.Vehicle{
		OwnerID:            ownerID,
		DriverID:           driverID,
		VehicleType:        req.VehicleType,
		Model:              req.Model,
		CapacityPassengers: req.CapacityPassengers,
		CapacityLuggage:    req.CapacityLuggage,
		FuelType:           req.FuelType,
		LicensePlate:       req.LicensePlate,
		PricePerKm:         req.PricePerKm,
		PricePerHour:       req.PricePerHour,
	}
	if req.ImageURL != nil {
		vehicle.ImageURL = models.NewNullString(*req.ImageURL)
	}
	return vehicle
}
