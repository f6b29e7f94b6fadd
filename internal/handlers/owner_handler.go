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

// OwnerHandler serves the owner-facing endpoints. Vehicle and booking
// mutations are scoped to the authenticated owner.
type OwnerHandler struct {
	owners         *database.OwnerRepository
	vehicles       *database.VehicleRepository
	bookings       *database.BookingRepository
	bookingService *services.BookingService
	dashboards     *database.DashboardRepository
	jwtService     *jwt.Service
	audit          *services.AuditService
	bcryptCost     int
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(
	owners *database.OwnerRepository,
	vehicles *database.VehicleRepository,
	bookings *database.BookingRepository,
	bookingService *services.BookingService,
	dashboards *database.DashboardRepository,
	jwtService *jwt.Service,
	audit *services.AuditService,
	bcryptCost int,
) *OwnerHandler {
	return &OwnerHandler{
		owners:         owners,
		vehicles:       vehicles,
		bookings:       bookings,
		bookingService: bookingService,
		dashboards:     dashboards,
		jwtService:     jwtService,
		audit:          audit,
		bcryptCost:     bcryptCost,
	}
}

// Register creates an owner account
// POST /api/owners/register
func (h *OwnerHandler) Register(c *gin.Context) {
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

	owner, err := h.owners.Create(req.FullName, req.Email, string(hashed), req.Phone)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		logrus.WithError(err).Error("owner registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"owner":   owner,
	})
}

// Login authenticates an owner and issues a token
// POST /api/owners/login
func (h *OwnerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, err := h.owners.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("owner login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(owner.ID, models.RoleOwner)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.audit.RecordLogin(owner.ID, models.RoleOwner, c.ClientIP(), c.GetHeader("User-Agent"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"owner":   owner,
	})
}

// GetProfile returns the authenticated owner's profile
// GET /api/owners/profile
func (h *OwnerHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	owner, err := h.owners.GetByID(userCtx.AccountID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, owner)
}

// UpdateProfile updates the authenticated owner's profile
// PUT /api/owners/profile
func (h *OwnerHandler) UpdateProfile(c *gin.Context) {
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

	owner, err := h.owners.UpdateProfile(userCtx.AccountID, req.FullName, req.Phone)
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
		"owner":   owner,
	})
}

// CreateVehicle lists a vehicle under the authenticated owner
// POST /api/owners/vehicle
func (h *OwnerHandler) CreateVehicle(c *gin.Context) {
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

	vehicle := vehicleFromInput(req, userCtx.AccountID, req.DriverID)

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

// UpdateVehicle updates one of the authenticated owner's vehicles
// PUT /api/owners/vehicle/:id
func (h *OwnerHandler) UpdateVehicle(c *gin.Context) {
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

	vehicle, err := h.vehicles.UpdateByOwner(vehicleID, userCtx.AccountID, req)
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

// DeleteVehicle removes one of the authenticated owner's vehicles
// DELETE /api/owners/vehicle/:id
func (h *OwnerHandler) DeleteVehicle(c *gin.Context) {
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

	if err := h.vehicles.DeleteByOwner(vehicleID, userCtx.AccountID); err != nil {
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

// ListVehicles returns the authenticated owner's vehicles
// GET /api/owners/vehicles
func (h *OwnerHandler) ListVehicles(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vehicles, err := h.vehicles.ListByOwner(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("vehicle listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListBookings returns bookings against the owner's vehicles, newest first
// GET /api/owners/bookings
func (h *OwnerHandler) ListBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.bookings.ListByOwner(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("booking listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatus moves one of the owner's bookings through its lifecycle
// PUT /api/owners/booking/:id/status
func (h *OwnerHandler) UpdateBookingStatus(c *gin.Context) {
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

	booking, err := h.bookingService.UpdateStatusByOwner(bookingID, userCtx.AccountID, req.Status)
	if err != nil {
		respondBookingUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated",
		"booking": booking,
	})
}

// Dashboard returns the owner's aggregate view
// GET /api/owners/dashboard
func (h *OwnerHandler) Dashboard(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dashboard, err := h.dashboards.OwnerStats(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("owner dashboard query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":    true,
		"Dashboard": dashboard,
	})
}

// Logout acknowledges a logout
// POST /api/owners/logout
func (h *OwnerHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
