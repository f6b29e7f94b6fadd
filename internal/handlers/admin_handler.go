package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/services"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

// AdminHandler serves the admin endpoints. Admin accounts are provisioned
// out of band; there is no admin registration route.
type AdminHandler struct {
	admins     *database.AdminRepository
	customers  *database.CustomerRepository
	drivers    *database.DriverRepository
	owners     *database.OwnerRepository
	vehicles   *database.VehicleRepository
	payments   *database.PaymentRepository
	ratings    *database.RatingRepository
	dashboards *database.DashboardRepository
	jwtService *jwt.Service
	audit      *services.AuditService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	admins *database.AdminRepository,
	customers *database.CustomerRepository,
	drivers *database.DriverRepository,
	owners *database.OwnerRepository,
	vehicles *database.VehicleRepository,
	payments *database.PaymentRepository,
	ratings *database.RatingRepository,
	dashboards *database.DashboardRepository,
	jwtService *jwt.Service,
	audit *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		admins:     admins,
		customers:  customers,
		drivers:    drivers,
		owners:     owners,
		vehicles:   vehicles,
		payments:   payments,
		ratings:    ratings,
		dashboards: dashboards,
		jwtService: jwtService,
		audit:      audit,
	}
}

// Login authenticates an admin and issues a token
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.admins.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("admin login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(admin.ID, models.RoleAdmin)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.audit.RecordLogin(admin.ID, models.RoleAdmin, c.ClientIP(), c.GetHeader("User-Agent"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"admin":   admin,
	})
}

// Dashboard returns the platform-wide aggregate view
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboards.AdminStats()
	if err != nil {
		logrus.WithError(err).Error("admin dashboard query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":    true,
		"Dashboard": dashboard,
	})
}

// ListCustomers returns every customer account
// GET /api/admin/customers
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List()
	if err != nil {
		logrus.WithError(err).Error("customer listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GetCustomer returns one customer account
// GET /api/admin/customers/:id
func (h *AdminHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(id)
	if err != nil {
		respondAdminLookupError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer account
// DELETE /api/admin/customers/:id
func (h *AdminHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.customers.Delete(id); err != nil {
		respondAdminLookupError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// ListDrivers returns every driver account
// GET /api/admin/drivers
func (h *AdminHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.drivers.List()
	if err != nil {
		logrus.WithError(err).Error("driver listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GetDriver returns one driver account
// GET /api/admin/drivers/:id
func (h *AdminHandler) GetDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	driver, err := h.drivers.GetByID(id)
	if err != nil {
		respondAdminLookupError(c, err, "Driver")
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DeleteDriver removes a driver account
// DELETE /api/admin/drivers/:id
func (h *AdminHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.drivers.Delete(id); err != nil {
		respondAdminLookupError(c, err, "Driver")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}

// ListOwners returns every owner account
// GET /api/admin/owners
func (h *AdminHandler) ListOwners(c *gin.Context) {
	owners, err := h.owners.List()
	if err != nil {
		logrus.WithError(err).Error("owner listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch owners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owners": owners})
}

// GetOwner returns one owner account
// GET /api/admin/owners/:id
func (h *AdminHandler) GetOwner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	owner, err := h.owners.GetByID(id)
	if err != nil {
		respondAdminLookupError(c, err, "Owner")
		return
	}
	c.JSON(http.StatusOK, owner)
}

// DeleteOwner removes an owner account
// DELETE /api/admin/owners/:id
func (h *AdminHandler) DeleteOwner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.owners.Delete(id); err != nil {
		respondAdminLookupError(c, err, "Owner")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Owner deleted"})
}

// ListVehicles returns every vehicle with owner and driver names
// GET /api/admin/vehicles
func (h *AdminHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.ListAll()
	if err != nil {
		logrus.WithError(err).Error("vehicle listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// GetVehicle returns one vehicle
// GET /api/admin/vehicles/:id
func (h *AdminHandler) GetVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.GetByID(id)
	if err != nil {
		respondAdminLookupError(c, err, "Vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle
// DELETE /api/admin/vehicles/:id
func (h *AdminHandler) DeleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.vehicles.Delete(id); err != nil {
		respondAdminLookupError(c, err, "Vehicle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// ListPayments returns every payment, newest first
// GET /api/admin/payments
func (h *AdminHandler) ListPayments(c *gin.Context) {
	payments, err := h.payments.ListAll()
	if err != nil {
		logrus.WithError(err).Error("payment listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ListRatings returns every rating, newest first
// GET /api/admin/ratings
func (h *AdminHandler) ListRatings(c *gin.Context) {
	ratings, err := h.ratings.ListAll()
	if err != nil {
		logrus.WithError(err).Error("rating listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// Logout acknowledges a logout
// POST /api/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondAdminLookupError(c *gin.Context, err error, entity string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}
	logrus.WithError(err).Error("admin entity operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
}
