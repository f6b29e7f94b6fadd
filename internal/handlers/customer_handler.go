package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/middleware"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/services"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

// CustomerHandler serves the customer-facing endpoints
type CustomerHandler struct {
	customers  *database.CustomerRepository
	bookings   *database.BookingRepository
	ratings    *database.RatingRepository
	payments   *database.PaymentRepository
	search     *database.SearchRepository
	dashboards *database.DashboardRepository
	jwtService *jwt.Service
	audit      *services.AuditService
	bcryptCost int
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	customers *database.CustomerRepository,
	bookings *database.BookingRepository,
	ratings *database.RatingRepository,
	payments *database.PaymentRepository,
	search *database.SearchRepository,
	dashboards *database.DashboardRepository,
	jwtService *jwt.Service,
	audit *services.AuditService,
	bcryptCost int,
) *CustomerHandler {
	return &CustomerHandler{
		customers:  customers,
		bookings:   bookings,
		ratings:    ratings,
		payments:   payments,
		search:     search,
		dashboards: dashboards,
		jwtService: jwtService,
		audit:      audit,
		bcryptCost: bcryptCost,
	}
}

// Register creates a customer account
// POST /api/customers/register
func (h *CustomerHandler) Register(c *gin.Context) {
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

	customer, err := h.customers.Create(req.FullName, req.Email, string(hashed), req.Phone)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		logrus.WithError(err).Error("customer registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful",
		"customer": customer,
	})
}

// Login authenticates a customer and issues a token
// POST /api/customers/login
func (h *CustomerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("customer login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(customer.ID, models.RoleCustomer)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.audit.RecordLogin(customer.ID, models.RoleCustomer, c.ClientIP(), c.GetHeader("User-Agent"))

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"customer": customer,
	})
}

// GetProfile returns the authenticated customer's profile
// GET /api/customers/profile
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customers.GetByID(userCtx.AccountID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateProfile updates the authenticated customer's profile
// PUT /api/customers/profile
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
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

	customer, err := h.customers.UpdateProfile(userCtx.AccountID, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile updated",
		"customer": customer,
	})
}

// Search lists available vehicles matching the query filters
// GET /api/customers/search
func (h *CustomerHandler) Search(c *gin.Context) {
	filters, ok := parseSearchFilters(c)
	if !ok {
		return
	}

	results, err := h.search.Search(filters)
	if err != nil {
		logrus.WithError(err).Error("vehicle search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": results})
}

// CreateBooking creates a booking request against a vehicle
// POST /api/customers/book
func (h *CustomerHandler) CreateBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := &models.Booking{
		CustomerID:     userCtx.AccountID,
		VehicleID:      req.VehicleID,
		DriverID:       req.DriverID,
		OwnerID:        req.OwnerID,
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		PickupTime:     req.PickupTime,
		DropTime:       req.DropTime,
		TripType:       req.TripType,
		PriceEstimate:  req.PriceEstimate,
	}

	if err := h.bookings.Create(booking); err != nil {
		logrus.WithError(err).Error("booking creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking requested",
		"booking": booking,
	})
}

// ListBookings returns the customer's bookings, newest first
// GET /api/customers/bookings
func (h *CustomerHandler) ListBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.bookings.ListByCustomer(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("booking listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CreateRating stores the customer's rating for a booking
// POST /api/customers/rating
func (h *CustomerHandler) CreateRating(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.RatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating := &models.Rating{
		BookingID:  req.BookingID,
		CustomerID: userCtx.AccountID,
		DriverID:   req.DriverID,
		OwnerID:    req.OwnerID,
		VehicleID:  req.VehicleID,
		Rating:     req.Rating,
		Review:     models.NewNullString(req.Review),
	}

	if err := h.ratings.Create(rating); err != nil {
		logrus.WithError(err).Error("rating creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rating submitted",
		"rating":  rating,
	})
}

// CreatePayment records a completed payment for a booking
// POST /api/customers/payment
func (h *CustomerHandler) CreatePayment(c *gin.Context) {
	_, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := &models.Payment{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	}

	if err := h.payments.Create(payment); err != nil {
		logrus.WithError(err).Error("payment creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded",
		"payment": payment,
	})
}

// Dashboard returns the customer's aggregate view
// GET /api/customers/dashboard
func (h *CustomerHandler) Dashboard(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dashboard, err := h.dashboards.CustomerStats(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("customer dashboard query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	upcoming, err := h.bookings.ListUpcomingByCustomer(userCtx.AccountID)
	if err != nil {
		logrus.WithError(err).Error("upcoming bookings query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	dashboard.UpcomingBookings = upcoming

	c.JSON(http.StatusOK, dashboard)
}

// Logout acknowledges a logout. Tokens are stateless, so the client simply
// discards its copy.
// POST /api/customers/logout
func (h *CustomerHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
