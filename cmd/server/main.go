package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rentwheels/vehicle-rental-backend/internal/config"
	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/handlers"
	"github.com/rentwheels/vehicle-rental-backend/internal/middleware"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/services"
	"github.com/rentwheels/vehicle-rental-backend/internal/ws"
	"github.com/rentwheels/vehicle-rental-backend/pkg/jwt"
)

var version = "1.0.0"

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting RentWheels Vehicle Rental Backend")
	logger.Infof("Version: %s", version)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	customerRepo := database.NewCustomerRepository(db)
	driverRepo := database.NewDriverRepository(db)
	ownerRepo := database.NewOwnerRepository(db)
	adminRepo := database.NewAdminRepository(db)
	vehicleRepo := database.NewVehicleRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	ratingRepo := database.NewRatingRepository(db)
	searchRepo := database.NewSearchRepository(db)
	dashboardRepo := database.NewDashboardRepository(db)

	// Initialize services
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	auditService := services.NewAuditService(db, cfg.Security.EnableAuditLog)
	hub := ws.NewHub()
	bookingService := services.NewBookingService(bookingRepo, hub)

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(
		customerRepo, bookingRepo, ratingRepo, paymentRepo, searchRepo,
		dashboardRepo, jwtService, auditService, cfg.Security.BcryptCost,
	)
	driverHandler := handlers.NewDriverHandler(
		driverRepo, vehicleRepo, bookingRepo, bookingService,
		dashboardRepo, jwtService, auditService, cfg.Security.BcryptCost,
	)
	ownerHandler := handlers.NewOwnerHandler(
		ownerRepo, vehicleRepo, bookingRepo, bookingService,
		dashboardRepo, jwtService, auditService, cfg.Security.BcryptCost,
	)
	adminHandler := handlers.NewAdminHandler(
		adminRepo, customerRepo, driverRepo, ownerRepo, vehicleRepo,
		paymentRepo, ratingRepo, dashboardRepo, jwtService, auditService,
	)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Realtime booking updates
	router.GET("/ws/customers/:id", hub.HandleCustomer(jwtService))

	auth := middleware.AuthMiddleware(jwtService)

	customers := router.Group("/api/customers")
	{
		customers.POST("/register", customerHandler.Register)
		customers.POST("/login", customerHandler.Login)

		protected := customers.Group("", auth, middleware.RequireRole(models.RoleCustomer))
		{
			protected.GET("/profile", customerHandler.GetProfile)
			protected.PUT("/profile", customerHandler.UpdateProfile)
			protected.GET("/search", customerHandler.Search)
			protected.POST("/book", customerHandler.CreateBooking)
			protected.GET("/bookings", customerHandler.ListBookings)
			protected.POST("/rating", customerHandler.CreateRating)
			protected.POST("/payment", customerHandler.CreatePayment)
			protected.GET("/dashboard", customerHandler.Dashboard)
			protected.POST("/logout", customerHandler.Logout)
		}
	}

	drivers := router.Group("/api/drivers")
	{
		drivers.POST("/register", driverHandler.Register)
		drivers.POST("/login", driverHandler.Login)

		protected := drivers.Group("", auth, middleware.RequireRole(models.RoleDriver))
		{
			protected.GET("/profile", driverHandler.GetProfile)
			protected.PUT("/profile", driverHandler.UpdateProfile)
			protected.POST("/vehicle", driverHandler.CreateVehicle)
			protected.PUT("/vehicle/:id", driverHandler.UpdateVehicle)
			protected.DELETE("/vehicle/:id", driverHandler.DeleteVehicle)
			protected.GET("/vehicles", driverHandler.ListVehicles)
			protected.GET("/requests", driverHandler.ListRequests)
			protected.GET("/requests/pending", driverHandler.ListPendingRequests)
			protected.PUT("/requests/:id/status", driverHandler.UpdateRequestStatus)
			protected.GET("/dashboard", driverHandler.Dashboard)
			protected.POST("/logout", driverHandler.Logout)
		}
	}

	owners := router.Group("/api/owners")
	{
		owners.POST("/register", ownerHandler.Register)
		owners.POST("/login", ownerHandler.Login)

		protected := owners.Group("", auth, middleware.RequireRole(models.RoleOwner))
		{
			protected.GET("/profile", ownerHandler.GetProfile)
			protected.PUT("/profile", ownerHandler.UpdateProfile)
			protected.POST("/vehicle", ownerHandler.CreateVehicle)
			protected.PUT("/vehicle/:id", ownerHandler.UpdateVehicle)
			protected.DELETE("/vehicle/:id", ownerHandler.DeleteVehicle)
			protected.GET("/vehicles", ownerHandler.ListVehicles)
			protected.GET("/bookings", ownerHandler.ListBookings)
			protected.PUT("/booking/:id/status", ownerHandler.UpdateBookingStatus)
			protected.GET("/dashboard", ownerHandler.Dashboard)
			protected.POST("/logout", ownerHandler.Logout)
		}
	}

	admin := router.Group("/api/admin")
	{
		admin.POST("/login", adminHandler.Login)

		protected := admin.Group("", auth, middleware.RequireRole(models.RoleAdmin))
		{
			protected.GET("/dashboard", adminHandler.Dashboard)
			protected.GET("/customers", adminHandler.ListCustomers)
			protected.GET("/customers/:id", adminHandler.GetCustomer)
			protected.DELETE("/customers/:id", adminHandler.DeleteCustomer)
			protected.GET("/drivers", adminHandler.ListDrivers)
			protected.GET("/drivers/:id", adminHandler.GetDriver)
			protected.DELETE("/drivers/:id", adminHandler.DeleteDriver)
			protected.GET("/owners", adminHandler.ListOwners)
			protected.GET("/owners/:id", adminHandler.GetOwner)
			protected.DELETE("/owners/:id", adminHandler.DeleteOwner)
			protected.GET("/vehicles", adminHandler.ListVehicles)
			protected.GET("/vehicles/:id", adminHandler.GetVehicle)
			protected.DELETE("/vehicles/:id", adminHandler.DeleteVehicle)
			protected.GET("/payments", adminHandler.ListPayments)
			protected.GET("/ratings", adminHandler.ListRatings)
			protected.POST("/logout", adminHandler.Logout)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["account_id"] = userCtx.AccountID
			fields["role"] = userCtx.Role
		}

		if len(c.Errors) > 0 {
			logger.WithFields(fields).Error(c.Errors.String())
			return
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.WithFields(fields).Error("Request completed with server error")
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.WithFields(fields).Warn("Request completed with client error")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}

// healthCheckHandler reports process and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}
