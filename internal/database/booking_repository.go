package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table.
// Status updates are scoped to the assigned owner or driver in the WHERE
// clause; an update that matches no row reports ErrNotFound rather than
// silently succeeding.
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `booking_id, customer_id, vehicle_id, driver_id, owner_id,
			pickup_location, drop_location, pickup_time, drop_time, trip_type,
			price_estimate, actual_price, status, created_at, updated_at`

// Create inserts a new booking. Every booking starts in state requested.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			booking_id, customer_id, vehicle_id, driver_id, owner_id,
			pickup_location, drop_location, pickup_time, drop_time, trip_type,
			price_estimate, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'requested', NOW()
		)
		RETURNING status, created_at
	`

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		booking.ID, booking.CustomerID, booking.VehicleID, booking.DriverID, booking.OwnerID,
		booking.PickupLocation, booking.DropLocation, booking.PickupTime, booking.DropTime,
		booking.TripType, booking.PriceEstimate,
	).Scan(&booking.Status, &booking.CreatedAt)
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(bookingID uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(query, bookingID))
	if err != nil {
		return nil, translateError(err)
	}
	return booking, nil
}

// UpdateStatusByOwner sets a booking's status, scoped to the assigned owner
func (r *BookingRepository) UpdateStatusByOwner(bookingID, ownerID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE booking_id = $2 AND owner_id = $3
		RETURNING ` + bookingColumns

	booking, err := r.scanBooking(r.db.QueryRow(query, status, bookingID, ownerID))
	if err != nil {
		return nil, translateError(err)
	}
	return booking, nil
}

// UpdateStatusByDriver sets a booking's status, scoped to the assigned driver
func (r *BookingRepository) UpdateStatusByDriver(bookingID, driverID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE booking_id = $2 AND driver_id = $3
		RETURNING ` + bookingColumns

	booking, err := r.scanBooking(r.db.QueryRow(query, status, bookingID, driverID))
	if err != nil {
		return nil, translateError(err)
	}
	return booking, nil
}

// ListByCustomer retrieves a customer's bookings, newest first, with
// vehicle/driver/owner display names
func (r *BookingRepository) ListByCustomer(customerID uuid.UUID) ([]models.BookingDetail, error) {
	query := `
		SELECT b.booking_id, b.customer_id, b.vehicle_id, b.driver_id, b.owner_id,
			   b.pickup_location, b.drop_location, b.pickup_time, b.drop_time, b.trip_type,
			   b.price_estimate, b.actual_price, b.status, b.created_at, b.updated_at,
			   v.model AS vehicle_model, v.vehicle_type,
			   d.full_name AS driver_name, o.full_name AS owner_name
		FROM bookings b
		LEFT JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		LEFT JOIN drivers d ON b.driver_id = d.driver_id
		LEFT JOIN owners o ON b.owner_id = o.owner_id
		WHERE b.customer_id = $1
		ORDER BY b.created_at DESC
	`

	return r.listDetails(query, customerID)
}

// ListUpcomingByCustomer retrieves a customer's not-yet-finished bookings
// ordered by pickup time
func (r *BookingRepository) ListUpcomingByCustomer(customerID uuid.UUID) ([]models.BookingDetail, error) {
	query := `
		SELECT b.booking_id, b.customer_id, b.vehicle_id, b.driver_id, b.owner_id,
			   b.pickup_location, b.drop_location, b.pickup_time, b.drop_time, b.trip_type,
			   b.price_estimate, b.actual_price, b.status, b.created_at, b.updated_at,
			   v.model AS vehicle_model, v.vehicle_type,
			   d.full_name AS driver_name, o.full_name AS owner_name
		FROM bookings b
		LEFT JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		LEFT JOIN drivers d ON b.driver_id = d.driver_id
		LEFT JOIN owners o ON b.owner_id = o.owner_id
		WHERE b.customer_id = $1 AND b.status IN ('requested', 'approved', 'on_trip')
		ORDER BY b.pickup_time ASC
	`

	return r.listDetails(query, customerID)
}

// ListByOwner retrieves bookings against an owner's vehicles, newest first
func (r *BookingRepository) ListByOwner(ownerID uuid.UUID) ([]models.BookingDetail, error) {
	query := `
		SELECT b.booking_id, b.customer_id, b.vehicle_id, b.driver_id, b.owner_id,
			   b.pickup_location, b.drop_location, b.pickup_time, b.drop_time, b.trip_type,
			   b.price_estimate, b.actual_price, b.status, b.created_at, b.updated_at,
			   v.model AS vehicle_model, v.vehicle_type,
			   d.full_name AS driver_name, c.full_name AS customer_name
		FROM bookings b
		LEFT JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		LEFT JOIN drivers d ON b.driver_id = d.driver_id
		LEFT JOIN customers c ON b.customer_id = c.customer_id
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []models.BookingDetail{}
	for rows.Next() {
		var d models.BookingDetail
		var driverID sql.NullString
		err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &driverID, &d.OwnerID,
			&d.PickupLocation, &d.DropLocation, &d.PickupTime, &d.DropTime, &d.TripType,
			&d.PriceEstimate, &d.ActualPrice, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.VehicleModel, &d.VehicleType,
			&d.DriverName, &d.CustomerName,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			d.DriverID = &id
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListRequestsByDriver retrieves a driver's booking requests with the
// customer's rating row for the booking if one exists
func (r *BookingRepository) ListRequestsByDriver(driverID uuid.UUID) ([]models.BookingRequestDetail, error) {
	query := `
		SELECT b.booking_id, b.customer_id, b.vehicle_id, b.driver_id, b.owner_id,
			   b.pickup_location, b.drop_location, b.pickup_time, b.drop_time, b.trip_type,
			   b.price_estimate, b.actual_price, b.status, b.created_at, b.updated_at,
			   c.full_name AS customer_name, v.model AS vehicle_model,
			   COALESCE(r.rating, 0) AS customer_rating,
			   COALESCE(r.review, '') AS customer_review
		FROM bookings b
		LEFT JOIN customers c ON b.customer_id = c.customer_id
		LEFT JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		LEFT JOIN ratings r ON r.booking_id = b.booking_id
		WHERE b.driver_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []models.BookingRequestDetail{}
	for rows.Next() {
		var d models.BookingRequestDetail
		var rowDriverID sql.NullString
		err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &rowDriverID, &d.OwnerID,
			&d.PickupLocation, &d.DropLocation, &d.PickupTime, &d.DropTime, &d.TripType,
			&d.PriceEstimate, &d.ActualPrice, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.CustomerName, &d.VehicleModel, &d.CustomerRating, &d.CustomerReview,
		)
		if err != nil {
			return nil, err
		}
		if rowDriverID.Valid {
			id, err := uuid.Parse(rowDriverID.String)
			if err != nil {
				return nil, err
			}
			d.DriverID = &id
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListPendingByDriver retrieves a driver's bookings still in state requested
func (r *BookingRepository) ListPendingByDriver(driverID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE driver_id = $1 AND status = 'requested'`

	rows, err := r.db.Query(query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var driverID sql.NullString
		err := rows.Scan(
			&b.ID, &b.CustomerID, &b.VehicleID, &driverID, &b.OwnerID,
			&b.PickupLocation, &b.DropLocation, &b.PickupTime, &b.DropTime, &b.TripType,
			&b.PriceEstimate, &b.ActualPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			b.DriverID = &id
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) scanBooking(row *sql.Row) (*models.Booking, error) {
	booking := &models.Booking{}
	var driverID sql.NullString

	err := row.Scan(
		&booking.ID, &booking.CustomerID, &booking.VehicleID, &driverID, &booking.OwnerID,
		&booking.PickupLocation, &booking.DropLocation, &booking.PickupTime, &booking.DropTime,
		&booking.TripType, &booking.PriceEstimate, &booking.ActualPrice, &booking.Status,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		id, err := uuid.Parse(driverID.String)
		if err != nil {
			return nil, err
		}
		booking.DriverID = &id
	}
	return booking, nil
}

func (r *BookingRepository) listDetails(query string, args ...interface{}) ([]models.BookingDetail, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []models.BookingDetail{}
	for rows.Next() {
		var d models.BookingDetail
		var driverID sql.NullString
		err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &driverID, &d.OwnerID,
			&d.PickupLocation, &d.DropLocation, &d.PickupTime, &d.DropTime, &d.TripType,
			&d.PriceEstimate, &d.ActualPrice, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.VehicleModel, &d.VehicleType,
			&d.DriverName, &d.OwnerName,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			d.DriverID = &id
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
