package database

import (
	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// DashboardRepository runs the aggregate queries behind the per-role
// dashboard endpoints. Sums over money use completed payments only;
// booking counts include every status unless stated otherwise.
type DashboardRepository struct {
	db DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CustomerStats fills the scalar fields of a customer's dashboard.
// Upcoming bookings come from the booking repository.
func (r *DashboardRepository) CustomerStats(customerID uuid.UUID) (*models.CustomerDashboard, error) {
	dashboard := &models.CustomerDashboard{}

	err := r.db.Get(&dashboard.TotalBookings,
		`SELECT COUNT(*) FROM bookings WHERE customer_id = $1`, customerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Get(&dashboard.CompletedBookings,
		`SELECT COUNT(*) FROM bookings WHERE customer_id = $1 AND status = 'completed'`, customerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Get(&dashboard.TotalPaid, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN bookings b ON p.booking_id = b.booking_id
		WHERE b.customer_id = $1 AND p.payment_status = 'completed'`, customerID)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// DriverStats builds a driver's dashboard
func (r *DashboardRepository) DriverStats(driverID uuid.UUID) (*models.DriverDashboard, error) {
	dashboard := &models.DriverDashboard{}

	err := r.db.Get(&dashboard.TotalBookings,
		`SELECT COUNT(*) FROM bookings WHERE driver_id = $1`, driverID)
	if err != nil {
		return nil, err
	}

	err = r.db.Get(&dashboard.TotalVehicles,
		`SELECT COUNT(*) FROM vehicles WHERE driver_id = $1`, driverID)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM ratings
		WHERE driver_id = $1`, driverID,
	).Scan(&dashboard.TotalReviews, &dashboard.AvgRating)
	if err != nil {
		return nil, err
	}

	err = r.db.Get(&dashboard.TotalEarnings, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN bookings b ON p.booking_id = b.booking_id
		WHERE b.driver_id = $1 AND p.payment_status = 'completed'`, driverID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsVsDays, `
		SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*) AS count
		FROM bookings
		WHERE driver_id = $1
		GROUP BY day
		ORDER BY day`, driverID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsVsTime, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*) AS count
		FROM bookings
		WHERE driver_id = $1
		GROUP BY hour
		ORDER BY hour`, driverID)
	if err != nil {
		return nil, err
	}

	periods, err := r.periodCounts(`driver_id`, driverID)
	if err != nil {
		return nil, err
	}
	dashboard.BookingsToday = periods.Today
	dashboard.BookingsThisWeek = periods.ThisWeek
	dashboard.BookingsThisMonth = periods.ThisMonth
	dashboard.BookingsThisYear = periods.ThisYear

	err = r.db.Select(&dashboard.BookingsByVehicleTyp, `
		SELECT v.vehicle_type, COUNT(*) AS count
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		WHERE b.driver_id = $1
		GROUP BY v.vehicle_type
		ORDER BY count DESC`, driverID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsPerVehicle, `
		SELECT v.vehicle_id, v.model, COUNT(b.booking_id) AS count
		FROM vehicles v
		LEFT JOIN bookings b ON b.vehicle_id = v.vehicle_id
		WHERE v.driver_id = $1
		GROUP BY v.vehicle_id, v.model
		ORDER BY count DESC`, driverID)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// OwnerStats builds an owner's dashboard
func (r *DashboardRepository) OwnerStats(ownerID uuid.UUID) (*models.OwnerDashboard, error) {
	dashboard := &models.OwnerDashboard{}

	err := r.db.Get(&dashboard.TotalTrips,
		`SELECT COUNT(*) FROM bookings WHERE owner_id = $1 AND status = 'completed'`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Get(&dashboard.TotalRevenue, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN bookings b ON p.booking_id = b.booking_id
		WHERE b.owner_id = $1 AND p.payment_status = 'completed'`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Get(&dashboard.AvgRating, `
		SELECT COALESCE(AVG(rating), 0)
		FROM ratings
		WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsVsDays, `
		SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*) AS count
		FROM bookings
		WHERE owner_id = $1 AND created_at >= CURRENT_DATE - INTERVAL '7 days'
		GROUP BY day
		ORDER BY day`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsVsMonth, `
		SELECT DATE_TRUNC('month', created_at) AS month, COUNT(*) AS count
		FROM bookings
		WHERE owner_id = $1 AND created_at >= CURRENT_DATE - INTERVAL '12 months'
		GROUP BY month
		ORDER BY month`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByTime, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*) AS count
		FROM bookings
		WHERE owner_id = $1
		GROUP BY hour
		ORDER BY hour`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByVehicleTyp, `
		SELECT v.vehicle_type, COUNT(*) AS count
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		WHERE b.owner_id = $1
		GROUP BY v.vehicle_type
		ORDER BY count DESC`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsPerVehicle, `
		SELECT v.vehicle_id, v.model, COUNT(b.booking_id) AS count
		FROM vehicles v
		LEFT JOIN bookings b ON b.vehicle_id = v.vehicle_id
		WHERE v.owner_id = $1
		GROUP BY v.vehicle_id, v.model
		ORDER BY count DESC`, ownerID)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.RevenuePerVehicle, `
		SELECT v.vehicle_id, v.model, COALESCE(SUM(p.amount), 0) AS revenue
		FROM vehicles v
		LEFT JOIN bookings b ON b.vehicle_id = v.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'completed'
		WHERE v.owner_id = $1
		GROUP BY v.vehicle_id, v.model
		ORDER BY revenue DESC`, ownerID)
	if err != nil {
		return nil, err
	}

	periods, err := r.periodCounts(`owner_id`, ownerID)
	if err != nil {
		return nil, err
	}
	dashboard.BookingsToday = periods.Today
	dashboard.BookingsThisWeek = periods.ThisWeek
	dashboard.BookingsThisMonth = periods.ThisMonth
	dashboard.BookingsThisYear = periods.ThisYear

	return dashboard, nil
}

// AdminStats builds the platform-wide dashboard
func (r *DashboardRepository) AdminStats() (*models.AdminDashboard, error) {
	dashboard := &models.AdminDashboard{}

	err := r.db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM customers),
			   (SELECT COUNT(*) FROM drivers),
			   (SELECT COUNT(*) FROM owners),
			   (SELECT COUNT(*) FROM bookings),
			   (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'completed')`,
	).Scan(
		&dashboard.TotalCustomers, &dashboard.TotalDrivers, &dashboard.TotalOwners,
		&dashboard.TotalBookings, &dashboard.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByDay, `
		SELECT DATE_TRUNC('day', pickup_time) AS day, COUNT(*) AS count
		FROM bookings
		WHERE pickup_time >= CURRENT_DATE - INTERVAL '7 days'
		GROUP BY day
		ORDER BY day`)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByMonth, `
		SELECT DATE_TRUNC('month', b.pickup_time) AS month, COUNT(*) AS count,
			   SUM(p.amount) AS revenue
		FROM bookings b
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'completed'
		WHERE b.pickup_time >= CURRENT_DATE - INTERVAL '12 months'
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByYear, `
		SELECT DATE_TRUNC('year', b.pickup_time) AS year, COUNT(*) AS count,
			   SUM(p.amount) AS revenue
		FROM bookings b
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'completed'
		GROUP BY year
		ORDER BY year`)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByVehicleTyp, `
		SELECT v.vehicle_type, COUNT(*) AS count, SUM(p.amount) AS revenue
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'completed'
		GROUP BY v.vehicle_type
		ORDER BY count DESC`)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.BookingsByLocation, `
		SELECT b.pickup_location, COUNT(*) AS bookings, SUM(p.amount) AS revenue
		FROM bookings b
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'completed'
		GROUP BY b.pickup_location
		ORDER BY bookings DESC`)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.TopDrivers, `
		SELECT d.driver_id, d.full_name,
			   COUNT(b.booking_id) AS total_bookings,
			   COALESCE(AVG(r.rating), 0) AS avg_rating
		FROM drivers d
		JOIN bookings b ON b.driver_id = d.driver_id AND b.status = 'completed'
		LEFT JOIN ratings r ON r.booking_id = b.booking_id
		GROUP BY d.driver_id, d.full_name
		ORDER BY total_bookings DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&dashboard.TopVehicles, `
		SELECT v.vehicle_id, v.model, v.vehicle_type,
			   COUNT(b.booking_id) AS total_bookings,
			   COALESCE(AVG(r.rating), 0) AS avg_rating
		FROM vehicles v
		JOIN bookings b ON b.vehicle_id = v.vehicle_id AND b.status = 'completed'
		LEFT JOIN ratings r ON r.booking_id = b.booking_id
		GROUP BY v.vehicle_id, v.model, v.vehicle_type
		ORDER BY total_bookings DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// periodCounts counts one party's bookings in the calendar periods
// containing now. The column name comes from a fixed caller-supplied
// constant, never from user input.
func (r *DashboardRepository) periodCounts(column string, id uuid.UUID) (*models.PeriodCounts, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE created_at >= DATE_TRUNC('day', NOW())),
			   COUNT(*) FILTER (WHERE created_at >= DATE_TRUNC('week', NOW())),
			   COUNT(*) FILTER (WHERE created_at >= DATE_TRUNC('month', NOW())),
			   COUNT(*) FILTER (WHERE created_at >= DATE_TRUNC('year', NOW()))
		FROM bookings
		WHERE ` + column + ` = $1`

	periods := &models.PeriodCounts{}
	err := r.db.QueryRow(query, id).Scan(
		&periods.Today, &periods.ThisWeek, &periods.ThisMonth, &periods.ThisYear,
	)
	if err != nil {
		return nil, err
	}
	return periods, nil
}
