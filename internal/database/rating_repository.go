package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// RatingRepository handles database operations for the ratings table
type RatingRepository struct {
	db DB
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create inserts a rating a customer left for a booking
func (r *RatingRepository) Create(rating *models.Rating) error {
	query := `
		INSERT INTO ratings (rating_id, booking_id, customer_id, driver_id, owner_id, vehicle_id, rating, review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		rating.ID, rating.BookingID, rating.CustomerID, rating.DriverID,
		rating.OwnerID, rating.VehicleID, rating.Rating, rating.Review,
	).Scan(&rating.CreatedAt)
}

// ListAll retrieves every rating with display names, newest first
func (r *RatingRepository) ListAll() ([]models.RatingDetail, error) {
	query := `
		SELECT r.rating_id, r.booking_id, r.customer_id, r.driver_id, r.owner_id, r.vehicle_id,
			   r.rating, r.review, r.created_at,
			   c.full_name AS customer_name, d.full_name AS driver_name,
			   o.full_name AS owner_name, v.model AS vehicle_model
		FROM ratings r
		LEFT JOIN customers c ON r.customer_id = c.customer_id
		LEFT JOIN drivers d ON r.driver_id = d.driver_id
		LEFT JOIN owners o ON r.owner_id = o.owner_id
		LEFT JOIN vehicles v ON r.vehicle_id = v.vehicle_id
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []models.RatingDetail{}
	for rows.Next() {
		var rd models.RatingDetail
		var driverID sql.NullString
		err := rows.Scan(
			&rd.ID, &rd.BookingID, &rd.CustomerID, &driverID, &rd.OwnerID, &rd.VehicleID,
			&rd.Rating, &rd.Review, &rd.CreatedAt,
			&rd.CustomerName, &rd.DriverName, &rd.OwnerName, &rd.VehicleModel,
		)
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			id, err := uuid.Parse(driverID.String)
			if err != nil {
				return nil, err
			}
			rd.DriverID = &id
		}
		ratings = append(ratings, rd)
	}
	return ratings, rows.Err()
}
