package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// DriverRepository handles database operations for the drivers table
type DriverRepository struct {
	db DB
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create inserts a new driver account. The password must already be hashed.
func (r *DriverRepository) Create(fullName, email, hashedPassword, phone string) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (driver_id, full_name, email, password, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING driver_id, full_name, email, password, phone, created_at, updated_at
	`

	driver, err := r.scanDriver(r.db.QueryRow(query, uuid.New(), fullName, email, hashedPassword, phone))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// GetByEmail retrieves a driver by email
func (r *DriverRepository) GetByEmail(email string) (*models.Driver, error) {
	query := `
		SELECT driver_id, full_name, email, password, phone, created_at, updated_at
		FROM drivers
		WHERE email = $1
	`

	driver, err := r.scanDriver(r.db.QueryRow(query, email))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// GetByID retrieves a driver by id
func (r *DriverRepository) GetByID(driverID uuid.UUID) (*models.Driver, error) {
	query := `
		SELECT driver_id, full_name, email, password, phone, created_at, updated_at
		FROM drivers
		WHERE driver_id = $1
	`

	driver, err := r.scanDriver(r.db.QueryRow(query, driverID))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// UpdateProfile updates the driver's editable profile fields
func (r *DriverRepository) UpdateProfile(driverID uuid.UUID, fullName, phone string) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET full_name = $1, phone = $2, updated_at = NOW()
		WHERE driver_id = $3
		RETURNING driver_id, full_name, email, password, phone, created_at, updated_at
	`

	driver, err := r.scanDriver(r.db.QueryRow(query, fullName, phone, driverID))
	if err != nil {
		return nil, translateError(err)
	}
	return driver, nil
}

// List retrieves all drivers, newest first
func (r *DriverRepository) List() ([]models.Driver, error) {
	query := `
		SELECT driver_id, full_name, email, password, phone, created_at, updated_at
		FROM drivers
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.FullName, &d.Email, &d.Password, &d.Phone, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// Delete removes a driver account
func (r *DriverRepository) Delete(driverID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM drivers WHERE driver_id = $1`, driverID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DriverRepository) scanDriver(row *sql.Row) (*models.Driver, error) {
	driver := &models.Driver{}
	err := row.Scan(
		&driver.ID, &driver.FullName, &driver.Email, &driver.Password,
		&driver.Phone, &driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return driver, nil
}
