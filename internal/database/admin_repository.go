package database

import (
	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// AdminRepository handles database operations for the admins table.
// Admin accounts are provisioned out of band; there is no register path.
type AdminRepository struct {
	db DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	query := `
		SELECT admin_id, full_name, email, password, created_at
		FROM admins
		WHERE email = $1
	`

	admin := &models.Admin{}
	err := r.db.QueryRow(query, email).Scan(
		&admin.ID, &admin.FullName, &admin.Email, &admin.Password, &admin.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return admin, nil
}

// GetByID retrieves an admin by id
func (r *AdminRepository) GetByID(adminID uuid.UUID) (*models.Admin, error) {
	query := `
		SELECT admin_id, full_name, email, password, created_at
		FROM admins
		WHERE admin_id = $1
	`

	admin := &models.Admin{}
	err := r.db.QueryRow(query, adminID).Scan(
		&admin.ID, &admin.FullName, &admin.Email, &admin.Password, &admin.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return admin, nil
}
