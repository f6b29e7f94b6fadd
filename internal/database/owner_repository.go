package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// OwnerRepository handles database operations for the owners table
type OwnerRepository struct {
	db DB
}

// NewOwnerRepository creates a new OwnerRepository
func NewOwnerRepository(db DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Create inserts a new owner account. The password must already be hashed.
func (r *OwnerRepository) Create(fullName, email, hashedPassword, phone string) (*models.Owner, error) {
	query := `
		INSERT INTO owners (owner_id, full_name, email, password, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING owner_id, full_name, email, password, phone, created_at, updated_at
	`

	owner, err := r.scanOwner(r.db.QueryRow(query, uuid.New(), fullName, email, hashedPassword, phone))
	if err != nil {
		return nil, translateError(err)
	}
	return owner, nil
}

// GetByEmail retrieves an owner by email
func (r *OwnerRepository) GetByEmail(email string) (*models.Owner, error) {
	query := `
		SELECT owner_id, full_name, email, password, phone, created_at, updated_at
		FROM owners
		WHERE email = $1
	`

	owner, err := r.scanOwner(r.db.QueryRow(query, email))
	if err != nil {
		return nil, translateError(err)
	}
	return owner, nil
}

// GetByID retrieves an owner by id
func (r *OwnerRepository) GetByID(ownerID uuid.UUID) (*models.Owner, error) {
	query := `
		SELECT owner_id, full_name, email, password, phone, created_at, updated_at
		FROM owners
		WHERE owner_id = $1
	`

	owner, err := r.scanOwner(r.db.QueryRow(query, ownerID))
	if err != nil {
		return nil, translateError(err)
	}
	return owner, nil
}

// UpdateProfile updates the owner's editable profile fields
func (r *OwnerRepository) UpdateProfile(ownerID uuid.UUID, fullName, phone string) (*models.Owner, error) {
	query := `
		UPDATE owners
		SET full_name = $1, phone = $2, updated_at = NOW()
		WHERE owner_id = $3
		RETURNING owner_id, full_name, email, password, phone, created_at, updated_at
	`

	owner, err := r.scanOwner(r.db.QueryRow(query, fullName, phone, ownerID))
	if err != nil {
		return nil, translateError(err)
	}
	return owner, nil
}

// List retrieves all owners, newest first
func (r *OwnerRepository) List() ([]models.Owner, error) {
	query := `
		SELECT owner_id, full_name, email, password, phone, created_at, updated_at
		FROM owners
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := []models.Owner{}
	for rows.Next() {
		var o models.Owner
		if err := rows.Scan(&o.ID, &o.FullName, &o.Email, &o.Password, &o.Phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

// Delete removes an owner account
func (r *OwnerRepository) Delete(ownerID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM owners WHERE owner_id = $1`, ownerID)
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

func (r *OwnerRepository) scanOwner(row *sql.Row) (*models.Owner, error) {
	owner := &models.Owner{}
	err := row.Scan(
		&owner.ID, &owner.FullName, &owner.Email, &owner.Password,
		&owner.Phone, &owner.CreatedAt, &owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return owner, nil
}
