package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// CustomerRepository handles database operations for the customers table
type CustomerRepository struct {
	db DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer account. The password must already be hashed.
func (r *CustomerRepository) Create(fullName, email, hashedPassword, phone string) (*models.Customer, error) {
	query := `
		INSERT INTO customers (customer_id, full_name, email, password, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING customer_id, full_name, email, password, phone, created_at, updated_at
	`

	customer, err := r.scanCustomer(r.db.QueryRow(query, uuid.New(), fullName, email, hashedPassword, phone))
	if err != nil {
		return nil, translateError(err)
	}
	return customer, nil
}

// GetByEmail retrieves a customer by email
func (r *CustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	query := `
		SELECT customer_id, full_name, email, password, phone, created_at, updated_at
		FROM customers
		WHERE email = $1
	`

	customer, err := r.scanCustomer(r.db.QueryRow(query, email))
	if err != nil {
		return nil, translateError(err)
	}
	return customer, nil
}

// GetByID retrieves a customer by id
func (r *CustomerRepository) GetByID(customerID uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT customer_id, full_name, email, password, phone, created_at, updated_at
		FROM customers
		WHERE customer_id = $1
	`

	customer, err := r.scanCustomer(r.db.QueryRow(query, customerID))
	if err != nil {
		return nil, translateError(err)
	}
	return customer, nil
}

// UpdateProfile updates the customer's editable profile fields
func (r *CustomerRepository) UpdateProfile(customerID uuid.UUID, fullName, phone string) (*models.Customer, error) {
	query := `
		UPDATE customers
		SET full_name = $1, phone = $2, updated_at = NOW()
		WHERE customer_id = $3
		RETURNING customer_id, full_name, email, password, phone, created_at, updated_at
	`

	customer, err := r.scanCustomer(r.db.QueryRow(query, fullName, phone, customerID))
	if err != nil {
		return nil, translateError(err)
	}
	return customer, nil
}

// List retrieves all customers, newest first
func (r *CustomerRepository) List() ([]models.Customer, error) {
	query := `
		SELECT customer_id, full_name, email, password, phone, created_at, updated_at
		FROM customers
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Password, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Delete removes a customer account
func (r *CustomerRepository) Delete(customerID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM customers WHERE customer_id = $1`, customerID)
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

func (r *CustomerRepository) scanCustomer(row *sql.Row) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(
		&customer.ID, &customer.FullName, &customer.Email, &customer.Password,
		&customer.Phone, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}
