package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerCols = []string{
	"customer_id", "full_name", "email", "password", "phone", "created_at", "updated_at",
}

func TestCustomerRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		customerID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO customers`).
			WithArgs(sqlmock.AnyArg(), "Nimal Perera", "nimal@example.com", sqlmock.AnyArg(), "+94771234567").
			WillReturnRows(sqlmock.NewRows(customerCols).AddRow(
				customerID, "Nimal Perera", "nimal@example.com", "$2a$10$hash", "+94771234567", now, nil,
			))

		customer, err := repo.Create("Nimal Perera", "nimal@example.com", "$2a$10$hash", "+94771234567")
		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "nimal@example.com", customer.Email)
		assert.False(t, customer.UpdatedAt.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO customers`).
			WithArgs(sqlmock.AnyArg(), "Nimal Perera", "nimal@example.com", sqlmock.AnyArg(), "+94771234567").
			WillReturnError(&pq.Error{Code: "23505"})

		customer, err := repo.Create("Nimal Perera", "nimal@example.com", "$2a$10$hash", "+94771234567")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.Nil(t, customer)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO customers`).
			WillReturnError(fmt.Errorf("database error"))

		customer, err := repo.Create("Nimal Perera", "nimal@example.com", "$2a$10$hash", "+94771234567")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
		assert.Nil(t, customer)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		customerID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM customers`).
			WithArgs("nimal@example.com").
			WillReturnRows(sqlmock.NewRows(customerCols).AddRow(
				customerID, "Nimal Perera", "nimal@example.com", "$2a$10$hash", "+94771234567", now, now,
			))

		customer, err := repo.GetByEmail("nimal@example.com")
		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "$2a$10$hash", customer.Password)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM customers`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows(customerCols))

		customer, err := repo.GetByEmail("missing@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, customer)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM customers`).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(customerID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM customers`).
			WithArgs(customerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(customerID), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
