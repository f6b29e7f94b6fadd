package database

import (
	"github.com/google/uuid"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// PaymentRepository handles database operations for the payments table.
// Payment rows are append-only; there is no update path.
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a completed payment record for a booking
func (r *PaymentRepository) Create(payment *models.Payment) error {
	query := `
		INSERT INTO payments (payment_id, booking_id, amount, payment_method, payment_status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, 'completed', $5, NOW())
		RETURNING payment_status, created_at
	`

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		payment.ID, payment.BookingID, payment.Amount, payment.PaymentMethod, payment.TransactionID,
	).Scan(&payment.PaymentStatus, &payment.CreatedAt)
}

// ListAll retrieves every payment with the paying customer's name, newest first
func (r *PaymentRepository) ListAll() ([]models.PaymentDetail, error) {
	query := `
		SELECT p.payment_id, p.booking_id, p.amount, p.payment_method, p.payment_status,
			   p.transaction_id, p.created_at,
			   c.full_name AS customer_name
		FROM payments p
		LEFT JOIN bookings b ON p.booking_id = b.booking_id
		LEFT JOIN customers c ON b.customer_id = c.customer_id
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.PaymentDetail{}
	for rows.Next() {
		var p models.PaymentDetail
		err := rows.Scan(
			&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.PaymentStatus,
			&p.TransactionID, &p.CreatedAt,
			&p.CustomerName,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
