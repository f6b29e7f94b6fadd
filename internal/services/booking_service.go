package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

// Notifier delivers a booking update event to a customer's open realtime
// connection, if any. Delivery is at most once and best effort.
type Notifier interface {
	NotifyCustomer(customerID uuid.UUID, event models.BookingUpdateEvent)
}

// BookingService enforces the booking lifecycle on top of the repository.
// Status changes are validated against the transition table before the
// scoped update runs, and the affected customer is notified afterwards.
type BookingService struct {
	bookings *database.BookingRepository
	notifier Notifier
}

// NewBookingService creates a new BookingService
func NewBookingService(bookings *database.BookingRepository, notifier Notifier) *BookingService {
	return &BookingService{
		bookings: bookings,
		notifier: notifier,
	}
}

// UpdateStatusByOwner moves a booking to the given status on behalf of the
// assigned owner. Returns database.ErrNotFound when the booking does not
// exist or belongs to another owner, models.ErrInvalidStatus for an unknown
// status value, and models.ErrInvalidTransition when the lifecycle forbids
// the change.
func (s *BookingService) UpdateStatusByOwner(bookingID, ownerID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	return s.updateStatus(bookingID, status, func(current *models.Booking) bool {
		return current.OwnerID == ownerID
	}, func() (*models.Booking, error) {
		return s.bookings.UpdateStatusByOwner(bookingID, ownerID, status)
	})
}

// UpdateStatusByDriver moves a booking to the given status on behalf of the
// assigned driver. Error contract matches UpdateStatusByOwner.
func (s *BookingService) UpdateStatusByDriver(bookingID, driverID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	return s.updateStatus(bookingID, status, func(current *models.Booking) bool {
		return current.DriverID != nil && *current.DriverID == driverID
	}, func() (*models.Booking, error) {
		return s.bookings.UpdateStatusByDriver(bookingID, driverID, status)
	})
}

func (s *BookingService) updateStatus(bookingID uuid.UUID, status models.BookingStatus, owns func(*models.Booking) bool, apply func() (*models.Booking, error)) (*models.Booking, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	current, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	// An unrelated caller gets the same answer as a missing booking.
	if !owns(current) {
		return nil, database.ErrNotFound
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, models.ErrInvalidTransition
	}

	booking, err := apply()
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCustomer(booking.CustomerID, models.BookingUpdateEvent{
			Type:      "booking_update",
			BookingID: booking.ID,
			Status:    booking.Status,
		})
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"status":     booking.Status,
	}).Info("booking status updated")

	return booking, nil
}
