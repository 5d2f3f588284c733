package booking

import (
	"context"
	"time"

	"github.com/glossbook/salon-booking/internal/models"
)

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Booking (create / conflict) --------

	// HasConflict is the read-only slot check: true when any booking for
	// the stylist whose status is in blocking overlaps [start,end).
	HasConflict(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
		blocking BlockingStatuses,
	) (bool, error)

	// CreateIfFree runs the conflict check and the insert inside one
	// transaction, locking the stylist's overlapping rows, and returns
	// the time_conflict business error when the slot is taken.
	CreateIfFree(
		ctx context.Context,
		b *models.Booking,
		blocking BlockingStatuses,
	) error

	// -------- Booking (read) --------
	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListAll(
		ctx context.Context,
	) ([]models.Booking, error)

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// -------- Booking (state change / delete) --------
	Update(
		ctx context.Context,
		b *models.Booking,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error
}
