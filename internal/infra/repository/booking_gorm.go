package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) HasConflict(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
	blocking domain.BlockingStatuses,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"stylist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			stylistID,
			blocking.Strings(),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateIfFree serializes the check-then-act sequence per stylist. Row
// locks cannot do this for a free slot (a FOR UPDATE read that matches no
// rows locks nothing under READ COMMITTED), so the transaction takes a
// stylist-scoped advisory lock first; the second of two concurrent creates
// waits here and then sees the first one's committed row in the overlap
// check.
func (r *BookingGormRepository) CreateIfFree(
	ctx context.Context,
	b *models.Booking,
	blocking domain.BlockingStatuses,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Held until commit/rollback; pg_advisory_xact_lock has no
		// explicit unlock.
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)", int64(b.StylistID),
		).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"stylist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.StylistID,
				blocking.Strings(),
				b.EndTime,
				b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Stylist").
		Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListAll(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Stylist").
		Preload("Service").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	return &b, nil
}

// --------------------------------------------------
// Booking (state change / delete)
// --------------------------------------------------

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("booking_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
