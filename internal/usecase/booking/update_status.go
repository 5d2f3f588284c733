package booking

import (
	"context"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/models"
)

type UpdateBookingStatus struct {
	repo domain.Repository
}

func NewUpdateBookingStatus(repo domain.Repository) *UpdateBookingStatus {
	return &UpdateBookingStatus{repo: repo}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	bookingID uint,
	status string,
) (*models.Booking, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(domain.Status(b.Status), to); err != nil {
		return nil, err
	}

	b.Status = string(to)
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}
