package booking

import (
	"context"
	"time"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/timeparse"
)

type ListMyBookings struct {
	repo     domain.Repository
	location *time.Location
}

func NewListMyBookings(
	repo domain.Repository,
	location *time.Location,
) *ListMyBookings {
	if location == nil {
		location = timeparse.Location("")
	}
	return &ListMyBookings{
		repo:     repo,
		location: location,
	}
}

func (uc *ListMyBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]BookingView, error) {

	bookings, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, toView(&bookings[i], uc.location, false))
	}

	return views, nil
}
