package booking

import (
	"context"
	"time"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/timeparse"
)

type ListAllBookings struct {
	repo     domain.Repository
	location *time.Location
}

func NewListAllBookings(
	repo domain.Repository,
	location *time.Location,
) *ListAllBookings {
	if location == nil {
		location = timeparse.Location("")
	}
	return &ListAllBookings{
		repo:     repo,
		location: location,
	}
}

// Execute returns every booking with customer, stylist and service
// resolved. No pagination or filtering; the admin dashboard consumes the
// whole list.
func (uc *ListAllBookings) Execute(
	ctx context.Context,
) ([]BookingView, error) {

	bookings, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, toView(&bookings[i], uc.location, true))
	}

	return views, nil
}
