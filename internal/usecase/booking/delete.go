package booking

import (
	"context"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
)

type DeleteBooking struct {
	repo domain.Repository
}

func NewDeleteBooking(repo domain.Repository) *DeleteBooking {
	return &DeleteBooking{repo: repo}
}

// Execute removes the booking permanently, from any status. Deleting an id
// that does not exist (including a second delete of the same id) returns
// booking_not_found.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
) error {
	return uc.repo.Delete(ctx, bookingID)
}
