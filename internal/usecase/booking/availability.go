package booking

import (
	"context"
	"time"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/timeparse"
)

// CheckAvailability answers "is this slot still free" for the booking form,
// without creating anything. The create path re-checks inside its
// transaction, so a stale yes here only costs the customer a conflict error.
type CheckAvailability struct {
	repo     domain.Repository
	blocking domain.BlockingStatuses
	location *time.Location
}

func NewCheckAvailability(
	repo domain.Repository,
	blocking domain.BlockingStatuses,
	location *time.Location,
) *CheckAvailability {
	if len(blocking) == 0 {
		blocking = domain.DefaultBlocking()
	}
	if location == nil {
		location = timeparse.Location("")
	}
	return &CheckAvailability{
		repo:     repo,
		blocking: blocking,
		location: location,
	}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	stylistID uint,
	date, clock string,
) (bool, error) {

	if stylistID == 0 {
		return false, httperr.ErrBusiness("missing_booking_fields")
	}

	start, err := timeparse.DateTime(date, clock, uc.location)
	if err != nil {
		return false, httperr.ErrBusiness("invalid_date_or_time")
	}

	conflict, err := uc.repo.HasConflict(ctx, stylistID, start, domain.SlotEnd(start), uc.blocking)
	if err != nil {
		return false, err
	}

	return !conflict, nil
}
