package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/models"
	"github.com/glossbook/salon-booking/internal/notify"
	"github.com/glossbook/salon-booking/internal/timeparse"
)

// Notifier dispatches a push without blocking or failing the caller.
type Notifier interface {
	Dispatch(p notify.Push)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	StylistID uint
	ServiceID uint

	Date  string // "2006-01-02"
	Time  string // "10:00 AM" or "15:04"
	Price float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	notifier Notifier
	blocking domain.BlockingStatuses
	location *time.Location
}

func NewCreateBooking(
	repo domain.Repository,
	notifier Notifier,
	blocking domain.BlockingStatuses,
	location *time.Location,
) *CreateBooking {
	if len(blocking) == 0 {
		blocking = domain.DefaultBlocking()
	}
	if location == nil {
		location = timeparse.Location("")
	}
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		blocking: blocking,
		location: location,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.StylistID == 0 || in.ServiceID == 0 || in.Price <= 0 {
		return nil, httperr.ErrBusiness("missing_booking_fields")
	}

	start, err := timeparse.DateTime(in.Date, in.Time, uc.location)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// Every booking occupies exactly one hour, independent of service.
	end := domain.SlotEnd(start)

	b := &models.Booking{
		UserID:    in.UserID,
		StylistID: in.StylistID,
		ServiceID: in.ServiceID,
		StartTime: &start,
		EndTime:   &end,
		Price:     in.Price,
		Status:    string(domain.InitialStatus()),
	}

	// Conflict check and insert share one transaction; a losing race
	// surfaces here as time_conflict, same as a plain busy slot.
	if err := uc.repo.CreateIfFree(ctx, b, uc.blocking); err != nil {
		return nil, err
	}

	uc.sendConfirmation(ctx, b, in)

	return b, nil
}

// sendConfirmation is fire-and-forget: a missing user or push token just
// means no notification goes out.
func (uc *CreateBooking) sendConfirmation(
	ctx context.Context,
	b *models.Booking,
	in CreateBookingInput,
) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.repo.GetUserByID(ctx, b.UserID)
	if err != nil || user.ExpoPushToken == "" {
		return
	}

	uc.notifier.Dispatch(notify.Push{
		To:    user.ExpoPushToken,
		Title: "Booking Confirmed",
		Body:  fmt.Sprintf("Your appointment on %s at %s has been booked!", in.Date, in.Time),
	})
}
