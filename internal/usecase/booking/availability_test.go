package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/httperr"
)

func TestCheckAvailability_FreeSlot(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCheckAvailability(repo, nil, time.UTC)

	start := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	repo.On("HasConflict", mock.Anything, uint(2), start, start.Add(time.Hour), domain.DefaultBlocking()).
		Return(false, nil)

	free, err := uc.Execute(context.Background(), 2, "2026-04-20", "10:00 AM")

	assert.NoError(t, err)
	assert.True(t, free)
	repo.AssertExpectations(t)
}

func TestCheckAvailability_BusySlot(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCheckAvailability(repo, nil, time.UTC)

	repo.On("HasConflict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)

	free, err := uc.Execute(context.Background(), 2, "2026-04-20", "10:00 AM")

	assert.NoError(t, err)
	assert.False(t, free)
}

func TestCheckAvailability_InvalidInput(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCheckAvailability(repo, nil, time.UTC)

	_, err := uc.Execute(context.Background(), 0, "2026-04-20", "10:00 AM")
	assert.True(t, httperr.IsBusiness(err, "missing_booking_fields"))

	_, err = uc.Execute(context.Background(), 2, "2026-04-20", "sometime")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
