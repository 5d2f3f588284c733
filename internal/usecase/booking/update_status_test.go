package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/models"
)

func TestUpdateBookingStatus_AcceptPending(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateBookingStatus(repo)

	repo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Booking{ID: 1, Status: "pending"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	b, err := uc.Execute(context.Background(), 1, "accepted")

	assert.NoError(t, err)
	assert.Equal(t, "accepted", b.Status)
}

func TestUpdateBookingStatus_RejectPending(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateBookingStatus(repo)

	repo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Booking{ID: 1, Status: "pending"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	b, err := uc.Execute(context.Background(), 1, "rejected")

	assert.NoError(t, err)
	assert.Equal(t, "rejected", b.Status)
}

func TestUpdateBookingStatus_TerminalStatesAreFinal(t *testing.T) {
	for _, current := range []string{"accepted", "rejected"} {
		repo := new(MockRepository)
		uc := NewUpdateBookingStatus(repo)

		repo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Booking{ID: 1, Status: current}, nil)

		_, err := uc.Execute(context.Background(), 1, "accepted")

		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "from %s", current)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestUpdateBookingStatus_UnknownStatus(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateBookingStatus(repo)

	_, err := uc.Execute(context.Background(), 1, "done")

	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	repo := new(MockRepository)
	uc := NewUpdateBookingStatus(repo)

	repo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, httperr.ErrBusiness("booking_not_found"))

	_, err := uc.Execute(context.Background(), 99, "accepted")

	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}
