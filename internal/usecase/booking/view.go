package booking

import (
	"time"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/models"
	"github.com/glossbook/salon-booking/internal/timeparse"
)

// StylistRef and ServiceRef are the resolved reference shapes the mobile
// client renders in booking lists.

type StylistRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type ServiceRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

type CustomerRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingView struct {
	ID        uint         `json:"id"`
	User      *CustomerRef `json:"user,omitempty"`
	Stylist   StylistRef   `json:"stylist"`
	Service   ServiceRef   `json:"service"`
	StartTime *time.Time   `json:"start_time"`
	EndTime   *time.Time   `json:"end_time"`
	Price     float64      `json:"price"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// toView resolves references and normalizes the interval. Records from the
// legacy schema carry only date+time strings; those get start/end derived
// with the fixed one-hour rule. Records with neither shape keep null times
// instead of failing the whole list.
func toView(b *models.Booking, loc *time.Location, withUser bool) BookingView {
	v := BookingView{
		ID: b.ID,
		Stylist: StylistRef{
			ID:    b.Stylist.ID,
			Name:  b.Stylist.Name,
			Image: b.Stylist.Image,
		},
		Service: ServiceRef{
			ID:    b.Service.ID,
			Name:  b.Service.Name,
			Type:  b.Service.Type,
			Image: b.Service.Image,
			Price: b.Service.Price,
		},
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Price:     b.Price,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if withUser {
		v.User = &CustomerRef{
			ID:    b.User.ID,
			Name:  b.User.Name,
			Email: b.User.Email,
		}
	}

	if v.StartTime == nil && b.Date != "" && b.Time != "" {
		if start, err := timeparse.DateTime(b.Date, b.Time, loc); err == nil {
			end := domain.SlotEnd(start)
			v.StartTime = &start
			v.EndTime = &end
		}
	}

	return v
}
