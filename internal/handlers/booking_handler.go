package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/httpresp"
	"github.com/glossbook/salon-booking/internal/middleware"
	ucBooking "github.com/glossbook/salon-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	listMy       *ucBooking.ListMyBookings
	listAll      *ucBooking.ListAllBookings
	updateStatus *ucBooking.UpdateBookingStatus
	remove       *ucBooking.DeleteBooking
	availability *ucBooking.CheckAvailability
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	listMy *ucBooking.ListMyBookings,
	listAll *ucBooking.ListAllBookings,
	updateStatus *ucBooking.UpdateBookingStatus,
	remove *ucBooking.DeleteBooking,
	availability *ucBooking.CheckAvailability,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		listMy:       listMy,
		listAll:      listAll,
		updateStatus: updateStatus,
		remove:       remove,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	StylistID uint    `json:"stylistId" binding:"required"`
	ServiceID uint    `json:"serviceId" binding:"required"`
	Date      string  `json:"date" binding:"required"` // "2006-01-02"
	Time      string  `json:"time" binding:"required"` // "10:00 AM"
	Price     float64 `json:"price" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing required booking fields.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:    userID,
		StylistID: req.StylistID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Price:     req.Price,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "time_conflict"):
			httperr.BadRequest(c, "time_conflict",
				"This time slot is already booked. Please choose another time.")
		case httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		case httperr.IsBusiness(err, "missing_booking_fields"):
			httperr.BadRequest(c, "missing_booking_fields", "Missing required booking fields.")
		default:
			httperr.Internal(c, "failed_to_create_booking", "Failed to create booking.")
		}
		return
	}

	c.JSON(201, b)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	stylistID, err := strconv.ParseUint(c.Query("stylistId"), 10, 64)
	if err != nil || stylistID == 0 {
		httperr.BadRequest(c, "invalid_request", "stylistId is required.")
		return
	}

	free, err := h.availability.Execute(
		c.Request.Context(),
		uint(stylistID),
		c.Query("date"),
		c.Query("time"),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		case httperr.IsBusiness(err, "missing_booking_fields"):
			httperr.BadRequest(c, "missing_booking_fields", "stylistId, date and time are required.")
		default:
			httperr.Internal(c, "failed_to_check_availability", "Failed to check availability.")
		}
		return
	}

	httpresp.OK(c, gin.H{"available": free})
}

// ======================================================
// LIST (customer)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listMy.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to fetch bookings.")
		return
	}

	httpresp.List(c, views)
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *BookingHandler) ListAll(c *gin.Context) {
	views, err := h.listAll.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to fetch bookings.")
		return
	}

	httpresp.OK(c, views)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	b, err := h.updateStatus.Execute(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Status must be accepted or rejected.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Booking status can no longer change.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Failed to update booking.")
		}
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), uint(id)); err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_booking", "Failed to delete booking.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Booking deleted successfully"})
}
