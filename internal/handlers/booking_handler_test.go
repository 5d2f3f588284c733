package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/middleware"
	"github.com/glossbook/salon-booking/internal/models"
	ucBooking "github.com/glossbook/salon-booking/internal/usecase/booking"
)

// stubRepo drives the use cases without a database.
type stubRepo struct {
	createErr error
	created   *models.Booking
	byID      *models.Booking
	byIDErr   error
}

func (s *stubRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (s *stubRepo) HasConflict(ctx context.Context, stylistID uint, start, end time.Time, blocking domain.BlockingStatuses) (bool, error) {
	return false, nil
}

func (s *stubRepo) CreateIfFree(ctx context.Context, b *models.Booking, blocking domain.BlockingStatuses) error {
	if s.createErr != nil {
		return s.createErr
	}
	b.ID = 1
	s.created = b
	return nil
}

func (s *stubRepo) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	return s.byID, s.byIDErr
}

func (s *stubRepo) Update(ctx context.Context, b *models.Booking) error { return nil }

func (s *stubRepo) Delete(ctx context.Context, id uint) error { return s.byIDErr }

func newBookingRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewBookingHandler(
		ucBooking.NewCreateBooking(repo, nil, nil, time.UTC),
		ucBooking.NewListMyBookings(repo, time.UTC),
		ucBooking.NewListAllBookings(repo, time.UTC),
		ucBooking.NewUpdateBookingStatus(repo),
		ucBooking.NewDeleteBooking(repo),
		ucBooking.NewCheckAvailability(repo, nil, time.UTC),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(7))
		c.Set(middleware.ContextUserRole, "admin")
	})
	r.POST("/api/bookings", h.Create)
	r.GET("/api/bookings/availability", h.Availability)
	r.PUT("/api/bookings/:id/status", h.UpdateStatus)
	r.DELETE("/api/bookings/:id", h.Delete)
	return r
}

func postJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookingHandlerCreate_Success(t *testing.T) {
	repo := &stubRepo{}
	r := newBookingRouter(repo)

	w := postJSON(r, http.MethodPost, "/api/bookings", gin.H{
		"stylistId": 2,
		"serviceId": 3,
		"date":      "2026-04-20",
		"time":      "10:00 AM",
		"price":     45,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, uint(7), repo.created.UserID)
	assert.Equal(t, "pending", repo.created.Status)
}

func TestBookingHandlerCreate_TimeConflict(t *testing.T) {
	repo := &stubRepo{createErr: httperr.ErrBusiness("time_conflict")}
	r := newBookingRouter(repo)

	w := postJSON(r, http.MethodPost, "/api/bookings", gin.H{
		"stylistId": 2,
		"serviceId": 3,
		"date":      "2026-04-20",
		"time":      "10:00 AM",
		"price":     45,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "time_conflict", resp.Code)
	assert.Contains(t, resp.Message, "choose another time")
}

func TestBookingHandlerCreate_MissingFields(t *testing.T) {
	r := newBookingRouter(&stubRepo{})

	w := postJSON(r, http.MethodPost, "/api/bookings", gin.H{
		"stylistId": 2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerUpdateStatus_InvalidState(t *testing.T) {
	repo := &stubRepo{byID: &models.Booking{ID: 1, Status: "rejected"}}
	r := newBookingRouter(repo)

	w := postJSON(r, http.MethodPut, "/api/bookings/1/status", gin.H{
		"status": "accepted",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_state", resp.Code)
}

func TestBookingHandlerUpdateStatus_Success(t *testing.T) {
	repo := &stubRepo{byID: &models.Booking{ID: 1, Status: "pending"}}
	r := newBookingRouter(repo)

	w := postJSON(r, http.MethodPut, "/api/bookings/1/status", gin.H{
		"status": "accepted",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
}

func TestBookingHandlerAvailability_Free(t *testing.T) {
	r := newBookingRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/bookings/availability?stylistId=2&date=2026-04-20&time=10:00+AM", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["available"])
}

func TestBookingHandlerUpdateStatus_NotFound(t *testing.T) {
	repo := &stubRepo{byIDErr: httperr.ErrBusiness("booking_not_found")}
	r := newBookingRouter(repo)

	w := postJSON(r, http.MethodPut, "/api/bookings/99/status", gin.H{
		"status": "accepted",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandlerDelete_NotFound(t *testing.T) {
	repo := &stubRepo{byIDErr: httperr.ErrBusiness("booking_not_found")}
	r := newBookingRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
