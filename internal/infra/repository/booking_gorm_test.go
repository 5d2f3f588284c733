package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/models"
)

// These tests run against a real Postgres because the overlap predicate and
// the advisory-lock serialization live in SQL, not in Go.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Stylist{},
		&models.Service{},
		&models.Booking{},
	))
	require.NoError(t, db.Exec("DELETE FROM bookings").Error)

	return db
}

func newBooking(stylistID uint, start time.Time, status string) *models.Booking {
	end := start.Add(time.Hour)
	return &models.Booking{
		UserID:    1,
		StylistID: stylistID,
		ServiceID: 1,
		StartTime: &start,
		EndTime:   &end,
		Price:     45,
		Status:    status,
	}
}

func TestCreateIfFree_OverlapBlockedPerStatus(t *testing.T) {
	db := testDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

	// Under the default policy every status keeps its slot blocked,
	// rejected included.
	for i, status := range []string{"pending", "accepted", "rejected"} {
		stylistID := uint(100 + i)

		require.NoError(t, repo.CreateIfFree(ctx, newBooking(stylistID, base, status), domain.DefaultBlocking()))

		err := repo.CreateIfFree(ctx, newBooking(stylistID, base.Add(30*time.Minute), "pending"), domain.DefaultBlocking())
		assert.True(t, httperr.IsBusiness(err, "time_conflict"), "existing status %s", status)
	}
}

func TestCreateIfFree_RejectedFreesSlotUnderNarrowPolicy(t *testing.T) {
	db := testDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	narrow := domain.BlockingStatuses{domain.StatusPending, domain.StatusAccepted}

	require.NoError(t, repo.CreateIfFree(ctx, newBooking(200, base, "rejected"), narrow))

	// The rejected booking no longer blocks, so the same slot books again.
	assert.NoError(t, repo.CreateIfFree(ctx, newBooking(200, base, "pending"), narrow))
}

func TestCreateIfFree_TouchingEndpointsDoNotConflict(t *testing.T) {
	db := testDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateIfFree(ctx, newBooking(300, base, "pending"), domain.DefaultBlocking()))

	// [11:00,12:00) after [10:00,11:00) and [09:00,10:00) before it.
	assert.NoError(t, repo.CreateIfFree(ctx, newBooking(300, base.Add(time.Hour), "pending"), domain.DefaultBlocking()))
	assert.NoError(t, repo.CreateIfFree(ctx, newBooking(300, base.Add(-time.Hour), "pending"), domain.DefaultBlocking()))
}

func TestCreateIfFree_ConcurrentCreatesForFreeSlot(t *testing.T) {
	db := testDB(t)
	repo := NewBookingGormRepository(db)

	base := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

	// Both requests target the same free slot. The advisory lock makes one
	// wait for the other's commit, so exactly one may win.
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateIfFree(context.Background(), newBooking(400, base, "pending"), domain.DefaultBlocking())
		}(i)
	}
	wg.Wait()

	created := 0
	for i, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "time_conflict"), fmt.Sprintf("worker %d: %v", i, err))
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Where("stylist_id = ?", 400).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
