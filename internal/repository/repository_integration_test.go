//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/Eursukkul/doctor-booking/internal/repository"
	"github.com/Eursukkul/doctor-booking/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDoctorRepository_SeedAndFind(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	repo := repository.NewDoctorRepository(testDB)

	inserted, err := service.NewDoctorSeeder(repo, zap.NewNop()).Run(ctx)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Second run sees a populated directory.
	inserted, err = service.NewDoctorSeeder(repo, zap.NewNop()).Run(ctx)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	doctors, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 4)
	assert.Equal(t, "Dr. Arvind Patel", doctors[0].Name)

	got, err := repo.FindByID(ctx, doctors[0].ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("800.00").Equal(got.Price))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	require.NoError(t, testDB.Create(&models.User{
		Username: "alice", Email: "alice@example.com", Firstname: "Alice", Lastname: "Smith",
	}).Error)
	repo := repository.NewUserRepository(testDB)

	user, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingRepository_SaveAndQuery(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	repo := repository.NewBookingRepository(testDB)

	active := &models.Booking{
		ID: uuid.New(), DoctorID: "D1", Price: decimal.NewFromInt(500),
		Status: models.StatusActive, BookedBy: "alice",
	}
	inactive := &models.Booking{
		ID: uuid.New(), DoctorID: "D1", Status: models.StatusInactive, BookedBy: "alice",
	}
	other := &models.Booking{
		ID: uuid.New(), DoctorID: "D1", Status: models.StatusActive, BookedBy: "bob",
	}
	for _, b := range []*models.Booking{active, inactive, other} {
		require.NoError(t, repo.Save(ctx, b))
	}

	got, err := repo.FindByStatusAndBookedBy(ctx, models.StatusActive, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)

	none, err := repo.FindByStatusAndBookedBy(ctx, models.StatusActive, "carol")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	// Save on an existing id overwrites the row.
	active.BookingClass = "EMERGENCY"
	require.NoError(t, repo.Save(ctx, active))
	reloaded, err := repo.FindByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "EMERGENCY", reloaded.BookingClass)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// Full ledger flow against postgres with notifications disabled.
func TestBookingLedger_EndToEnd(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	svc := service.NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewDoctorRepository(testDB),
		repository.NewUserRepository(testDB),
		nil, nil, zap.NewNop(),
	)
	price := decimal.NewFromInt(500)

	out := svc.CreateBooking(ctx, service.CreateBookingInput{
		DoctorID: uuid.NewString(), Price: &price, BookingClass: "GENERAL (15 Minutes)",
	}, "alice")
	require.Equal(t, models.OutcomeSuccess, out.Status)

	rejected := svc.UpdateBooking(ctx, out.CreationID, service.BookingPatch{Price: &price}, "bob")
	assert.Equal(t, models.OutcomeRejected, rejected.Status)

	class := "PREMIUM (30 Minutes)"
	updated := svc.UpdateBooking(ctx, out.CreationID, service.BookingPatch{BookingClass: &class}, "alice")
	assert.Equal(t, models.OutcomeSuccess, updated.Status)

	list, err := svc.ListActiveBookings(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, class, list[0].BookingClass)
	assert.True(t, price.Equal(list[0].Price))
	assert.NotNil(t, list[0].ModifiedOn)

	assert.Equal(t, models.OutcomeSuccess, svc.CancelBooking(ctx, out.CreationID, "alice").Status)
	list, err = svc.ListActiveBookings(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	// A malformed doctor id still leaves the row behind.
	failed := svc.CreateBooking(ctx, service.CreateBookingInput{DoctorID: "not-a-uuid"}, "alice")
	assert.Equal(t, models.OutcomeFailed, failed.Status)
	list, err = svc.ListActiveBookings(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "not-a-uuid", list[0].DoctorID)
}

func TestBookingLedger_ConcurrentCreates(t *testing.T) {
	cleanTables()
	ctx := context.Background()
	svc := service.NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewDoctorRepository(testDB),
		repository.NewUserRepository(testDB),
		nil, nil, zap.NewNop(),
	)

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan string, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			out := svc.CreateBooking(ctx, service.CreateBookingInput{DoctorID: uuid.NewString()}, "alice")
			if out.OK() {
				ids <- out.CreationID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, n)

	list, err := svc.ListActiveBookings(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, n)
}
