package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/Eursukkul/doctor-booking/internal/repository"
	"github.com/google/uuid"
)

// --- In-memory BookingRepository ---

type memBookingRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]models.Booking
	saveErr  error
	findErr  error
	saveCall int
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{rows: map[uuid.UUID]models.Booking{}}
}

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	b, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *memBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCall++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.rows[booking.ID] = *booking
	return nil
}

func (r *memBookingRepo) FindByStatusAndBookedBy(ctx context.Context, status models.BookingStatus, bookedBy string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.rows {
		if b.Status == status && b.BookedBy == bookedBy {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookedOn.Before(out[j].BookedOn) })
	return out, nil
}

func (r *memBookingRepo) get(id uuid.UUID) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

// --- Mock DoctorRepository ---

type mockDoctorRepo struct {
	findAllFn  func(ctx context.Context) ([]models.Doctor, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	saveAllFn  func(ctx context.Context, doctors []models.Doctor) error
	countFn    func(ctx context.Context) (int64, error)
}

func (m *mockDoctorRepo) FindAll(ctx context.Context) ([]models.Doctor, error) {
	return m.findAllFn(ctx)
}
func (m *mockDoctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	if m.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByIDFn(ctx, id)
}
func (m *mockDoctorRepo) SaveAll(ctx context.Context, doctors []models.Doctor) error {
	return m.saveAllFn(ctx, doctors)
}
func (m *mockDoctorRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	findFn func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findFn(ctx, username)
}

// --- Mock Dispatcher ---

type notifyCall struct {
	user    models.User
	booking models.Booking
	doctor  models.Doctor
}

type mockDispatcher struct {
	calls []notifyCall
	err   error
}

func (m *mockDispatcher) NotifyBookingConfirmed(ctx context.Context, user models.User, booking models.Booking, doctor models.Doctor) error {
	m.calls = append(m.calls, notifyCall{user: user, booking: booking, doctor: doctor})
	return m.err
}
