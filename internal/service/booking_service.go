package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/Eursukkul/doctor-booking/internal/notification"
	"github.com/Eursukkul/doctor-booking/internal/repository"
	"github.com/Eursukkul/doctor-booking/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Failure stages reported in logs and metrics for FAILED outcomes.
const (
	stageLoad    = "load"
	stagePersist = "persist"
	stageLookup  = "lookup"
	stageNotify  = "notify"
)

// Placeholders substituted when a lookup made during booking creation misses.
var (
	unknownDoctor = models.Doctor{}
	unknownUser   = models.User{}
)

type CreateBookingInput struct {
	DoctorID        string
	Price           *decimal.Decimal
	BookingClass    string
	AppointmentDate string
	AppointmentTime string
}

// BookingPatch carries the fields an owner may change; nil means unchanged.
type BookingPatch struct {
	Price        *decimal.Decimal
	BookingClass *string
}

type BookingService interface {
	ListActiveBookings(ctx context.Context, owner string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, in CreateBookingInput, owner string) models.Outcome
	UpdateBooking(ctx context.Context, id string, patch BookingPatch, caller string) models.Outcome
	CancelBooking(ctx context.Context, id string, caller string) models.Outcome
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	doctorRepo  repository.DoctorRepository
	userRepo    repository.UserRepository
	notifier    notification.Dispatcher
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	notifier notification.Dispatcher,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		doctorRepo:  doctorRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		metrics:     m,
		log:         log.With(zap.String("component", "booking")),
		now:         time.Now,
	}
}

func (s *bookingService) ListActiveBookings(ctx context.Context, owner string) ([]models.Booking, error) {
	return s.bookingRepo.FindByStatusAndBookedBy(ctx, models.StatusActive, owner)
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput, owner string) models.Outcome {
	booking := models.Booking{
		ID:              uuid.New(),
		DoctorID:        in.DoctorID,
		BookingClass:    in.BookingClass,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Status:          models.StatusActive,
		BookedBy:        owner,
		BookedOn:        s.now(),
	}
	if in.Price != nil {
		booking.Price = *in.Price
	}

	if err := s.bookingRepo.Save(ctx, &booking); err != nil {
		return s.fail("create", stagePersist, booking.ID, err)
	}

	doctor, err := s.resolveDoctor(ctx, booking.DoctorID)
	if err != nil {
		return s.fail("create", stageLookup, booking.ID, err)
	}
	user, err := s.resolveUser(ctx, owner)
	if err != nil {
		return s.fail("create", stageLookup, booking.ID, err)
	}

	// The booking is already durable here; a publish failure is still
	// reported as a failed create.
	if s.notifier != nil {
		if err := s.notifier.NotifyBookingConfirmed(ctx, user, booking, doctor); err != nil {
			return s.fail("create", stageNotify, booking.ID, err)
		}
	}

	s.metrics.ObserveOutcome("create", string(models.OutcomeSuccess), "")
	s.log.Info("booking created", zap.String("booking_id", booking.ID.String()), zap.String("owner", owner))
	return models.Succeeded(booking.ID.String())
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, patch BookingPatch, caller string) models.Outcome {
	return s.mutateOwned(ctx, "update", id, caller, func(b *models.Booking) {
		if patch.BookingClass != nil {
			b.BookingClass = *patch.BookingClass
		}
		if patch.Price != nil {
			b.Price = *patch.Price
		}
		now := s.now()
		b.ModifiedOn = &now
	})
}

// CancelBooking flips the booking to INACTIVE. Cancelling an already
// inactive booking succeeds again without further change.
func (s *bookingService) CancelBooking(ctx context.Context, id string, caller string) models.Outcome {
	return s.mutateOwned(ctx, "cancel", id, caller, func(b *models.Booking) {
		b.Status = models.StatusInactive
	})
}

// mutateOwned loads the booking, re-checks ownership against the caller and
// persists the mutation only for the owner.
func (s *bookingService) mutateOwned(ctx context.Context, op, rawID, caller string, mutate func(*models.Booking)) models.Outcome {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return s.fail(op, stageLoad, uuid.Nil, fmt.Errorf("invalid booking id %q: %w", rawID, err))
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.metrics.ObserveOutcome(op, string(models.OutcomeNotFound), "")
		s.log.Debug("booking not found", zap.String("op", op), zap.String("booking_id", rawID))
		return models.NotFound()
	}
	if err != nil {
		return s.fail(op, stageLoad, id, err)
	}

	if !booking.IsOwnedBy(caller) {
		s.metrics.ObserveOutcome(op, string(models.OutcomeRejected), "")
		s.log.Warn("booking mutation rejected",
			zap.String("op", op),
			zap.String("booking_id", rawID),
			zap.String("caller", caller),
		)
		return models.Rejected()
	}

	mutate(booking)
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return s.fail(op, stagePersist, id, err)
	}

	s.metrics.ObserveOutcome(op, string(models.OutcomeSuccess), "")
	s.log.Info("booking mutation applied", zap.String("op", op), zap.String("booking_id", rawID), zap.String("owner", caller))
	return models.Succeeded("")
}

// resolveDoctor applies the unknown-doctor policy: a well-formed id with no
// matching doctor yields the placeholder. A malformed id is an error.
func (s *bookingService) resolveDoctor(ctx context.Context, rawID string) (models.Doctor, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return models.Doctor{}, fmt.Errorf("invalid doctor id %q: %w", rawID, err)
	}
	doctor, err := s.doctorRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return unknownDoctor, nil
	}
	if err != nil {
		return models.Doctor{}, fmt.Errorf("find doctor: %w", err)
	}
	return *doctor, nil
}

// resolveUser applies the placeholder-profile policy for unknown callers.
func (s *bookingService) resolveUser(ctx context.Context, username string) (models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return unknownUser, nil
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return *user, nil
}

func (s *bookingService) fail(op, stage string, id uuid.UUID, err error) models.Outcome {
	s.metrics.ObserveOutcome(op, string(models.OutcomeFailed), stage)

	fields := []zap.Field{zap.String("op", op), zap.String("stage", stage), zap.Error(err)}
	if id != uuid.Nil {
		fields = append(fields, zap.String("booking_id", id.String()))
	}
	if stage == stageNotify || (op == "create" && stage == stageLookup) {
		s.log.Error("booking persisted but confirmation not sent", fields...)
	} else {
		s.log.Error("booking operation failed", fields...)
	}
	return models.Failed(err)
}
