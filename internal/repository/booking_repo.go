package repository

import (
	"context"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	FindByStatusAndBookedBy(ctx context.Context, status models.BookingStatus, bookedBy string) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// Save inserts a new booking or overwrites every column of an existing one.
func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) FindByStatusAndBookedBy(ctx context.Context, status models.BookingStatus, bookedBy string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := r.db.WithContext(ctx).
		Where("status = ? AND booked_by = ?", status, bookedBy).
		Order("booked_on ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
