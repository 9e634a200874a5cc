package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusActive   BookingStatus = "ACTIVE"
	StatusInactive BookingStatus = "INACTIVE"
)

// Booking is an appointment with a doctor. BookedBy is the ownership key and
// is only ever set from the authenticated caller.
type Booking struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID        string          `json:"doctorId"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	BookingClass    string          `json:"bookingClass"`
	AppointmentDate string          `json:"appointmentDate"`
	AppointmentTime string          `json:"appointmentTime"`
	Status          BookingStatus   `gorm:"type:varchar(20);not null;index:idx_appointments_owner_status,priority:2" json:"status"`
	BookedBy        string          `gorm:"not null;index:idx_appointments_owner_status,priority:1" json:"bookedBy"`
	BookedOn        time.Time       `json:"bookedOn"`
	ModifiedOn      *time.Time      `json:"modifiedOn"`
}

func (Booking) TableName() string {
	return "appointments"
}

func (b *Booking) IsOwnedBy(caller string) bool {
	return b.BookedBy == caller
}
