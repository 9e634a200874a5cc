package dto

import "github.com/shopspring/decimal"

// CreateBookingRequest is the body of POST /api/v1/booking. A bookedBy field
// sent by the client is accepted for compatibility and ignored. A missing or
// malformed doctorId is reported in the outcome, not as a 400.
type CreateBookingRequest struct {
	DoctorID        string           `json:"doctorId" validate:"max=64"`
	Price           *decimal.Decimal `json:"price"`
	BookingClass    string           `json:"bookingClass" validate:"max=64"`
	AppointmentDate string           `json:"appointmentDate" validate:"max=32"`
	AppointmentTime string           `json:"appointmentTime" validate:"max=32"`
	BookedBy        string           `json:"bookedBy"`
}

// UpdateBookingRequest is a partial patch; nil fields are left unchanged.
type UpdateBookingRequest struct {
	Price        *decimal.Decimal `json:"price"`
	BookingClass *string          `json:"bookingClass" validate:"omitempty,max=64"`
}
