package dto

import (
	"time"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID              uuid.UUID            `json:"id"`
	DoctorID        string               `json:"doctorId"`
	Price           decimal.Decimal      `json:"price"`
	BookingClass    string               `json:"bookingClass"`
	AppointmentDate string               `json:"appointmentDate"`
	AppointmentTime string               `json:"appointmentTime"`
	Status          models.BookingStatus `json:"status"`
	BookedBy        string               `json:"bookedBy"`
	BookedOn        time.Time            `json:"bookedOn"`
	ModifiedOn      *time.Time           `json:"modifiedOn"`
}

type DoctorResponse struct {
	ID            *uuid.UUID      `json:"id"`
	Name          string          `json:"name"`
	Qualification string          `json:"qualification"`
	Experience    string          `json:"experience"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Speciality    string          `json:"speciality"`
	Address       string          `json:"address"`
	Image         string          `json:"image"`
}

// OutcomeResponse is the body of every mutating booking call.
type OutcomeResponse struct {
	Status     models.OutcomeStatus `json:"status"`
	Message    string               `json:"message"`
	CreationID string               `json:"creationId,omitempty"`
	Exception  string               `json:"exception,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		DoctorID:        b.DoctorID,
		Price:           b.Price,
		BookingClass:    b.BookingClass,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Status:          b.Status,
		BookedBy:        b.BookedBy,
		BookedOn:        b.BookedOn,
		ModifiedOn:      b.ModifiedOn,
	}
}

// ToDoctorResponse renders a missing doctor with a null id, matching the
// empty record the directory returns for unknown ids.
func ToDoctorResponse(d *models.Doctor) DoctorResponse {
	resp := DoctorResponse{
		Name:          d.Name,
		Qualification: d.Qualification,
		Experience:    d.Experience,
		Description:   d.Description,
		Price:         d.Price,
		Speciality:    d.Speciality,
		Address:       d.Address,
		Image:         d.Image,
	}
	if d.Found() {
		id := d.ID
		resp.ID = &id
	}
	return resp
}

func ToOutcomeResponse(o models.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Status:     o.Status,
		Message:    o.Message,
		CreationID: o.CreationID,
		Exception:  o.Exception,
	}
}
