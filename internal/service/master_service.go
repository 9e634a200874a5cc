package service

import "github.com/Eursukkul/doctor-booking/internal/models"

var (
	specialities = []string{
		"Ophthalmologist", "Pediatrician", "Neurologist", "psychiatrist",
		"Dermatologist", "Oncologist", "Cardiologist", "Immunologist",
		"General Practitioner", "Urologist", "Orthopedist", "Rheumatologist",
		"Hematologist", "Nephrologist", "Orthodontist",
	}
	bookingClasses = []string{"GENERAL (15 Minutes)", "PREMIUM (30 Minutes)", "EMERGENCY"}
)

// NewMasterData builds the reference lists. Call it once at startup and share
// the result; the slices are copies owned by the returned value.
func NewMasterData() *models.MasterData {
	return &models.MasterData{
		Speciality:   append([]string(nil), specialities...),
		BookingClass: append([]string(nil), bookingClasses...),
	}
}

type MasterService interface {
	FetchMasterData() *models.MasterData
}

type masterService struct {
	data *models.MasterData
}

func NewMasterService(data *models.MasterData) MasterService {
	return &masterService{data: data}
}

// FetchMasterData returns the same instance on every call.
func (s *masterService) FetchMasterData() *models.MasterData {
	return s.data
}
