package service

import (
	"context"
	"fmt"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/Eursukkul/doctor-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DoctorSeeder struct {
	repo repository.DoctorRepository
	log  *zap.Logger
}

func NewDoctorSeeder(repo repository.DoctorRepository, log *zap.Logger) *DoctorSeeder {
	return &DoctorSeeder{repo: repo, log: log.With(zap.String("component", "seeder"))}
}

// Run inserts the sample doctors when the directory is empty and does
// nothing otherwise. It reports whether rows were inserted.
func (s *DoctorSeeder) Run(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count doctors: %w", err)
	}
	if count > 0 {
		s.log.Info("doctor directory already initialized, skipping seed", zap.Int64("count", count))
		return false, nil
	}

	doctors := SeedDoctors()
	if err := s.repo.SaveAll(ctx, doctors); err != nil {
		return false, fmt.Errorf("save seed doctors: %w", err)
	}
	s.log.Info("sample doctors inserted", zap.Int("count", len(doctors)))
	return true, nil
}

// SeedDoctors returns the sample directory with fresh ids.
func SeedDoctors() []models.Doctor {
	return []models.Doctor{
		{
			ID:            uuid.New(),
			Name:          "Dr. Ayesha Khan",
			Qualification: "MBBS, MD (Cardiology)",
			Experience:    "12 years",
			Description:   "Experienced in treating cardiovascular diseases, echocardiography, and interventional cardiology.",
			Price:         decimal.RequireFromString("1500.00"),
			Speciality:    "Cardiologist",
			Address:       "Apollo Hospital, New Delhi",
			Image:         "https://www.yourfreecareertest.com/wp-content/uploads/2018/01/how_to_become_a_doctor.jpg",
		},
		{
			ID:            uuid.New(),
			Name:          "Dr. Rajeev Mehta",
			Qualification: "MBBS, MS (Orthopedics)",
			Experience:    "10 years",
			Description:   "Specialist in sports injuries, joint replacements, and arthroscopy with numerous successful surgeries.",
			Price:         decimal.RequireFromString("1200.00"),
			Speciality:    "Orthopedic Surgeon",
			Address:       "Fortis Hospital, Mumbai",
			Image:         "https://thumbs.dreamstime.com/b/indian-doctor-mature-male-medical-standing-inside-hospital-handsome-model-portrait-46325210.jpg",
		},
		{
			ID:            uuid.New(),
			Name:          "Dr. Sneha Reddy",
			Qualification: "MBBS, DGO",
			Experience:    "8 years",
			Description:   "Dedicated to women’s health, experienced in prenatal care, fertility treatments, and gynecological surgeries.",
			Price:         decimal.RequireFromString("1000.00"),
			Speciality:    "Gynecologist",
			Address:       "Cloudnine Hospital, Bangalore",
			Image:         "https://t4.ftcdn.net/jpg/06/47/16/29/360_F_647162966_SFu8GP6awkeW0OnFnAxPjiGXSoeme4ht.jpg",
		},
		{
			ID:            uuid.New(),
			Name:          "Dr. Arvind Patel",
			Qualification: "MBBS, MD (Dermatology)",
			Experience:    "6 years",
			Description:   "Treats skin allergies, acne, hair loss, and cosmetic dermatology with modern techniques.",
			Price:         decimal.RequireFromString("800.00"),
			Speciality:    "Dermatologist",
			Address:       "SKIN Clinic, Ahmedabad",
			Image:         "https://media.istockphoto.com/id/1124684854/photo/portrait-of-indian-doctor.jpg?s=612x612&w=0&k=20&c=z07-F84erAbm8Z_sVJhLXdaJBfMFSiJjf_uaHg7Z3sY=",
		},
	}
}
