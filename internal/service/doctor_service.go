package service

import (
	"context"
	"errors"
	"time"

	"github.com/Eursukkul/doctor-booking/internal/models"
	"github.com/Eursukkul/doctor-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type DoctorService interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id string) (models.Doctor, error)
}

type doctorService struct {
	repo  repository.DoctorRepository
	cache *cache.Cache
}

// NewDoctorService caches successful GetDoctor lookups for ttl. Doctors are
// never updated once seeded, so entries cannot go stale. A ttl of zero
// disables the cache.
func NewDoctorService(repo repository.DoctorRepository, ttl time.Duration) DoctorService {
	s := &doctorService{repo: repo}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *doctorService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.repo.FindAll(ctx)
}

// GetDoctor never reports a missing doctor as an error: unknown or malformed
// ids yield a Doctor whose ID is unset. Only store failures are returned.
func (s *doctorService) GetDoctor(ctx context.Context, id string) (models.Doctor, error) {
	doctorID, err := uuid.Parse(id)
	if err != nil {
		return models.Doctor{}, nil
	}

	if s.cache != nil {
		if hit, ok := s.cache.Get(doctorID.String()); ok {
			return hit.(models.Doctor), nil
		}
	}

	doctor, err := s.repo.FindByID(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Doctor{}, nil
	}
	if err != nil {
		return models.Doctor{}, err
	}

	if s.cache != nil {
		s.cache.SetDefault(doctorID.String(), *doctor)
	}
	return *doctor, nil
}
