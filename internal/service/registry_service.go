package service

import (
	"context"
	"log/slog"
	"time"

	"lifeline/internal/domain"
)

const hospitalCacheTTL = 60 * time.Second

// registryService serves the read paths over the hospital roster, preferring
// the cached snapshot and falling through to the store.
type registryService struct {
	hospitals HospitalRepository
	cache     HospitalCache
	matcher   *Matcher
	logger    *slog.Logger
}

func NewRegistryService(hospitals HospitalRepository, cache HospitalCache, geo *Geo, logger *slog.Logger) RegistryService {
	if geo == nil {
		geo = NewGeo(DefaultSlackKm, DefaultAvgSpeedKmh)
	}
	return &registryService{
		hospitals: hospitals,
		cache:     cache,
		matcher:   NewMatcher(geo, NewScorer()),
		logger:    logger,
	}
}

func (s *registryService) ListHospitals(ctx context.Context) ([]*domain.Hospital, error) {
	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("hospital cache read failed", slog.Any("error", err))
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	hospitals, err := s.hospitals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetActive(ctx, hospitals, hospitalCacheTTL); err != nil {
			s.logger.Warn("hospital cache write failed", slog.Any("error", err))
		}
	}
	return hospitals, nil
}

func (s *registryService) RankHospitals(ctx context.Context, need domain.CasualtyNeed, from domain.Location) ([]domain.RankedHospital, error) {
	hospitals, err := s.ListHospitals(ctx)
	if err != nil {
		return nil, err
	}
	return s.matcher.Rank(hospitals, need, from, false)
}
