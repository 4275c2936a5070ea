package service

import (
	"context"

	"calcapi/internal/models"
	"calcapi/internal/repository"
)

// StatsService is the read-only aggregate over an owner's calculations,
// backing the stats endpoint and the websocket feed.
type StatsService struct {
	repo repository.Calculations
}

func NewStatsService(repo repository.Calculations) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Stats(ctx context.Context, ownerID int) (models.CalculationStats, error) {
	st, err := s.repo.Stats(ctx, ownerID)
	if err != nil {
		return models.CalculationStats{}, storageFailed(err)
	}
	return st, nil
}
