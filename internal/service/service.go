package service

import (
	"calcapi/internal/models"
	"context"

	"calcapi/internal/repository"
)

// Authorization covers registration, login and token resolution.
type Authorization interface {
	SignUp(ctx context.Context, input RegisterInput) (*models.User, error)
	GenerateToken(ctx context.Context, identifier, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	CurrentUser(ctx context.Context, userID int) (*models.User, error)
}

// Calculations exposes the owner-scoped BREAD operations.
type Calculations interface {
	Create(ctx context.Context, ownerID int, spec CalculationSpec) (*models.Calculation, error)
	Get(ctx context.Context, ownerID int, id string) (*models.Calculation, error)
	List(ctx context.Context, ownerID, offset, limit int) ([]models.Calculation, error)
	Update(ctx context.Context, ownerID int, id string, spec CalculationSpec) (*models.Calculation, error)
	Delete(ctx context.Context, ownerID int, id string) error
}

// Stats exposes the read-only per-owner aggregate.
type Stats interface {
	Stats(ctx context.Context, ownerID int) (models.CalculationStats, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Calculations
	Stats
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, tokens TokenConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Calculations:  NewCalculationService(repos.Calculations),
		Stats:         NewStatsService(repos.Calculations),
	}
}
