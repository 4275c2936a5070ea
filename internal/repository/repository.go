package repository

import (
	"calcapi/internal/models"
	"context"
	"database/sql"
	"time"
)

// Users persists accounts. Lookup methods return (nil, nil) when no row
// matches; identifiers are expected lowercased by the caller.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int, when time.Time) error
}

// Calculations persists owned calculations. Every method is filtered by
// ownerID; a row under a different owner behaves exactly like a missing row.
type Calculations interface {
	Create(ctx context.Context, c models.Calculation) error
	GetByID(ctx context.Context, ownerID int, id string) (*models.Calculation, error)
	List(ctx context.Context, ownerID, offset, limit int) ([]models.Calculation, error)
	Update(ctx context.Context, c models.Calculation) (bool, error)
	Delete(ctx context.Context, ownerID int, id string) (bool, error)
	Stats(ctx context.Context, ownerID int) (models.CalculationStats, error)
}

type Repository struct {
	Users        Users
	Calculations Calculations
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:        NewUserRepository(db),
		Calculations: NewCalculationRepository(db),
	}
}
