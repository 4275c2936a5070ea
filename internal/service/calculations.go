package service

import (
	"context"
	"fmt"
	"time"

	"calcapi/internal/models"
	"calcapi/internal/repository"

	"github.com/google/uuid"
)

// Browse page bounds; offset/limit from the transport are clamped, never
// rejected.
const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// CalculationService implements the owner-scoped BREAD operations. The
// ownership filter lives in the repository queries; this layer validates
// specs and derives results before any mutation.
type CalculationService struct {
	repo repository.Calculations
	now  func() time.Time
}

func NewCalculationService(repo repository.Calculations) *CalculationService {
	return &CalculationService{repo: repo, now: time.Now}
}

// Create validates the spec, computes the result and persists a new
// calculation owned by ownerID.
func (s *CalculationService) Create(ctx context.Context, ownerID int, spec CalculationSpec) (*models.Calculation, error) {
	op, result, err := resolveSpec(spec)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := models.Calculation{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Operation: op,
		OperandA:  spec.OperandA,
		OperandB:  spec.OperandB,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storageFailed(err)
	}
	return &c, nil
}

// Get returns the owner's calculation or ErrNotFound. A record under a
// different owner is reported identically to a missing one.
func (s *CalculationService) Get(ctx context.Context, ownerID int, id string) (*models.Calculation, error) {
	c, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, storageFailed(err)
	}
	if c == nil {
		return nil, fmt.Errorf("calculation %w", ErrNotFound)
	}
	return c, nil
}

// List returns one page of the owner's calculations, creation order
// ascending.
func (s *CalculationService) List(ctx context.Context, ownerID, offset, limit int) ([]models.Calculation, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	out, err := s.repo.List(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, storageFailed(err)
	}
	return out, nil
}

// Update replaces the spec fields of the owner's calculation and
// recomputes the result. The write is atomic by (owner, id); no match
// means ErrNotFound.
func (s *CalculationService) Update(ctx context.Context, ownerID int, id string, spec CalculationSpec) (*models.Calculation, error) {
	op, result, err := resolveSpec(spec)
	if err != nil {
		return nil, err
	}

	matched, err := s.repo.Update(ctx, models.Calculation{
		ID:        id,
		UserID:    ownerID,
		Operation: op,
		OperandA:  spec.OperandA,
		OperandB:  spec.OperandB,
		Result:    result,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, storageFailed(err)
	}
	if !matched {
		return nil, fmt.Errorf("calculation %w", ErrNotFound)
	}

	// Re-read for the caller; the row carries the original created_at.
	return s.Get(ctx, ownerID, id)
}

// Delete removes the owner's calculation. A second delete of the same id
// reports ErrNotFound.
func (s *CalculationService) Delete(ctx context.Context, ownerID int, id string) error {
	matched, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return storageFailed(err)
	}
	if !matched {
		return fmt.Errorf("calculation %w", ErrNotFound)
	}
	return nil
}
