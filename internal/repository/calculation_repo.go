package repository

import (
	"calcapi/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CalculationRepository struct {
	db *sql.DB
}

func NewCalculationRepository(db *sql.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

var _ Calculations = (*CalculationRepository)(nil)

const (
	insertCalculationSQL = `INSERT INTO calculations (id, user_id, operation, operand_a, operand_b, result, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectCalculationColumns = `id, user_id, operation, operand_a, operand_b, result, created_at, updated_at`

	selectCalculationSQL = `SELECT ` + selectCalculationColumns + ` FROM calculations WHERE user_id = ? AND id = ?`

	// Stable page order: creation time ascending, id as tiebreaker.
	listCalculationsSQL = `SELECT ` + selectCalculationColumns + ` FROM calculations
		WHERE user_id = ? ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`

	updateCalculationSQL = `UPDATE calculations SET operation = ?, operand_a = ?, operand_b = ?, result = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	deleteCalculationSQL = `DELETE FROM calculations WHERE user_id = ? AND id = ?`

	statsCalculationsSQL = `SELECT operation, COUNT(*) FROM calculations WHERE user_id = ? GROUP BY operation`
)

// Create inserts a new calculation. If ID or CreatedAt are empty, they're set.
func (r *CalculationRepository) Create(ctx context.Context, c models.Calculation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	} else {
		c.CreatedAt = c.CreatedAt.UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	} else {
		c.UpdatedAt = c.UpdatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertCalculationSQL,
		c.ID,
		c.UserID,
		c.Operation,
		c.OperandA,
		c.OperandB,
		c.Result,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert calculation %q: %w", c.ID, err)
	}
	return nil
}

// GetByID fetches one calculation scoped to its owner. A row owned by a
// different user is reported the same as a missing row: (nil, nil).
func (r *CalculationRepository) GetByID(ctx context.Context, ownerID int, id string) (*models.Calculation, error) {
	row := r.db.QueryRowContext(ctx, selectCalculationSQL, ownerID, id)

	var c models.Calculation
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Operation,
		&c.OperandA,
		&c.OperandB,
		&c.Result,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select calculation %q: %w", id, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

// List returns one page of the owner's calculations, creation order ascending.
func (r *CalculationRepository) List(ctx context.Context, ownerID, offset, limit int) ([]models.Calculation, error) {
	rows, err := r.db.QueryContext(ctx, listCalculationsSQL, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list calculations for user id=%d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Calculation, 0, limit)
	for rows.Next() {
		var c models.Calculation
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Operation,
			&c.OperandA,
			&c.OperandB,
			&c.Result,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan calculation row: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculation rows: %w", err)
	}
	return out, nil
}

// Update rewrites spec fields and result atomically by (user_id, id).
// Returns false when no row matched, i.e. missing or foreign-owned.
func (r *CalculationRepository) Update(ctx context.Context, c models.Calculation) (bool, error) {
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, updateCalculationSQL,
		c.Operation,
		c.OperandA,
		c.OperandB,
		c.Result,
		updatedAt.UTC(),
		c.UserID,
		c.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update calculation %q: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for calculation %q: %w", c.ID, err)
	}
	return n > 0, nil
}

// Delete removes the row by (user_id, id). Returns false when nothing matched.
func (r *CalculationRepository) Delete(ctx context.Context, ownerID int, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteCalculationSQL, ownerID, id)
	if err != nil {
		return false, fmt.Errorf("delete calculation %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for calculation %q: %w", id, err)
	}
	return n > 0, nil
}

// Stats aggregates the owner's calculations per operation.
func (r *CalculationRepository) Stats(ctx context.Context, ownerID int) (models.CalculationStats, error) {
	stats := models.CalculationStats{ByOperation: map[string]int{}}

	rows, err := r.db.QueryContext(ctx, statsCalculationsSQL, ownerID)
	if err != nil {
		return models.CalculationStats{}, fmt.Errorf("stats for user id=%d: %w", ownerID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			op    string
			count int
		)
		if err := rows.Scan(&op, &count); err != nil {
			return models.CalculationStats{}, fmt.Errorf("scan stats row: %w", err)
		}
		stats.ByOperation[op] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return models.CalculationStats{}, fmt.Errorf("iterate stats rows: %w", err)
	}
	return stats, nil
}
