package models

import "time"

// Calculation is a stored arithmetic operation owned by exactly one user.
// Result is always derived from Operation + operands at write time and
// UserID never changes after creation.
type Calculation struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Operation string    `json:"operation"` // add | subtract | multiply | divide
	OperandA  float64   `json:"operand_a"`
	OperandB  float64   `json:"operand_b"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalculationStats is the per-owner aggregate used by the stats endpoint
// and the live feed.
type CalculationStats struct {
	Total       int            `json:"total"`
	ByOperation map[string]int `json:"by_operation"`
}
