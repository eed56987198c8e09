package models

import "time"

// InternalUser represents a user account.
type InternalUser struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// HoldingRecord is a generic non-property holding (equity, mutual fund, gold,
// fixed income, cash, retirement) kept only at the granularity the net-worth
// aggregator needs: a labelled current value.
type HoldingRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	AssetClass string    `json:"asset_class"` // raw label, canonicalised by the aggregator
	Value      float64   `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
