package player

import "time"

// Player represents a roster member who can host or join runs. A player may
// optionally be linked to a login account.
type Player struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	UserID            *int64    `json:"user_id,omitempty"`
	DefaultCutPercent *float64  `json:"default_cut_percent,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// OwedWS is the sum of this player's unpaid split amounts across all
	// sales. Computed on read, never stored.
	OwedWS float64 `json:"owed_ws"`
}
