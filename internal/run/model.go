package run

import (
	"time"

	"github.com/azmy/lootledger/internal/calc"
)

// Status represents the lifecycle state of a run
type Status string

const (
	StatusOpen    Status = "open"
	StatusSettled Status = "settled"
)

// Participant is one entry in a run's ordered participant list. The order
// matters: remainder cents from split rounding go to the first-listed
// participants.
type Participant struct {
	PlayerID      int64   `json:"player_id"`
	ShareModifier float64 `json:"share_modifier"`

	// Populated via JOIN
	PlayerName string `json:"player_name,omitempty"`
}

// Run represents a single organized loot run
type Run struct {
	ID              int64         `json:"id"`
	RunNumber       int64         `json:"run_number"`
	Date            time.Time     `json:"date"`
	HostID          int64         `json:"host_id"`
	Participants    []Participant `json:"participants"`
	EssenceRequired int           `json:"essence_required"`
	StoneRequired   int           `json:"stone_required"`
	EssencePriceWS  float64       `json:"essence_price_ws"`
	StonePriceWS    float64       `json:"stone_price_ws"`
	TotalEntryFeeWS float64       `json:"total_entry_fee_ws"`
	Status          Status        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Populated via JOIN
	HostName string `json:"host_name,omitempty"`
}

// EntryFeeConfig returns the run's fee inputs in calculator form.
func (r *Run) EntryFeeConfig() calc.EntryFeeConfig {
	return calc.EntryFeeConfig{
		EssenceRequired: float64(r.EssenceRequired),
		StoneRequired:   float64(r.StoneRequired),
		EssencePriceWS:  r.EssencePriceWS,
		StonePriceWS:    r.StonePriceWS,
	}
}

// ParticipantShares returns the run's participants in calculator form,
// preserving list order.
func (r *Run) ParticipantShares() []calc.ParticipantShare {
	shares := make([]calc.ParticipantShare, len(r.Participants))
	for i, p := range r.Participants {
		shares[i] = calc.ParticipantShare{
			PlayerID:      p.PlayerID,
			ShareModifier: p.ShareModifier,
		}
	}
	return shares
}

// HasParticipant reports whether the player is part of this run.
func (r *Run) HasParticipant(playerID int64) bool {
	for _, p := range r.Participants {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}
