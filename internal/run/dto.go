package run

import "time"

// ParticipantInput is one participant entry in a create/update request.
// ShareModifier defaults to 1 when omitted.
type ParticipantInput struct {
	PlayerID      int64    `json:"player_id" validate:"required"`
	ShareModifier *float64 `json:"share_modifier,omitempty" validate:"omitempty,gte=0"`
}

// CreateRunRequest represents the request to create a run
type CreateRunRequest struct {
	Date            *time.Time         `json:"date,omitempty"`
	HostID          int64              `json:"host_id" validate:"required"`
	Participants    []ParticipantInput `json:"participants"`
	EssenceRequired *int               `json:"essence_required,omitempty" validate:"omitempty,gte=0"`
	StoneRequired   *int               `json:"stone_required,omitempty" validate:"omitempty,gte=0"`
	EssencePriceWS  float64            `json:"essence_price_ws" validate:"gte=0"`
	StonePriceWS    float64            `json:"stone_price_ws" validate:"gte=0"`
}

// UpdateRunRequest represents a partial update to a run
type UpdateRunRequest struct {
	Date            *time.Time          `json:"date,omitempty"`
	HostID          *int64              `json:"host_id,omitempty"`
	Participants    *[]ParticipantInput `json:"participants,omitempty"`
	EssenceRequired *int                `json:"essence_required,omitempty" validate:"omitempty,gte=0"`
	StoneRequired   *int                `json:"stone_required,omitempty" validate:"omitempty,gte=0"`
	EssencePriceWS  *float64            `json:"essence_price_ws,omitempty" validate:"omitempty,gte=0"`
	StonePriceWS    *float64            `json:"stone_price_ws,omitempty" validate:"omitempty,gte=0"`
	Status          *Status             `json:"status,omitempty" validate:"omitempty,oneof=open settled"`
}

// MarkSplitsPaidRequest represents the request to bulk-set paid flags on a
// run's sales
type MarkSplitsPaidRequest struct {
	Paid *bool `json:"paid,omitempty"` // defaults to true
}
