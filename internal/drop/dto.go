package drop

// CreateDropRequest represents the request to record a drop against a run
type CreateDropRequest struct {
	OwnerPlayerID int64   `json:"owner_player_id" validate:"required"`
	ItemType      string  `json:"item_type" validate:"required"`
	MainRoll      int     `json:"main_roll" validate:"gte=-5,lte=5"`
	SecondaryRoll int     `json:"secondary_roll" validate:"gte=-1,lte=1"`
	Notes         *string `json:"notes,omitempty"`
}

// UpdateDropRequest represents a correction to an existing drop
type UpdateDropRequest struct {
	OwnerPlayerID *int64  `json:"owner_player_id,omitempty"`
	ItemType      *string `json:"item_type,omitempty"`
	MainRoll      *int    `json:"main_roll,omitempty" validate:"omitempty,gte=-5,lte=5"`
	SecondaryRoll *int    `json:"secondary_roll,omitempty" validate:"omitempty,gte=-1,lte=1"`
	Notes         *string `json:"notes,omitempty"`
	Status        *Status `json:"status,omitempty" validate:"omitempty,oneof=unsold listed"`
}

// DisenchantRequest represents the request to disenchant a drop
type DisenchantRequest struct {
	DisenchantInto DisenchantTarget `json:"disenchant_into" validate:"required,oneof=essence stone"`
}
