package player

// CreatePlayerRequest represents the request to create a player
type CreatePlayerRequest struct {
	Name              string   `json:"name" validate:"required,min=1,max=100"`
	UserID            *int64   `json:"user_id,omitempty"`
	DefaultCutPercent *float64 `json:"default_cut_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes             *string  `json:"notes,omitempty"`
}

// UpdatePlayerRequest represents the request to update a player
type UpdatePlayerRequest struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	UserID            *int64   `json:"user_id,omitempty"`
	DefaultCutPercent *float64 `json:"default_cut_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes             *string  `json:"notes,omitempty"`
}
