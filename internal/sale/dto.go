package sale

import "time"

// CreateSaleRequest represents the request to sell one or more drops
type CreateSaleRequest struct {
	RunID        int64      `json:"run_id" validate:"required"`
	DropIDs      []int64    `json:"drop_ids" validate:"required,min=1"`
	TotalPriceWS float64    `json:"total_price_ws" validate:"gte=0"`
	Buyer        string     `json:"buyer" validate:"required"`
	Date         *time.Time `json:"date,omitempty"`
}

// UpdateSaleRequest represents a partial update to a sale. Changing the
// price, date or drop set replays the run's sales.
type UpdateSaleRequest struct {
	TotalPriceWS *float64   `json:"total_price_ws,omitempty" validate:"omitempty,gte=0"`
	Buyer        *string    `json:"buyer,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	DropIDs      *[]int64   `json:"drop_ids,omitempty"`
}
