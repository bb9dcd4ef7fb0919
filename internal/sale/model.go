package sale

import "time"

// SplitDetail is one participant's share of a sale's net proceeds. The
// amount is signed: negative when the run's entry fee exceeded the sale
// price. Split entries are owned by the sale and fully replaced, never
// patched, on every recalculation.
type SplitDetail struct {
	PlayerID int64   `json:"player_id"`
	AmountWS float64 `json:"amount_ws"`
	IsPaid   bool    `json:"is_paid"`

	// Populated via JOIN
	PlayerName string `json:"player_name,omitempty"`
}

// Sale represents a transaction converting one or more drops into currency.
type Sale struct {
	ID             int64         `json:"id"`
	RunID          int64         `json:"run_id"`
	DropIDs        []int64       `json:"drop_ids"`
	TotalPriceWS   float64       `json:"total_price_ws"`
	Buyer          string        `json:"buyer"`
	Date           time.Time     `json:"date"`
	NetAfterFeesWS float64       `json:"net_after_fees_ws"`
	SplitDetails   []SplitDetail `json:"split_details"`
	IsSettled      bool          `json:"is_settled"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
