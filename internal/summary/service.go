package summary

import (
	"context"
	"errors"

	"github.com/azmy/lootledger/internal/calc"
	"github.com/azmy/lootledger/internal/drop"
	"github.com/azmy/lootledger/internal/run"
	"github.com/azmy/lootledger/internal/sale"
)

// ErrRunNotFound is returned when the summarized run does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunStore provides the run being summarized.
type RunStore interface {
	GetByID(ctx context.Context, id int64) (*run.Run, error)
}

// DropStore provides a run's drops.
type DropStore interface {
	ListByRun(ctx context.Context, runID int64) ([]*drop.Drop, error)
}

// SaleStore provides a run's sales with their split details.
type SaleStore interface {
	ListByRun(ctx context.Context, runID int64) ([]*sale.Sale, error)
}

// Totals aggregates a run's money flows.
type Totals struct {
	TotalEntryFeeWS     float64 `json:"total_entry_fee_ws"`
	TotalSalesWS        float64 `json:"total_sales_ws"`
	TotalNetAfterFeesWS float64 `json:"total_net_after_fees_ws"`
	TotalDisenchantedWS float64 `json:"total_disenchanted_ws"`
	UnpaidEntryFeeWS    float64 `json:"unpaid_entry_fee_ws"`
}

// ParticipantShare is one participant's line in the run summary: an
// informational re-split of the run's total net, plus what the run's
// sales still owe them. The authoritative amounts live on the individual
// sales; this aggregate is display-only.
type ParticipantShare struct {
	PlayerID   int64   `json:"player_id"`
	PlayerName string  `json:"player_name,omitempty"`
	AmountWS   float64 `json:"amount_ws"`
	OwedWS     float64 `json:"owed_ws"`
}

// PaymentStatus summarizes how much of the run's splits remain unpaid.
type PaymentStatus struct {
	TotalOwedWS     float64 `json:"total_owed_ws"`
	SplitsFullyPaid bool    `json:"splits_fully_paid"`
}

// RunSummary answers "what does this run currently owe, and to whom".
type RunSummary struct {
	Run            *run.Run           `json:"run"`
	Drops          []*drop.Drop       `json:"drops"`
	Sales          []*sale.Sale       `json:"sales"`
	Totals         Totals             `json:"totals"`
	PerParticipant []ParticipantShare `json:"per_participant"`
	PaymentStatus  PaymentStatus      `json:"payment_status"`
}

// Service composes run, drop and sale facts into read-only summaries.
type Service struct {
	runs  RunStore
	drops DropStore
	sales SaleStore
}

// NewService creates a new summary service
func NewService(runs RunStore, drops DropStore, sales SaleStore) *Service {
	return &Service{
		runs:  runs,
		drops: drops,
		sales: sales,
	}
}

// RunSummary aggregates a run's current financial state.
func (s *Service) RunSummary(ctx context.Context, runID int64) (*RunSummary, error) {
	r, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRunNotFound
	}

	drops, err := s.drops.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	sales, err := s.sales.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	var totalSalesWS, totalNetWS, totalOwedWS float64
	owedByPlayer := make(map[int64]float64)
	for _, sl := range sales {
		totalSalesWS += sl.TotalPriceWS
		totalNetWS += sl.NetAfterFeesWS
		for _, detail := range sl.SplitDetails {
			if !detail.IsPaid {
				owedByPlayer[detail.PlayerID] += detail.AmountWS
				totalOwedWS += detail.AmountWS
			}
		}
	}

	var totalDisenchantedWS float64
	for _, d := range drops {
		if d.Status != drop.StatusDisenchanted || d.DisenchantedInto == nil {
			continue
		}
		switch *d.DisenchantedInto {
		case drop.DisenchantEssence:
			totalDisenchantedWS += r.EssencePriceWS
		case drop.DisenchantStone:
			totalDisenchantedWS += r.StonePriceWS
		}
	}

	totalSalesWS = calc.Round2(totalSalesWS)
	totalNetWS = calc.Round2(totalNetWS)
	totalDisenchantedWS = calc.Round2(totalDisenchantedWS)
	totalOwedWS = calc.Round2(totalOwedWS)

	// Disenchanted value counts toward fee recovery alongside sale proceeds.
	feesCoveredBySales := calc.Round2(totalSalesWS - totalNetWS)
	unpaidEntryFeeWS := calc.Round2(r.TotalEntryFeeWS - feesCoveredBySales - totalDisenchantedWS)
	if unpaidEntryFeeWS < 0 {
		unpaidEntryFeeWS = 0
	}

	split := calc.SplitByShares(totalNetWS, r.ParticipantShares())

	nameByPlayer := make(map[int64]string, len(r.Participants))
	for _, p := range r.Participants {
		nameByPlayer[p.PlayerID] = p.PlayerName
	}

	perParticipant := make([]ParticipantShare, len(split.PerParticipant))
	for i, p := range split.PerParticipant {
		perParticipant[i] = ParticipantShare{
			PlayerID:   p.PlayerID,
			PlayerName: nameByPlayer[p.PlayerID],
			AmountWS:   p.AmountWS,
			OwedWS:     calc.Round2(owedByPlayer[p.PlayerID]),
		}
	}

	return &RunSummary{
		Run:   r,
		Drops: drops,
		Sales: sales,
		Totals: Totals{
			TotalEntryFeeWS:     r.TotalEntryFeeWS,
			TotalSalesWS:        totalSalesWS,
			TotalNetAfterFeesWS: totalNetWS,
			TotalDisenchantedWS: totalDisenchantedWS,
			UnpaidEntryFeeWS:    unpaidEntryFeeWS,
		},
		PerParticipant: perParticipant,
		PaymentStatus: PaymentStatus{
			TotalOwedWS:     totalOwedWS,
			SplitsFullyPaid: totalOwedWS == 0 && len(perParticipant) > 0,
		},
	}, nil
}
