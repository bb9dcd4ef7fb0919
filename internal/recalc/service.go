package recalc

import (
	"context"
	"log/slog"
	"math"

	"github.com/azmy/lootledger/internal/calc"
	"github.com/azmy/lootledger/internal/run"
	"github.com/azmy/lootledger/internal/sale"
)

// RunStore provides the run facts a replay needs.
type RunStore interface {
	GetByID(ctx context.Context, id int64) (*run.Run, error)
}

// SaleStore provides chronological sale access and split persistence.
type SaleStore interface {
	ListByRun(ctx context.Context, runID int64) ([]*sale.Sale, error)
	SalesForDrop(ctx context.Context, dropID int64) ([]*sale.Sale, error)
	ReplaceSplit(ctx context.Context, saleID int64, netAfterFeesWS float64, splits []sale.SplitDetail) error
}

// Service rebuilds sale splits whenever the facts they depend on change.
// It never patches a single sale in place: fee recovery is sequential and
// order-sensitive, so the whole run is replayed from scratch every time.
// The replay is a pure fold over the sorted sale list, which makes it
// idempotent: running it twice in a row yields identical results.
type Service struct {
	runs   RunStore
	sales  SaleStore
	logger *slog.Logger
}

// NewService creates a new recalculation service
func NewService(runs RunStore, sales SaleStore, logger *slog.Logger) *Service {
	return &Service{
		runs:   runs,
		sales:  sales,
		logger: logger,
	}
}

// RecalculateRun replays all of a run's sales in chronological order.
// Early sales absorb the entry fee first; each sale recovers at most its
// own gross price, so the fee is recovered exactly once across the run and
// later sales are untouched once it is fully covered. Every replayed sale
// gets a fresh split with all paid flags reset.
//
// A missing run is logged and skipped rather than failed: the sales
// pointing at it are a data-integrity anomaly, not a reason to abort the
// caller's operation.
func (s *Service) RecalculateRun(ctx context.Context, runID int64) error {
	r, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return err
	}
	if r == nil {
		s.logger.Warn("skipping recalculation for missing run", "run_id", runID)
		return nil
	}

	sales, err := s.sales.ListByRun(ctx, runID)
	if err != nil {
		return err
	}

	shares := r.ParticipantShares()
	var cumulative float64
	for _, sl := range sales {
		remaining := math.Max(0, calc.Round2(r.TotalEntryFeeWS-cumulative))
		result := calc.SaleSplitFor(sl.TotalPriceWS, math.Min(sl.TotalPriceWS, remaining), shares)

		splits := make([]sale.SplitDetail, len(result.Split.PerParticipant))
		for i, p := range result.Split.PerParticipant {
			splits[i] = sale.SplitDetail{PlayerID: p.PlayerID, AmountWS: p.AmountWS}
		}

		if err := s.sales.ReplaceSplit(ctx, sl.ID, result.NetAfterFeesWS, splits); err != nil {
			return err
		}

		// Gross, not net: fee recovery is measured against proceeds consumed.
		cumulative = calc.Round2(cumulative + sl.TotalPriceWS)
	}

	return nil
}

// RecalculateForDrop replays every run that has a sale referencing the
// drop. A drop only ever sells within its own run, but the grouping stays
// defensive in case the link data has drifted.
func (s *Service) RecalculateForDrop(ctx context.Context, dropID int64) error {
	sales, err := s.sales.SalesForDrop(ctx, dropID)
	if err != nil {
		return err
	}

	seen := make(map[int64]bool)
	for _, sl := range sales {
		if seen[sl.RunID] {
			continue
		}
		seen[sl.RunID] = true

		if err := s.RecalculateRun(ctx, sl.RunID); err != nil {
			return err
		}
	}

	return nil
}
