package sale

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/azmy/lootledger/internal/drop"
	"github.com/azmy/lootledger/internal/run"
)

// Common errors
var (
	ErrSaleNotFound    = errors.New("sale not found")
	ErrRunNotFound     = errors.New("run not found")
	ErrNoDrops         = errors.New("a sale needs at least one drop")
	ErrNegativePrice   = errors.New("sale price cannot be negative")
	ErrBuyerRequired   = errors.New("buyer is required")
	ErrDropNotFound    = errors.New("drop not found")
	ErrDropWrongRun    = errors.New("drop belongs to a different run")
	ErrDropNotSellable = errors.New("drop is already sold or disenchanted")
)

// Recalculator replays a run's sales after a financial change.
type Recalculator interface {
	RecalculateRun(ctx context.Context, runID int64) error
}

// Service handles sale business logic
type Service struct {
	repo   *Repository
	runs   *run.Repository
	drops  *drop.Repository
	recalc Recalculator
}

// NewService creates a new sale service with dependencies injected
func NewService(repo *Repository, runs *run.Repository, drops *drop.Repository, recalc Recalculator) *Service {
	return &Service{
		repo:   repo,
		runs:   runs,
		drops:  drops,
		recalc: recalc,
	}
}

// List returns all sales, newest first.
func (s *Service) List(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx)
}

// ListByRun returns a run's sales in chronological order.
func (s *Service) ListByRun(ctx context.Context, runID int64) ([]*Sale, error) {
	r, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRunNotFound
	}

	return s.repo.ListByRun(ctx, runID)
}

// Get returns a single sale by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	sl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, ErrSaleNotFound
	}

	return sl, nil
}

// Create records a sale of one or more drops. The drops are marked sold
// and the run's sales are replayed so net proceeds and splits come out of
// the stored entry fee, never from the client.
func (s *Service) Create(ctx context.Context, req *CreateSaleRequest) (*Sale, error) {
	r, err := s.runs.GetByID(ctx, req.RunID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRunNotFound
	}

	if len(req.DropIDs) == 0 {
		return nil, ErrNoDrops
	}
	if req.TotalPriceWS < 0 {
		return nil, ErrNegativePrice
	}
	if strings.TrimSpace(req.Buyer) == "" {
		return nil, ErrBuyerRequired
	}

	if err := s.validateDrops(ctx, req.RunID, req.DropIDs, 0); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	id, err := s.repo.Create(ctx, req.RunID, req.DropIDs, req.TotalPriceWS, req.Buyer, date)
	if err != nil {
		return nil, err
	}

	if err := s.recalc.RecalculateRun(ctx, req.RunID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Update corrects a sale's price, buyer, date or drop set. Any change
// that moves money replays the run.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateSaleRequest) (*Sale, error) {
	sl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, ErrSaleNotFound
	}

	needsRecalc := false
	if req.TotalPriceWS != nil {
		if *req.TotalPriceWS < 0 {
			return nil, ErrNegativePrice
		}
		if *req.TotalPriceWS != sl.TotalPriceWS {
			needsRecalc = true
		}
		sl.TotalPriceWS = *req.TotalPriceWS
	}
	if req.Buyer != nil {
		if strings.TrimSpace(*req.Buyer) == "" {
			return nil, ErrBuyerRequired
		}
		sl.Buyer = *req.Buyer
	}
	if req.Date != nil {
		if !req.Date.Equal(sl.Date) {
			// Reordering the timeline changes which sale recovers the fee.
			needsRecalc = true
		}
		sl.Date = *req.Date
	}

	if req.DropIDs != nil {
		if len(*req.DropIDs) == 0 {
			return nil, ErrNoDrops
		}
		if err := s.validateDrops(ctx, sl.RunID, *req.DropIDs, sl.ID); err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceDrops(ctx, sl.ID, *req.DropIDs); err != nil {
			return nil, err
		}
		needsRecalc = true
	}

	if err := s.repo.UpdateFields(ctx, sl); err != nil {
		return nil, err
	}

	if needsRecalc {
		if err := s.recalc.RecalculateRun(ctx, sl.RunID); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a sale, releases its drops back to unsold and replays
// the run so later sales absorb the fee it was recovering.
func (s *Service) Delete(ctx context.Context, id int64) error {
	sl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sl == nil {
		return ErrSaleNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.recalc.RecalculateRun(ctx, sl.RunID)
}

// validateDrops checks that every drop exists, belongs to the run, and is
// either available or already part of the sale being edited.
func (s *Service) validateDrops(ctx context.Context, runID int64, dropIDs []int64, saleID int64) error {
	for _, dropID := range dropIDs {
		d, err := s.drops.GetByID(ctx, dropID)
		if err != nil {
			return err
		}
		if d == nil {
			return ErrDropNotFound
		}
		if d.RunID != runID {
			return ErrDropWrongRun
		}
		if d.Status == drop.StatusDisenchanted {
			return ErrDropNotSellable
		}
		if d.Status == drop.StatusSold && (d.SaleID == nil || *d.SaleID != saleID) {
			return ErrDropNotSellable
		}
	}
	return nil
}
