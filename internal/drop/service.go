package drop

import (
	"context"
	"errors"

	"github.com/azmy/lootledger/internal/run"
)

// Common errors
var (
	ErrDropNotFound         = errors.New("drop not found")
	ErrRunNotFound          = errors.New("run not found")
	ErrRunNotOpen           = errors.New("run is not open")
	ErrOwnerNotParticipant  = errors.New("owner must be a participant in this run")
	ErrInvalidItemType      = errors.New("unknown item type")
	ErrRollOutOfRange       = errors.New("roll value out of range")
	ErrInvalidDisenchant    = errors.New("disenchant target must be 'essence' or 'stone'")
	ErrAlreadySold          = errors.New("cannot disenchant a sold item")
	ErrAlreadyDisenchanted  = errors.New("item is already disenchanted")
	ErrTerminalStatusDirect = errors.New("sold and disenchanted are set by sales and disenchanting, not directly")
)

// Recalculator replays sale splits after a drop correction invalidates them.
type Recalculator interface {
	RecalculateForDrop(ctx context.Context, dropID int64) error
	RecalculateRun(ctx context.Context, runID int64) error
}

// Service handles drop business logic
type Service struct {
	repo   *Repository
	runs   *run.Repository
	recalc Recalculator
}

// NewService creates a new drop service with dependencies injected
func NewService(repo *Repository, runs *run.Repository, recalc Recalculator) *Service {
	return &Service{
		repo:   repo,
		runs:   runs,
		recalc: recalc,
	}
}

// ListByRun returns all drops recorded against a run.
func (s *Service) ListByRun(ctx context.Context, runID int64) ([]*Drop, error) {
	r, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRunNotFound
	}

	return s.repo.ListByRun(ctx, runID)
}

// Create records a drop against an open run. The owner must be one of the
// run's participants.
func (s *Service) Create(ctx context.Context, runID int64, req *CreateDropRequest) (*Drop, error) {
	r, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRunNotFound
	}
	if r.Status != run.StatusOpen {
		return nil, ErrRunNotOpen
	}
	if !r.HasParticipant(req.OwnerPlayerID) {
		return nil, ErrOwnerNotParticipant
	}
	if !ValidItemType(req.ItemType) {
		return nil, ErrInvalidItemType
	}
	if err := validateRolls(req.MainRoll, req.SecondaryRoll); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, runID, req)
}

// Update corrects a drop's fields. Corrections to a drop that is linked to
// a sale replay the affected sales so their stored splits stay consistent.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateDropRequest) (*Drop, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDropNotFound
	}

	r, err := s.runs.GetByID(ctx, d.RunID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRunNotFound
	}

	if req.OwnerPlayerID != nil {
		if !r.HasParticipant(*req.OwnerPlayerID) {
			return nil, ErrOwnerNotParticipant
		}
		d.OwnerPlayerID = *req.OwnerPlayerID
	}
	if req.ItemType != nil {
		if !ValidItemType(*req.ItemType) {
			return nil, ErrInvalidItemType
		}
		d.ItemType = *req.ItemType
	}
	if req.MainRoll != nil {
		d.MainRoll = *req.MainRoll
	}
	if req.SecondaryRoll != nil {
		d.SecondaryRoll = *req.SecondaryRoll
	}
	if err := validateRolls(d.MainRoll, d.SecondaryRoll); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		d.Notes = req.Notes
	}

	wasLinked := d.SaleID != nil
	if req.Status != nil {
		if *req.Status == StatusSold || *req.Status == StatusDisenchanted {
			return nil, ErrTerminalStatusDirect
		}
		// Moving away from a terminal state clears its exclusive field.
		d.Status = *req.Status
		d.SaleID = nil
		d.DisenchantedInto = nil
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if wasLinked {
		if d.SaleID == nil {
			// The drop left its sale; replay the whole run.
			if err := s.recalc.RecalculateRun(ctx, d.RunID); err != nil {
				return nil, err
			}
		} else if err := s.recalc.RecalculateForDrop(ctx, d.ID); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Disenchant converts an unsold drop into a fixed-value resource.
func (s *Service) Disenchant(ctx context.Context, id int64, target DisenchantTarget) (*Drop, error) {
	if target != DisenchantEssence && target != DisenchantStone {
		return nil, ErrInvalidDisenchant
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDropNotFound
	}

	if d.Status == StatusSold {
		return nil, ErrAlreadySold
	}
	if d.Status == StatusDisenchanted {
		return nil, ErrAlreadyDisenchanted
	}

	d.Status = StatusDisenchanted
	d.DisenchantedInto = &target
	d.SaleID = nil

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func validateRolls(mainRoll, secondaryRoll int) error {
	if mainRoll < MainRollMin || mainRoll > MainRollMax {
		return ErrRollOutOfRange
	}
	if secondaryRoll < SecondaryRollMin || secondaryRoll > SecondaryRollMax {
		return ErrRollOutOfRange
	}
	return nil
}
