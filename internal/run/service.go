package run

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/azmy/lootledger/internal/calc"
	"github.com/azmy/lootledger/internal/player"
)

// Common errors
var (
	ErrRunNotFound           = errors.New("run not found")
	ErrHostNotFound          = errors.New("host player not found")
	ErrNegativePrice         = errors.New("prices cannot be negative")
	ErrNegativeCount         = errors.New("resource counts cannot be negative")
	ErrNegativeShareModifier = errors.New("share modifier cannot be negative")
	ErrInvalidStatus         = errors.New("status must be open or settled")
)

const defaultResourceCount = 2

// Recalculator replays a run's sales after a change that invalidates their
// stored splits.
type Recalculator interface {
	RecalculateRun(ctx context.Context, runID int64) error
}

// Service handles run business logic
type Service struct {
	repo    *Repository
	players *player.Repository
	recalc  Recalculator
}

// NewService creates a new run service with dependencies injected
func NewService(repo *Repository, players *player.Repository, recalc Recalculator) *Service {
	return &Service{
		repo:    repo,
		players: players,
		recalc:  recalc,
	}
}

// Create validates the request, computes the entry fee and assigns the next
// sequential run number.
func (s *Service) Create(ctx context.Context, req *CreateRunRequest) (*Run, error) {
	if req.EssencePriceWS < 0 || req.StonePriceWS < 0 {
		return nil, ErrNegativePrice
	}
	if (req.EssenceRequired != nil && *req.EssenceRequired < 0) ||
		(req.StoneRequired != nil && *req.StoneRequired < 0) {
		return nil, ErrNegativeCount
	}

	host, err := s.players.GetByID(ctx, req.HostID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, ErrHostNotFound
	}

	participants, err := buildParticipants(req.Participants)
	if err != nil {
		return nil, err
	}

	runNumber, err := s.repo.NextRunNumber(ctx)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	run := &Run{
		RunNumber:       runNumber,
		Date:            date,
		HostID:          req.HostID,
		Participants:    participants,
		EssenceRequired: valueOr(req.EssenceRequired, defaultResourceCount),
		StoneRequired:   valueOr(req.StoneRequired, defaultResourceCount),
		EssencePriceWS:  req.EssencePriceWS,
		StonePriceWS:    req.StonePriceWS,
		Status:          StatusOpen,
	}
	run.TotalEntryFeeWS = calc.TotalEntryFeeWS(run.EntryFeeConfig())

	return s.repo.Create(ctx, run)
}

// List returns all runs, newest first
func (s *Service) List(ctx context.Context) ([]*Run, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a single run
func (s *Service) GetByID(ctx context.Context, id int64) (*Run, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// Update applies a partial update. The entry fee is recomputed whenever a
// fee input changes, and any change to participants or prices replays the
// run's sales so their stored splits stay consistent.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRunRequest) (*Run, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}

	if req.Date != nil {
		run.Date = *req.Date
	}
	if req.HostID != nil {
		host, err := s.players.GetByID(ctx, *req.HostID)
		if err != nil {
			return nil, err
		}
		if host == nil {
			return nil, ErrHostNotFound
		}
		run.HostID = *req.HostID
	}
	if req.Status != nil {
		if *req.Status != StatusOpen && *req.Status != StatusSettled {
			return nil, ErrInvalidStatus
		}
		run.Status = *req.Status
	}

	feeChanged := false
	if req.EssenceRequired != nil {
		if *req.EssenceRequired < 0 {
			return nil, ErrNegativeCount
		}
		run.EssenceRequired = *req.EssenceRequired
		feeChanged = true
	}
	if req.StoneRequired != nil {
		if *req.StoneRequired < 0 {
			return nil, ErrNegativeCount
		}
		run.StoneRequired = *req.StoneRequired
		feeChanged = true
	}
	if req.EssencePriceWS != nil {
		if *req.EssencePriceWS < 0 {
			return nil, ErrNegativePrice
		}
		run.EssencePriceWS = *req.EssencePriceWS
		feeChanged = true
	}
	if req.StonePriceWS != nil {
		if *req.StonePriceWS < 0 {
			return nil, ErrNegativePrice
		}
		run.StonePriceWS = *req.StonePriceWS
		feeChanged = true
	}

	participantsChanged := false
	if req.Participants != nil {
		participants, err := buildParticipants(*req.Participants)
		if err != nil {
			return nil, err
		}
		run.Participants = participants
		participantsChanged = true
	}

	if feeChanged {
		run.TotalEntryFeeWS = calc.TotalEntryFeeWS(run.EntryFeeConfig())
	}

	if err := s.repo.Update(ctx, run, participantsChanged); err != nil {
		return nil, err
	}

	if feeChanged || participantsChanged {
		if err := s.recalc.RecalculateRun(ctx, run.ID); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a run and cascades to its drops and sales.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRunNotFound
	}
	return err
}

// SetSplitsPaid bulk-sets the paid flags across all of the run's sales.
func (s *Service) SetSplitsPaid(ctx context.Context, id int64, paid bool) error {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if run == nil {
		return ErrRunNotFound
	}

	return s.repo.SetSplitsPaid(ctx, id, paid)
}

func buildParticipants(inputs []ParticipantInput) ([]Participant, error) {
	participants := make([]Participant, len(inputs))
	for i, in := range inputs {
		modifier := 1.0
		if in.ShareModifier != nil {
			if *in.ShareModifier < 0 {
				return nil, ErrNegativeShareModifier
			}
			modifier = *in.ShareModifier
		}
		participants[i] = Participant{PlayerID: in.PlayerID, ShareModifier: modifier}
	}
	return participants, nil
}

func valueOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
