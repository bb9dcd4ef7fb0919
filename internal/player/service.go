package player

import (
	"context"
	"errors"

	"github.com/azmy/lootledger/internal/calc"
)

// Common errors
var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidCutPercent = errors.New("default cut percent must be between 0 and 100")
)

// Service handles player business logic
type Service struct {
	repo *Repository
}

// NewService creates a new player service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and creates a new player
func (s *Service) Create(ctx context.Context, req *CreatePlayerRequest) (*Player, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.DefaultCutPercent != nil && (*req.DefaultCutPercent < 0 || *req.DefaultCutPercent > 100) {
		return nil, ErrInvalidCutPercent
	}

	return s.repo.Create(ctx, req)
}

// List returns all players with their outstanding owed amounts attached.
func (s *Service) List(ctx context.Context) ([]*Player, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	owed, err := s.repo.UnpaidTotals(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		p.OwedWS = calc.Round2(owed[p.ID])
	}

	return players, nil
}

// GetByID retrieves a single player
func (s *Service) GetByID(ctx context.Context, id int64) (*Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// Update applies a partial update to a player
func (s *Service) Update(ctx context.Context, id int64, req *UpdatePlayerRequest) (*Player, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.DefaultCutPercent != nil && (*req.DefaultCutPercent < 0 || *req.DefaultCutPercent > 100) {
		return nil, ErrInvalidCutPercent
	}

	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// MarkSplitsPaid settles every unpaid split entry for the player.
func (s *Service) MarkSplitsPaid(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPlayerNotFound
	}

	return s.repo.MarkSplitsPaid(ctx, id)
}
