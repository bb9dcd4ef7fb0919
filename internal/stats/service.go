package stats

import (
	"context"
	"errors"
	"sort"

	"github.com/azmy/lootledger/internal/calc"
	"github.com/azmy/lootledger/internal/player"
)

// ErrPlayerNotFound is returned for profile requests naming an unknown player.
var ErrPlayerNotFound = errors.New("player not found")

// Service builds earnings profiles from run and sale facts
type Service struct {
	repo    *Repository
	players *player.Repository
}

// NewService creates a new stats service
func NewService(repo *Repository, players *player.Repository) *Service {
	return &Service{
		repo:    repo,
		players: players,
	}
}

// Global aggregates earnings across all players.
func (s *Service) Global(ctx context.Context) (*ProfileStats, error) {
	runs, err := s.repo.GlobalRunFacts(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.repo.GlobalSaleFacts(ctx)
	if err != nil {
		return nil, err
	}

	stats := buildProfile(runs, sales)
	return &stats, nil
}

// ForPlayer aggregates one player's share of earnings across the runs
// they participated in.
func (s *Service) ForPlayer(ctx context.Context, playerID int64) (*ProfileStats, error) {
	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	runs, err := s.repo.PlayerRunFacts(ctx, playerID)
	if err != nil {
		return nil, err
	}

	sales, err := s.repo.PlayerSaleFacts(ctx, playerID)
	if err != nil {
		return nil, err
	}

	stats := buildProfile(runs, sales)
	stats.Player = &PlayerRef{ID: p.ID, Name: p.Name}
	return &stats, nil
}

// buildProfile folds run and sale facts into totals, monthly buckets and
// a date-ordered per-run earnings series with cumulative net.
func buildProfile(runs []RunFacts, sales []SaleFacts) ProfileStats {
	var totalGrossWS, totalNetWS float64
	monthly := make(map[string]*MonthlyEarning)
	byRun := make(map[int64]*RunEarning, len(runs))

	earnings := make([]RunEarning, len(runs))
	for i, r := range runs {
		earnings[i] = RunEarning{
			RunID:      r.ID,
			RunNumber:  r.RunNumber,
			Date:       r.Date,
			EntryFeeWS: r.EntryFeeWS,
			DropsCount: r.DropsCount,
		}
		byRun[r.ID] = &earnings[i]

		key := r.Date.Format("2006-01")
		bucket := monthly[key]
		if bucket == nil {
			bucket = &MonthlyEarning{Month: key}
			monthly[key] = bucket
		}
		bucket.RunsCount++
	}

	for _, sl := range sales {
		totalGrossWS += sl.GrossWS
		totalNetWS += sl.NetWS

		key := sl.Date.Format("2006-01")
		bucket := monthly[key]
		if bucket == nil {
			bucket = &MonthlyEarning{Month: key}
			monthly[key] = bucket
		}
		bucket.GrossWS = calc.Round2(bucket.GrossWS + sl.GrossWS)
		bucket.NetWS = calc.Round2(bucket.NetWS + sl.NetWS)
		bucket.SalesCount++

		if e, ok := byRun[sl.RunID]; ok {
			e.GrossWS = calc.Round2(e.GrossWS + sl.GrossWS)
			e.NetWS = calc.Round2(e.NetWS + sl.NetWS)
			e.SalesCount++
		}
	}

	months := make([]MonthlyEarning, 0, len(monthly))
	for _, bucket := range monthly {
		months = append(months, *bucket)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	var cumulative float64
	for i := range earnings {
		cumulative += earnings[i].NetWS
		earnings[i].CumulativeNetWS = calc.Round2(cumulative)
	}

	return ProfileStats{
		Totals: Totals{
			GrossWS:    calc.Round2(totalGrossWS),
			NetWS:      calc.Round2(totalNetWS),
			TotalSales: len(sales),
			TotalRuns:  len(runs),
		},
		MonthlyEarnings: months,
		RunEarnings:     earnings,
	}
}
