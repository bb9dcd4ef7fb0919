package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunFacts is the slice of run state the aggregator needs.
type RunFacts struct {
	ID         int64
	RunNumber  int64
	Date       time.Time
	EntryFeeWS float64
	DropsCount int
}

// SaleFacts is one sale's contribution to an earnings profile. For a
// player-scoped profile, gross is the sale price divided evenly across
// split entries and net is the player's own split amount.
type SaleFacts struct {
	RunID   int64
	Date    time.Time
	GrossWS float64
	NetWS   float64
}

// Repository reads the aggregate inputs for earnings profiles
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new stats repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GlobalRunFacts returns every run with its drop count, date ascending.
func (r *Repository) GlobalRunFacts(ctx context.Context) ([]RunFacts, error) {
	query := `
		SELECT r.id, r.run_number, r.date, r.total_entry_fee_ws, COUNT(d.id)
		FROM runs r
		LEFT JOIN drops d ON d.run_id = r.id
		GROUP BY r.id
		ORDER BY r.date ASC, r.id ASC
	`

	return r.queryRunFacts(ctx, query)
}

// PlayerRunFacts returns the runs a player participated in, date ascending.
func (r *Repository) PlayerRunFacts(ctx context.Context, playerID int64) ([]RunFacts, error) {
	query := `
		SELECT r.id, r.run_number, r.date, r.total_entry_fee_ws, COUNT(d.id)
		FROM runs r
		JOIN run_participants rp ON rp.run_id = r.id AND rp.player_id = $1
		LEFT JOIN drops d ON d.run_id = r.id
		GROUP BY r.id
		ORDER BY r.date ASC, r.id ASC
	`

	return r.queryRunFacts(ctx, query, playerID)
}

// GlobalSaleFacts returns every sale's gross and net, date ascending.
func (r *Repository) GlobalSaleFacts(ctx context.Context) ([]SaleFacts, error) {
	query := `
		SELECT run_id, date, total_price_ws, net_after_fees_ws
		FROM sales
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale facts: %w", err)
	}
	defer rows.Close()

	var facts []SaleFacts
	for rows.Next() {
		var f SaleFacts
		if err := rows.Scan(&f.RunID, &f.Date, &f.GrossWS, &f.NetWS); err != nil {
			return nil, fmt.Errorf("failed to scan sale facts: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, nil
}

// PlayerSaleFacts returns the player's share of each sale they were split
// into: net is their split amount, gross is the sale price spread evenly
// across all split entries.
func (r *Repository) PlayerSaleFacts(ctx context.Context, playerID int64) ([]SaleFacts, error) {
	query := `
		SELECT s.run_id, s.date,
		       s.total_price_ws / GREATEST((SELECT COUNT(*) FROM sale_splits WHERE sale_id = s.id), 1),
		       ss.amount_ws
		FROM sales s
		JOIN sale_splits ss ON ss.sale_id = s.id AND ss.player_id = $1
		ORDER BY s.date ASC, s.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player sale facts: %w", err)
	}
	defer rows.Close()

	var facts []SaleFacts
	for rows.Next() {
		var f SaleFacts
		if err := rows.Scan(&f.RunID, &f.Date, &f.GrossWS, &f.NetWS); err != nil {
			return nil, fmt.Errorf("failed to scan player sale facts: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, nil
}

func (r *Repository) queryRunFacts(ctx context.Context, query string, args ...interface{}) ([]RunFacts, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load run facts: %w", err)
	}
	defer rows.Close()

	var facts []RunFacts
	for rows.Next() {
		var f RunFacts
		if err := rows.Scan(&f.ID, &f.RunNumber, &f.Date, &f.EntryFeeWS, &f.DropsCount); err != nil {
			return nil, fmt.Errorf("failed to scan run facts: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, nil
}
