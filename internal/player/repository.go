package player

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles player data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new player repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new player into the database
func (r *Repository) Create(ctx context.Context, req *CreatePlayerRequest) (*Player, error) {
	query := `
		INSERT INTO players (name, user_id, default_cut_percent, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, user_id, default_cut_percent, notes, created_at, updated_at
	`

	p := &Player{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.UserID, req.DefaultCutPercent, req.Notes).Scan(
		&p.ID,
		&p.Name,
		&p.UserID,
		&p.DefaultCutPercent,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return p, nil
}

// GetByID retrieves a player by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Player, error) {
	query := `
		SELECT id, name, user_id, default_cut_percent, notes, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	p := &Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.UserID,
		&p.DefaultCutPercent,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return p, nil
}

// List retrieves all players ordered by name
func (r *Repository) List(ctx context.Context) ([]*Player, error) {
	query := `
		SELECT id, name, user_id, default_cut_percent, notes, created_at, updated_at
		FROM players
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		p := &Player{}
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.UserID,
			&p.DefaultCutPercent,
			&p.Notes,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	return players, nil
}

// Update applies a partial update to a player
func (r *Repository) Update(ctx context.Context, id int64, req *UpdatePlayerRequest) (*Player, error) {
	query := `
		UPDATE players
		SET name = COALESCE($2, name),
		    user_id = COALESCE($3, user_id),
		    default_cut_percent = COALESCE($4, default_cut_percent),
		    notes = COALESCE($5, notes),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, user_id, default_cut_percent, notes, created_at, updated_at
	`

	p := &Player{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.UserID, req.DefaultCutPercent, req.Notes).Scan(
		&p.ID,
		&p.Name,
		&p.UserID,
		&p.DefaultCutPercent,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return p, nil
}

// UnpaidTotals returns the sum of unpaid split amounts per player across
// all sales.
func (r *Repository) UnpaidTotals(ctx context.Context) (map[int64]float64, error) {
	query := `
		SELECT player_id, SUM(amount_ws)
		FROM sale_splits
		WHERE is_paid = FALSE
		GROUP BY player_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sum unpaid splits: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]float64)
	for rows.Next() {
		var playerID int64
		var amount float64
		if err := rows.Scan(&playerID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan unpaid total: %w", err)
		}
		totals[playerID] = amount
	}

	return totals, nil
}

// MarkSplitsPaid marks every unpaid split entry for the player as paid and
// refreshes the settled flag on the affected sales.
func (r *Repository) MarkSplitsPaid(ctx context.Context, playerID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sale_splits SET is_paid = TRUE
		WHERE player_id = $1 AND is_paid = FALSE
	`, playerID)
	if err != nil {
		return fmt.Errorf("failed to mark splits paid: %w", err)
	}

	// A sale is settled once every one of its split entries is paid.
	_, err = r.db.ExecContext(ctx, `
		UPDATE sales s
		SET is_settled = NOT EXISTS (
			SELECT 1 FROM sale_splits ss
			WHERE ss.sale_id = s.id AND ss.is_paid = FALSE
		), updated_at = NOW()
		WHERE s.id IN (SELECT sale_id FROM sale_splits WHERE player_id = $1)
	`, playerID)
	if err != nil {
		return fmt.Errorf("failed to refresh settled flags: %w", err)
	}

	return nil
}
