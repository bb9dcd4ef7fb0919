package drop

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles drop data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new drop repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const dropColumns = `
	d.id, d.run_id, d.owner_player_id, d.item_type, d.main_roll, d.secondary_roll,
	d.notes, d.status, d.sale_id, d.disenchanted_into, d.created_at, d.updated_at, p.name
`

func scanDrop(row interface{ Scan(...interface{}) error }) (*Drop, error) {
	d := &Drop{}
	err := row.Scan(
		&d.ID,
		&d.RunID,
		&d.OwnerPlayerID,
		&d.ItemType,
		&d.MainRoll,
		&d.SecondaryRoll,
		&d.Notes,
		&d.Status,
		&d.SaleID,
		&d.DisenchantedInto,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.OwnerName,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts a new drop into the database
func (r *Repository) Create(ctx context.Context, runID int64, req *CreateDropRequest) (*Drop, error) {
	query := `
		WITH inserted AS (
			INSERT INTO drops (run_id, owner_player_id, item_type, main_roll, secondary_roll, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT ` + dropColumns + `
		FROM inserted d
		JOIN players p ON d.owner_player_id = p.id
	`

	d, err := scanDrop(r.db.QueryRowContext(ctx, query,
		runID, req.OwnerPlayerID, req.ItemType, req.MainRoll, req.SecondaryRoll, req.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to create drop: %w", err)
	}

	return d, nil
}

// GetByID retrieves a drop by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Drop, error) {
	query := `
		SELECT ` + dropColumns + `
		FROM drops d
		JOIN players p ON d.owner_player_id = p.id
		WHERE d.id = $1
	`

	d, err := scanDrop(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drop: %w", err)
	}

	return d, nil
}

// ListByRun retrieves all drops for a run, newest first
func (r *Repository) ListByRun(ctx context.Context, runID int64) ([]*Drop, error) {
	query := `
		SELECT ` + dropColumns + `
		FROM drops d
		JOIN players p ON d.owner_player_id = p.id
		WHERE d.run_id = $1
		ORDER BY d.created_at DESC, d.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drops: %w", err)
	}
	defer rows.Close()

	var drops []*Drop
	for rows.Next() {
		d, err := scanDrop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan drop: %w", err)
		}
		drops = append(drops, d)
	}

	return drops, nil
}

// Update persists the drop's mutable fields.
func (r *Repository) Update(ctx context.Context, d *Drop) error {
	query := `
		UPDATE drops
		SET owner_player_id = $2, item_type = $3, main_roll = $4, secondary_roll = $5,
		    notes = $6, status = $7, sale_id = $8, disenchanted_into = $9, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.OwnerPlayerID,
		d.ItemType,
		d.MainRoll,
		d.SecondaryRoll,
		d.Notes,
		d.Status,
		d.SaleID,
		d.DisenchantedInto,
	)
	if err != nil {
		return fmt.Errorf("failed to update drop: %w", err)
	}

	return nil
}
