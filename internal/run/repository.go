package run

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles run data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new run repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// NextRunNumber returns the next sequential run number.
func (r *Repository) NextRunNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(run_number), 0) + 1 FROM runs`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next run number: %w", err)
	}
	return next, nil
}

// Create inserts a run and its ordered participant list in one transaction.
func (r *Repository) Create(ctx context.Context, run *Run) (*Run, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO runs (run_number, date, host_id, essence_required, stone_required,
		                  essence_price_ws, stone_price_ws, total_entry_fee_ws, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		run.RunNumber,
		run.Date,
		run.HostID,
		run.EssenceRequired,
		run.StoneRequired,
		run.EssencePriceWS,
		run.StonePriceWS,
		run.TotalEntryFeeWS,
		run.Status,
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if err := insertParticipants(ctx, tx, run.ID, run.Participants); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return run, nil
}

// GetByID retrieves a run with its participant list
func (r *Repository) GetByID(ctx context.Context, id int64) (*Run, error) {
	query := `
		SELECT r.id, r.run_number, r.date, r.host_id, r.essence_required, r.stone_required,
		       r.essence_price_ws, r.stone_price_ws, r.total_entry_fee_ws, r.status,
		       r.created_at, r.updated_at, p.name
		FROM runs r
		JOIN players p ON r.host_id = p.id
		WHERE r.id = $1
	`

	run := &Run{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.RunNumber,
		&run.Date,
		&run.HostID,
		&run.EssenceRequired,
		&run.StoneRequired,
		&run.EssencePriceWS,
		&run.StonePriceWS,
		&run.TotalEntryFeeWS,
		&run.Status,
		&run.CreatedAt,
		&run.UpdatedAt,
		&run.HostName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	participants, err := r.participantsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	run.Participants = participants[id]

	return run, nil
}

// List retrieves all runs with participants, newest first
func (r *Repository) List(ctx context.Context) ([]*Run, error) {
	query := `
		SELECT r.id, r.run_number, r.date, r.host_id, r.essence_required, r.stone_required,
		       r.essence_price_ws, r.stone_price_ws, r.total_entry_fee_ws, r.status,
		       r.created_at, r.updated_at, p.name
		FROM runs r
		JOIN players p ON r.host_id = p.id
		ORDER BY r.date DESC, r.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	var ids []int64
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(
			&run.ID,
			&run.RunNumber,
			&run.Date,
			&run.HostID,
			&run.EssenceRequired,
			&run.StoneRequired,
			&run.EssencePriceWS,
			&run.StonePriceWS,
			&run.TotalEntryFeeWS,
			&run.Status,
			&run.CreatedAt,
			&run.UpdatedAt,
			&run.HostName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
		ids = append(ids, run.ID)
	}

	if len(ids) > 0 {
		participants, err := r.participantsFor(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, run := range runs {
			run.Participants = participants[run.ID]
		}
	}

	return runs, nil
}

// Update persists the run's mutable fields and replaces its participant
// list when one is provided.
func (r *Repository) Update(ctx context.Context, run *Run, replaceParticipants bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE runs
		SET date = $2, host_id = $3, essence_required = $4, stone_required = $5,
		    essence_price_ws = $6, stone_price_ws = $7, total_entry_fee_ws = $8,
		    status = $9, updated_at = NOW()
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, query,
		run.ID,
		run.Date,
		run.HostID,
		run.EssenceRequired,
		run.StoneRequired,
		run.EssencePriceWS,
		run.StonePriceWS,
		run.TotalEntryFeeWS,
		run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	if replaceParticipants {
		if _, err := tx.ExecContext(ctx, `DELETE FROM run_participants WHERE run_id = $1`, run.ID); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		if err := insertParticipants(ctx, tx, run.ID, run.Participants); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run update: %w", err)
	}

	return nil
}

// Delete removes a run. Drops, sales and split entries go with it via
// foreign key cascades.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// SetSplitsPaid bulk-sets the paid flag on every split entry of the run's
// sales and aligns the sales' settled flags.
func (r *Repository) SetSplitsPaid(ctx context.Context, runID int64, paid bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sale_splits SET is_paid = $2
		WHERE sale_id IN (SELECT id FROM sales WHERE run_id = $1)
	`, runID, paid)
	if err != nil {
		return fmt.Errorf("failed to set split paid flags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE sales SET is_settled = $2, updated_at = NOW() WHERE run_id = $1
	`, runID, paid)
	if err != nil {
		return fmt.Errorf("failed to set settled flags: %w", err)
	}

	return nil
}

// participantsFor loads ordered participant lists for the given run ids.
func (r *Repository) participantsFor(ctx context.Context, runIDs []int64) (map[int64][]Participant, error) {
	query := `
		SELECT rp.run_id, rp.player_id, rp.share_modifier, p.name
		FROM run_participants rp
		JOIN players p ON rp.player_id = p.id
		WHERE rp.run_id = ANY($1)
		ORDER BY rp.run_id, rp.position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(runIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	participants := make(map[int64][]Participant)
	for rows.Next() {
		var runID int64
		var p Participant
		if err := rows.Scan(&runID, &p.PlayerID, &p.ShareModifier, &p.PlayerName); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants[runID] = append(participants[runID], p)
	}

	return participants, nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, runID int64, participants []Participant) error {
	for i, p := range participants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_participants (run_id, player_id, share_modifier, position)
			VALUES ($1, $2, $3, $4)
		`, runID, p.PlayerID, p.ShareModifier, i)
		if err != nil {
			return fmt.Errorf("failed to insert participant %d: %w", p.PlayerID, err)
		}
	}
	return nil
}
