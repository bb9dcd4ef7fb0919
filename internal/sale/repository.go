package sale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Repository handles sale data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new sale repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a sale and links the drops to it, marking them sold.
// Splits and net proceeds are filled in afterwards by recalculation.
func (r *Repository) Create(ctx context.Context, runID int64, dropIDs []int64, totalPriceWS float64, buyer string, date time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	query := `
		INSERT INTO sales (run_id, total_price_ws, buyer, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, runID, totalPriceWS, buyer, date).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create sale: %w", err)
	}

	if err := attachDrops(ctx, tx, id, dropIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// GetByID retrieves a sale with its drop links and split details
func (r *Repository) GetByID(ctx context.Context, id int64) (*Sale, error) {
	query := `
		SELECT id, run_id, total_price_ws, buyer, date, net_after_fees_ws, is_settled, created_at, updated_at
		FROM sales
		WHERE id = $1
	`

	s := &Sale{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.RunID,
		&s.TotalPriceWS,
		&s.Buyer,
		&s.Date,
		&s.NetAfterFeesWS,
		&s.IsSettled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	if err := r.attachDetails(ctx, []*Sale{s}); err != nil {
		return nil, err
	}

	return s, nil
}

// List retrieves all sales, newest first
func (r *Repository) List(ctx context.Context) ([]*Sale, error) {
	query := `
		SELECT id, run_id, total_price_ws, buyer, date, net_after_fees_ws, is_settled, created_at, updated_at
		FROM sales
		ORDER BY date DESC, id DESC
	`

	return r.query(ctx, query)
}

// ListByRun retrieves a run's sales in chronological order. Replays fold
// over this ordering, so ties on date break by insertion order.
func (r *Repository) ListByRun(ctx context.Context, runID int64) ([]*Sale, error) {
	query := `
		SELECT id, run_id, total_price_ws, buyer, date, net_after_fees_ws, is_settled, created_at, updated_at
		FROM sales
		WHERE run_id = $1
		ORDER BY date ASC, id ASC
	`

	return r.query(ctx, query, runID)
}

// SalesForDrop retrieves the sales a drop is linked to.
func (r *Repository) SalesForDrop(ctx context.Context, dropID int64) ([]*Sale, error) {
	query := `
		SELECT s.id, s.run_id, s.total_price_ws, s.buyer, s.date, s.net_after_fees_ws, s.is_settled, s.created_at, s.updated_at
		FROM sales s
		JOIN drops d ON d.sale_id = s.id
		WHERE d.id = $1
	`

	return r.query(ctx, query, dropID)
}

// UpdateFields persists a sale's price, buyer and date
func (r *Repository) UpdateFields(ctx context.Context, s *Sale) error {
	query := `
		UPDATE sales
		SET total_price_ws = $2, buyer = $3, date = $4, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, s.ID, s.TotalPriceWS, s.Buyer, s.Date)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	return nil
}

// ReplaceSplit atomically swaps a sale's stored split for a freshly
// computed one. Paid flags do not survive a replay.
func (r *Repository) ReplaceSplit(ctx context.Context, saleID int64, netAfterFeesWS float64, splits []SplitDetail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM sale_splits WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("failed to clear sale splits: %w", err)
	}

	for _, split := range splits {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sale_splits (sale_id, player_id, amount_ws) VALUES ($1, $2, $3)`,
			saleID, split.PlayerID, split.AmountWS)
		if err != nil {
			return fmt.Errorf("failed to insert sale split: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE sales SET net_after_fees_ws = $2, is_settled = FALSE, updated_at = NOW() WHERE id = $1`,
		saleID, netAfterFeesWS)
	if err != nil {
		return fmt.Errorf("failed to update sale net: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReplaceDrops releases a sale's current drops back to unsold and links
// the given set in their place.
func (r *Repository) ReplaceDrops(ctx context.Context, saleID int64, dropIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE drops SET status = 'unsold', sale_id = NULL, updated_at = NOW() WHERE sale_id = $1`,
		saleID)
	if err != nil {
		return fmt.Errorf("failed to release drops: %w", err)
	}

	if err := attachDrops(ctx, tx, saleID, dropIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a sale and releases its drops back to unsold.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE drops SET status = 'unsold', sale_id = NULL, updated_at = NOW() WHERE sale_id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("failed to release drops: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func attachDrops(ctx context.Context, tx *sql.Tx, saleID int64, dropIDs []int64) error {
	if len(dropIDs) == 0 {
		return nil
	}

	_, err := tx.ExecContext(ctx,
		`UPDATE drops SET status = 'sold', sale_id = $1, updated_at = NOW() WHERE id = ANY($2)`,
		saleID, pq.Array(dropIDs))
	if err != nil {
		return fmt.Errorf("failed to link drops: %w", err)
	}

	return nil
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []*Sale
	for rows.Next() {
		s := &Sale{}
		err := rows.Scan(
			&s.ID,
			&s.RunID,
			&s.TotalPriceWS,
			&s.Buyer,
			&s.Date,
			&s.NetAfterFeesWS,
			&s.IsSettled,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}

	if err := r.attachDetails(ctx, sales); err != nil {
		return nil, err
	}

	return sales, nil
}

// attachDetails loads drop links and split details for a batch of sales
func (r *Repository) attachDetails(ctx context.Context, sales []*Sale) error {
	if len(sales) == 0 {
		return nil
	}

	byID := make(map[int64]*Sale, len(sales))
	saleIDs := make([]int64, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		saleIDs = append(saleIDs, s.ID)
	}

	dropRows, err := r.db.QueryContext(ctx,
		`SELECT id, sale_id FROM drops WHERE sale_id = ANY($1) ORDER BY id`,
		pq.Array(saleIDs))
	if err != nil {
		return fmt.Errorf("failed to load sale drops: %w", err)
	}
	defer dropRows.Close()

	for dropRows.Next() {
		var dropID, saleID int64
		if err := dropRows.Scan(&dropID, &saleID); err != nil {
			return fmt.Errorf("failed to scan sale drop: %w", err)
		}
		if s, ok := byID[saleID]; ok {
			s.DropIDs = append(s.DropIDs, dropID)
		}
	}

	splitRows, err := r.db.QueryContext(ctx, `
		SELECT ss.sale_id, ss.player_id, ss.amount_ws, ss.is_paid, p.name
		FROM sale_splits ss
		JOIN players p ON ss.player_id = p.id
		WHERE ss.sale_id = ANY($1)
		ORDER BY ss.id
	`, pq.Array(saleIDs))
	if err != nil {
		return fmt.Errorf("failed to load sale splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var saleID int64
		var detail SplitDetail
		if err := splitRows.Scan(&saleID, &detail.PlayerID, &detail.AmountWS, &detail.IsPaid, &detail.PlayerName); err != nil {
			return fmt.Errorf("failed to scan sale split: %w", err)
		}
		if s, ok := byID[saleID]; ok {
			s.SplitDetails = append(s.SplitDetails, detail)
		}
	}

	return nil
}
