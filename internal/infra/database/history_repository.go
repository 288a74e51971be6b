package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Append(ctx context.Context, h *entity.BuyerHistory) error {
	diff, err := json.Marshal(h.Diff)
	if err != nil {
		return fmt.Errorf("encoding history diff: %w", err)
	}

	h.ID = uuid.New().String()

	query := `
		INSERT INTO buyer_history (id, buyer_id, changed_by, diff, changed_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING changed_at
	`
	if err := r.DB.QueryRowContext(ctx, query, h.ID, h.BuyerID, h.ChangedBy, diff).Scan(&h.ChangedAt); err != nil {
		return fmt.Errorf("inserting buyer history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByBuyer(ctx context.Context, buyerID string, limit int) ([]entity.BuyerHistory, error) {
	query := `
		SELECT id, buyer_id, changed_by, diff, changed_at
		FROM buyer_history
		WHERE buyer_id = $1
		ORDER BY changed_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, buyerID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing buyer history: %w", err)
	}
	defer rows.Close()

	history := []entity.BuyerHistory{}
	for rows.Next() {
		var h entity.BuyerHistory
		var diff []byte
		if err := rows.Scan(&h.ID, &h.BuyerID, &h.ChangedBy, &diff, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := json.Unmarshal(diff, &h.Diff); err != nil {
			return nil, fmt.Errorf("decoding history diff: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// Prune removes history entries older than the retention window and reports
// how many were dropped.
func (r *HistoryRepository) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM buyer_history WHERE changed_at < NOW() - $1::interval`,
		fmt.Sprintf("%d seconds", int64(olderThan.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning buyer history: %w", err)
	}
	return res.RowsAffected()
}
