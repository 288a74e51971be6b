package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

// BuyerRepository persists buyers in Postgres. It is the component that
// assigns identity (uuid) and the updated_at version token, and the one that
// enforces the optimistic-concurrency check on update.
type BuyerRepository struct {
	DB *sql.DB
}

func NewBuyerRepository(db *sql.DB) *BuyerRepository {
	return &BuyerRepository{DB: db}
}

const buyerColumns = `
	id, full_name, email, phone, city, property_type, bhk, purpose,
	budget_min, budget_max, timeline, source, status, notes, tags,
	owner_id, updated_at
`

func (r *BuyerRepository) GetByID(ctx context.Context, id string) (*entity.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE id = $1`

	b, err := scanBuyer(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching buyer %s: %w", id, err)
	}
	return b, nil
}

func (r *BuyerRepository) List(ctx context.Context) ([]entity.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing buyers: %w", err)
	}
	defer rows.Close()

	var buyers []entity.Buyer
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning buyer row: %w", err)
		}
		buyers = append(buyers, *b)
	}
	return buyers, rows.Err()
}

func (r *BuyerRepository) Create(ctx context.Context, b *entity.Buyer) error {
	b.ID = uuid.New().String()

	query := `
		INSERT INTO buyers (
			id, full_name, email, phone, city, property_type, bhk, purpose,
			budget_min, budget_max, timeline, source, status, notes, tags,
			owner_id, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		b.ID,
		b.FullName,
		nullString(b.Email),
		b.Phone,
		b.City,
		b.PropertyType,
		nullString(b.BHK),
		b.Purpose,
		b.BudgetMin,
		b.BudgetMax,
		b.Timeline,
		b.Source,
		b.Status,
		nullString(b.Notes),
		pq.Array(b.Tags),
		b.OwnerID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting buyer: %w", err)
	}
	return nil
}

// Update writes the merged record only when the stored version token still
// equals expectedUpdatedAt. A vanished row under a matching id means another
// writer got there first.
func (r *BuyerRepository) Update(ctx context.Context, b *entity.Buyer, expectedUpdatedAt time.Time) (*entity.Buyer, error) {
	query := `
		UPDATE buyers SET
			full_name = $1, email = $2, phone = $3, city = $4,
			property_type = $5, bhk = $6, purpose = $7,
			budget_min = $8, budget_max = $9, timeline = $10,
			source = $11, status = $12, notes = $13, tags = $14,
			updated_at = NOW()
		WHERE id = $15 AND updated_at = $16
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		b.FullName,
		nullString(b.Email),
		b.Phone,
		b.City,
		b.PropertyType,
		nullString(b.BHK),
		b.Purpose,
		b.BudgetMin,
		b.BudgetMax,
		b.Timeline,
		b.Source,
		b.Status,
		nullString(b.Notes),
		pq.Array(b.Tags),
		b.ID,
		expectedUpdatedAt,
	).Scan(&b.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// distinguish a stale token from a missing record
		var exists bool
		if checkErr := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM buyers WHERE id = $1)`, b.ID,
		).Scan(&exists); checkErr != nil {
			return nil, fmt.Errorf("checking buyer %s: %w", b.ID, checkErr)
		}
		if exists {
			return nil, entity.ErrConflict
		}
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating buyer %s: %w", b.ID, err)
	}
	return b, nil
}

func (r *BuyerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM buyers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting buyer %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// BulkCreate inserts the batch inside one transaction, so an import either
// lands completely or not at all.
func (r *BuyerRepository) BulkCreate(ctx context.Context, buyers []entity.Buyer) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning bulk insert: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	query := `
		INSERT INTO buyers (
			id, full_name, email, phone, city, property_type, bhk, purpose,
			budget_min, budget_max, timeline, source, status, notes, tags,
			owner_id, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing bulk insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range buyers {
		b := &buyers[i]
		b.ID = uuid.New().String()

		if _, err := stmt.ExecContext(ctx,
			b.ID,
			b.FullName,
			nullString(b.Email),
			b.Phone,
			b.City,
			b.PropertyType,
			nullString(b.BHK),
			b.Purpose,
			b.BudgetMin,
			b.BudgetMax,
			b.Timeline,
			b.Source,
			b.Status,
			nullString(b.Notes),
			pq.Array(b.Tags),
			b.OwnerID,
		); err != nil {
			return 0, fmt.Errorf("inserting imported buyer %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing bulk insert: %w", err)
	}
	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuyer(row rowScanner) (*entity.Buyer, error) {
	var b entity.Buyer
	var email, bhk, notes sql.NullString
	var tags pq.StringArray

	err := row.Scan(
		&b.ID,
		&b.FullName,
		&email,
		&b.Phone,
		&b.City,
		&b.PropertyType,
		&bhk,
		&b.Purpose,
		&b.BudgetMin,
		&b.BudgetMax,
		&b.Timeline,
		&b.Source,
		&b.Status,
		&notes,
		&tags,
		&b.OwnerID,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Email = email.String
	b.BHK = bhk.String
	b.Notes = notes.String
	b.Tags = tags
	return &b, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
