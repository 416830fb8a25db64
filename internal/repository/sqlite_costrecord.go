package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
)

// costRecordColumns is the canonical SELECT column list for cost_records.
const costRecordColumns = `id, description, category, unit, unit_cost, currency,
		year, donor, sector, document_id, updated_at`

// SQLiteCostRecordRepo implements CostRecordRepo against SQLite.
type SQLiteCostRecordRepo struct {
	db db.DBTX
}

// NewSQLiteCostRecordRepo creates a new SQLiteCostRecordRepo.
func NewSQLiteCostRecordRepo(db db.DBTX) *SQLiteCostRecordRepo {
	return &SQLiteCostRecordRepo{db: db}
}

func (r *SQLiteCostRecordRepo) Upsert(ctx context.Context, rec *domain.CostRecord) error {
	query := `INSERT INTO cost_records (id, description, category, unit, unit_cost, currency,
		year, donor, sector, document_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id, description, category, unit) DO UPDATE SET
			unit_cost = excluded.unit_cost,
			currency = excluded.currency,
			year = excluded.year,
			donor = excluded.donor,
			sector = excluded.sector,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Description,
		rec.Category,
		rec.Unit,
		rec.UnitCost.String(),
		rec.Currency,
		rec.Year,
		rec.Donor,
		rec.Sector,
		rec.DocumentID,
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting cost record: %w", err)
	}
	return nil
}

func (r *SQLiteCostRecordRepo) Search(ctx context.Context, text string, limit int) ([]domain.CostRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + costRecordColumns + ` FROM cost_records
		WHERE description LIKE ? OR category LIKE ?
		ORDER BY description, category, unit
		LIMIT ?`
	pattern := "%" + text + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching cost records: %w", err)
	}
	defer rows.Close()

	var records []domain.CostRecord
	for rows.Next() {
		var rec domain.CostRecord
		var unitCost, updatedAtStr string
		err := rows.Scan(
			&rec.ID, &rec.Description, &rec.Category, &rec.Unit, &unitCost,
			&rec.Currency, &rec.Year, &rec.Donor, &rec.Sector, &rec.DocumentID,
			&updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning cost record row: %w", err)
		}
		rec.UnitCost = decimalOrZero(unitCost)
		rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost records: %w", err)
	}
	return records, nil
}

func (r *SQLiteCostRecordRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cost_records WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("deleting cost records: %w", err)
	}
	return nil
}
