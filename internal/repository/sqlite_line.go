package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
)

// lineColumns is the canonical SELECT column list for lines.
const lineColumns = `id, document_id, section_id, parent_id, category, description,
		note, unit, quantity, frequency, unit_cost, total, selected, created_at, updated_at`

// SQLiteLineRepo implements LineRepo against SQLite. Lines are always read
// and written as a document's whole flat list; order_index mirrors the slice
// position so the list round-trips in the exact order the engine produced.
type SQLiteLineRepo struct {
	db db.DBTX
}

// NewSQLiteLineRepo creates a new SQLiteLineRepo.
func NewSQLiteLineRepo(db db.DBTX) *SQLiteLineRepo {
	return &SQLiteLineRepo{db: db}
}

func (r *SQLiteLineRepo) ListByDocument(ctx context.Context, documentID string) ([]domain.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM lines WHERE document_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lines: %w", err)
	}
	return lines, nil
}

func (r *SQLiteLineRepo) ReplaceForDocument(ctx context.Context, documentID string, lines []domain.Line) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lines WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("clearing lines: %w", err)
	}

	query := `INSERT INTO lines (id, document_id, section_id, parent_id, category, description,
		note, unit, quantity, frequency, unit_cost, total, selected, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, l := range lines {
		_, err := r.db.ExecContext(ctx, query,
			l.ID,
			documentID,
			l.SectionID,
			ptrToNullableStr(l.ParentID),
			l.Category,
			l.Description,
			l.Note,
			l.Unit,
			l.Quantity.String(),
			l.Frequency.String(),
			l.UnitCost.String(),
			l.Total.String(),
			boolToInt(l.Selected),
			i,
			l.CreatedAt.Format(time.RFC3339),
			l.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting line %s: %w", l.ID, err)
		}
	}
	return nil
}

func scanLine(rows *sql.Rows) (domain.Line, error) {
	var l domain.Line
	var parentID sql.NullString
	var quantity, frequency, unitCost, total string
	var selectedInt int
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&l.ID, &l.DocumentID, &l.SectionID, &parentID, &l.Category, &l.Description,
		&l.Note, &l.Unit, &quantity, &frequency, &unitCost, &total, &selectedInt,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return domain.Line{}, fmt.Errorf("scanning line row: %w", err)
	}

	l.ParentID = nullableStrToPtr(parentID)
	l.Quantity = decimalOrZero(quantity)
	l.Frequency = decimalOrZero(frequency)
	l.UnitCost = decimalOrZero(unitCost)
	l.Total = decimalOrZero(total)
	l.Selected = intToBool(selectedInt)

	var parseErr error
	l.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return domain.Line{}, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	l.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return domain.Line{}, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return l, nil
}
