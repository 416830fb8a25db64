package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
)

// sectionColumns is the canonical SELECT column list for sections.
const sectionColumns = `id, document_id, name, collapsed, cap_type, cap_value,
		order_index, created_at, updated_at`

// SQLiteSectionRepo implements SectionRepo against SQLite.
type SQLiteSectionRepo struct {
	db db.DBTX
}

// NewSQLiteSectionRepo creates a new SQLiteSectionRepo.
func NewSQLiteSectionRepo(db db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: db}
}

func (r *SQLiteSectionRepo) Create(ctx context.Context, s *domain.Section) error {
	query := `INSERT INTO sections (id, document_id, name, collapsed, cap_type, cap_value,
		order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.DocumentID,
		s.Name,
		boolToInt(s.Collapsed),
		string(s.CapType),
		s.CapValue.String(),
		s.OrderIndex,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}
	return nil
}

func (r *SQLiteSectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSection(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("section: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}
	return s, nil
}

func (r *SQLiteSectionRepo) ListByDocument(ctx context.Context, documentID string) ([]domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE document_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		s, err := scanSection(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		sections = append(sections, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

func (r *SQLiteSectionRepo) Update(ctx context.Context, s *domain.Section) error {
	query := `UPDATE sections SET name = ?, collapsed = ?, cap_type = ?, cap_value = ?,
		order_index = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Name,
		boolToInt(s.Collapsed),
		string(s.CapType),
		s.CapValue.String(),
		s.OrderIndex,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	return nil
}

func (r *SQLiteSectionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	return nil
}

// scanSection scans one section via the given Scan function, shared between
// single-row and multi-row queries.
func scanSection(scan func(dest ...any) error) (*domain.Section, error) {
	var s domain.Section
	var collapsedInt int
	var capTypeStr, capValueStr, createdAtStr, updatedAtStr string

	err := scan(
		&s.ID, &s.DocumentID, &s.Name, &collapsedInt, &capTypeStr, &capValueStr,
		&s.OrderIndex, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	s.Collapsed = intToBool(collapsedInt)
	s.CapType = domain.CapType(capTypeStr)
	s.CapValue = decimalOrZero(capValueStr)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
