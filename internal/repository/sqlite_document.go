package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
)

// documentColumns is the canonical SELECT column list for documents.
const documentColumns = `id, name, base_currency, usd_rate, eur_rate, donor, sector,
		created_at, updated_at`

// SQLiteDocumentRepo implements DocumentRepo against SQLite.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentRepo creates a new SQLiteDocumentRepo.
func NewSQLiteDocumentRepo(db db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: db}
}

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (id, name, base_currency, usd_rate, eur_rate, donor, sector,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Meta.BaseCurrency,
		d.Meta.USDRate.String(),
		d.Meta.EURRate.String(),
		d.Meta.Donor,
		d.Meta.Sector,
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanDocument(row)
}

func (r *SQLiteDocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := r.scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteDocumentRepo) Update(ctx context.Context, d *domain.Document) error {
	query := `UPDATE documents SET name = ?, base_currency = ?, usd_rate = ?, eur_rate = ?,
		donor = ?, sector = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		d.Name,
		d.Meta.BaseCurrency,
		d.Meta.USDRate.String(),
		d.Meta.EURRate.String(),
		d.Meta.Donor,
		d.Meta.Sector,
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) scanDocument(row *sql.Row) (*domain.Document, error) {
	var d domain.Document
	var usdRate, eurRate, createdAtStr, updatedAtStr string

	err := row.Scan(
		&d.ID, &d.Name, &d.Meta.BaseCurrency, &usdRate, &eurRate,
		&d.Meta.Donor, &d.Meta.Sector, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return r.populateDocument(&d, usdRate, eurRate, createdAtStr, updatedAtStr)
}

func (r *SQLiteDocumentRepo) scanDocumentRow(rows *sql.Rows) (*domain.Document, error) {
	var d domain.Document
	var usdRate, eurRate, createdAtStr, updatedAtStr string

	err := rows.Scan(
		&d.ID, &d.Name, &d.Meta.BaseCurrency, &usdRate, &eurRate,
		&d.Meta.Donor, &d.Meta.Sector, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning document row: %w", err)
	}
	return r.populateDocument(&d, usdRate, eurRate, createdAtStr, updatedAtStr)
}

func (r *SQLiteDocumentRepo) populateDocument(d *domain.Document, usdRate, eurRate, createdAtStr, updatedAtStr string) (*domain.Document, error) {
	d.Meta.USDRate = decimalOrZero(usdRate)
	d.Meta.EURRate = decimalOrZero(eurRate)

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return d, nil
}
