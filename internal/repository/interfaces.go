package repository

import (
	"context"
	"errors"

	"github.com/avandyck/costline/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	Update(ctx context.Context, d *domain.Document) error
	Delete(ctx context.Context, id string) error
}

type SectionRepo interface {
	Create(ctx context.Context, s *domain.Section) error
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.Section, error)
	Update(ctx context.Context, s *domain.Section) error
	Delete(ctx context.Context, id string) error
}

type LineRepo interface {
	ListByDocument(ctx context.Context, documentID string) ([]domain.Line, error)
	// ReplaceForDocument rewrites the document's entire flat line list in
	// slice order. The list is the single source of truth, so saves always
	// replace rather than merge.
	ReplaceForDocument(ctx context.Context, documentID string, lines []domain.Line) error
}

type CostRecordRepo interface {
	// Upsert inserts or refreshes a record keyed by
	// (document, description, category, unit).
	Upsert(ctx context.Context, r *domain.CostRecord) error
	Search(ctx context.Context, text string, limit int) ([]domain.CostRecord, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}
