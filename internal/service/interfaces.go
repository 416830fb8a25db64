package service

import (
	"context"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/importer"
)

// BudgetDocument is a fully loaded document: sections in display order and
// the recalculated flat line list.
type BudgetDocument struct {
	Document *domain.Document
	Sections []domain.Section
	Lines    []domain.Line
}

type DocumentService interface {
	Create(ctx context.Context, name string, meta domain.DocumentMeta) (*domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	Rename(ctx context.Context, id, name string) error
	UpdateMeta(ctx context.Context, id string, meta domain.DocumentMeta) error
	Delete(ctx context.Context, id string) error

	// Load returns the document with its lines passed through recalculation,
	// so callers always see derived fields populated.
	Load(ctx context.Context, id string) (*BudgetDocument, error)
	// Save recalculates, rewrites the document's line list and indexes every
	// leaf line as a cost record, all in one transaction.
	Save(ctx context.Context, doc *BudgetDocument) error
}

type SectionService interface {
	Create(ctx context.Context, documentID, name string) (*domain.Section, error)
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.Section, error)
	Update(ctx context.Context, s *domain.Section) error
	// Delete removes the section and cascades to its lines.
	Delete(ctx context.Context, id string) error
}

// LineService applies one mutation to a document's line list, recalculates
// and persists the result. Every method leaves the stored document fully
// consistent; there is no way to persist a half-updated tree.
type LineService interface {
	Add(ctx context.Context, documentID, sectionID string, parentID *string) (*domain.Line, error)
	SetField(ctx context.Context, documentID, lineID string, field engine.Field, value string) error
	Remove(ctx context.Context, documentID, lineID string) error
	Duplicate(ctx context.Context, documentID, lineID string) error
	MoveToSection(ctx context.Context, documentID, lineID, sectionID string) error
	Reparent(ctx context.Context, documentID, lineID string, parentID *string) error
	Paste(ctx context.Context, documentID, startLineID string, field engine.Field, text string) error
}

type LookupService interface {
	Search(ctx context.Context, text string) ([]domain.CostRecord, error)
	// ApplyToLine copies a record's description, category, unit and unit cost
	// onto the target line. Unit cost is skipped when the line has children,
	// since it is derived there.
	ApplyToLine(ctx context.Context, documentID, lineID string, rec domain.CostRecord) error
}

// ImportResult holds the outcome of a bulk line import.
type ImportResult struct {
	SectionsCreated int
	LinesImported   int
}

type ImportService interface {
	ImportFile(ctx context.Context, documentID, path string) (*ImportResult, error)
	ImportRows(ctx context.Context, documentID string, f *importer.ImportFile) (*ImportResult, error)
}
