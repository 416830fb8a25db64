package service

import (
	"context"
	"time"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/repository"
	"github.com/google/uuid"
)

type documentService struct {
	documents repository.DocumentRepo
	sections  repository.SectionRepo
	lines     repository.LineRepo
	uow       db.UnitOfWork
}

func NewDocumentService(
	documents repository.DocumentRepo,
	sections repository.SectionRepo,
	lines repository.LineRepo,
	uow db.UnitOfWork,
) DocumentService {
	return &documentService{documents: documents, sections: sections, lines: lines, uow: uow}
}

func (s *documentService) Create(ctx context.Context, name string, meta domain.DocumentMeta) (*domain.Document, error) {
	now := time.Now().UTC()
	if meta.BaseCurrency == "" {
		meta = domain.DefaultMeta()
	}
	d := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.documents.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context) ([]*domain.Document, error) {
	return s.documents.List(ctx)
}

func (s *documentService) Rename(ctx context.Context, id, name string) error {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Name = name
	d.UpdatedAt = time.Now().UTC()
	return s.documents.Update(ctx, d)
}

func (s *documentService) UpdateMeta(ctx context.Context, id string, meta domain.DocumentMeta) error {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Meta = meta
	d.UpdatedAt = time.Now().UTC()
	return s.documents.Update(ctx, d)
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCostRecordRepo(tx).DeleteByDocument(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteDocumentRepo(tx).Delete(ctx, id)
	})
}

func (s *documentService) Load(ctx context.Context, id string) (*BudgetDocument, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sections, err := s.sections.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BudgetDocument{
		Document: d,
		Sections: sections,
		Lines:    engine.Recalculate(lines),
	}, nil
}

func (s *documentService) Save(ctx context.Context, doc *BudgetDocument) error {
	recalced := engine.Recalculate(doc.Lines)
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return persistLines(ctx, tx, doc.Document, recalced)
	})
}
