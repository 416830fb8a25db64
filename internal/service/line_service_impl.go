package service

import (
	"context"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/repository"
)

type lineService struct {
	documents repository.DocumentRepo
	lines     repository.LineRepo
	uow       db.UnitOfWork
}

func NewLineService(documents repository.DocumentRepo, lines repository.LineRepo, uow db.UnitOfWork) LineService {
	return &lineService{documents: documents, lines: lines, uow: uow}
}

// apply runs one engine mutation against the document's current list,
// recalculates and persists the outcome transactionally. The mutation sees
// the list exactly as last saved; its output becomes authoritative only
// after the recalculation pass.
func (s *lineService) apply(ctx context.Context, documentID string, mutate func([]domain.Line) ([]domain.Line, error)) error {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	current, err := s.lines.ListByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	mutated, err := mutate(current)
	if err != nil {
		return err
	}
	recalced := engine.Recalculate(mutated)
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return persistLines(ctx, tx, doc, recalced)
	})
}

func (s *lineService) Add(ctx context.Context, documentID, sectionID string, parentID *string) (*domain.Line, error) {
	var added domain.Line
	err := s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		out, l, err := engine.Add(current, documentID, sectionID, parentID)
		if err != nil {
			return nil, err
		}
		added = l
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (s *lineService) SetField(ctx context.Context, documentID, lineID string, field engine.Field, value string) error {
	return s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		return engine.SetField(current, lineID, field, value)
	})
}

func (s *lineService) Remove(ctx context.Context, documentID, lineID string) error {
	return s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		return engine.Delete(current, lineID), nil
	})
}

func (s *lineService) Duplicate(ctx context.Context, documentID, lineID string) error {
	return s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		return engine.Duplicate(current, lineID)
	})
}

func (s *lineService) MoveToSection(ctx context.Context, documentID, lineID, sectionID string) error {
	return s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		return engine.MoveToSection(current, lineID, sectionID)
	})
}

func (s *lineService) Reparent(ctx context.Context, documentID, lineID string, parentID *string) error {
	return s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		return engine.Reparent(current, lineID, parentID)
	})
}

func (s *lineService) Paste(ctx context.Context, documentID, startLineID string, field engine.Field, text string) error {
	return s.apply(ctx, documentID, func(current []domain.Line) ([]domain.Line, error) {
		return engine.PasteColumn(current, startLineID, field, text)
	})
}
