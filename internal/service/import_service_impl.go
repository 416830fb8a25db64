package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/importer"
	"github.com/avandyck/costline/internal/repository"
)

type importService struct {
	documents repository.DocumentRepo
	sections  repository.SectionRepo
	lines     repository.LineRepo
	uow       db.UnitOfWork
}

func NewImportService(documents repository.DocumentRepo, sections repository.SectionRepo, lines repository.LineRepo, uow db.UnitOfWork) ImportService {
	return &importService{documents: documents, sections: sections, lines: lines, uow: uow}
}

func (s *importService) ImportFile(ctx context.Context, documentID, path string) (*ImportResult, error) {
	f, err := importer.LoadImportFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportRows(ctx, documentID, f)
}

func (s *importService) ImportRows(ctx context.Context, documentID string, f *importer.ImportFile) (*ImportResult, error) {
	if errs := importer.ValidateImportFile(f); len(errs) > 0 {
		return nil, fmt.Errorf("invalid import file: %s", joinErrors(errs))
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	existingSections, err := s.sections.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	existingLines, err := s.lines.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	res := importer.Convert(documentID, f, existingSections)
	merged := engine.Recalculate(append(existingLines, res.Lines...))

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sectionRepo := repository.NewSQLiteSectionRepo(tx)
		for i := range res.NewSections {
			if err := sectionRepo.Create(ctx, &res.NewSections[i]); err != nil {
				return err
			}
		}
		return persistLines(ctx, tx, doc, merged)
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{
		SectionsCreated: len(res.NewSections),
		LinesImported:   len(res.Lines),
	}, nil
}

func joinErrors(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
