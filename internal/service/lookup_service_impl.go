package service

import (
	"context"
	"strings"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/repository"
)

const searchLimit = 30

type lookupService struct {
	records repository.CostRecordRepo
	lines   LineService
	docs    DocumentService
}

func NewLookupService(records repository.CostRecordRepo, lines LineService, docs DocumentService) LookupService {
	return &lookupService{records: records, lines: lines, docs: docs}
}

func (s *lookupService) Search(ctx context.Context, text string) ([]domain.CostRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return s.records.Search(ctx, text, searchLimit)
}

func (s *lookupService) ApplyToLine(ctx context.Context, documentID, lineID string, rec domain.CostRecord) error {
	loaded, err := s.docs.Load(ctx, documentID)
	if err != nil {
		return err
	}
	idx := engine.BuildIndex(loaded.Lines)
	if !idx.Contains(lineID) {
		return engine.ErrLineNotFound
	}

	fields := []struct {
		field engine.Field
		value string
	}{
		{engine.FieldDescription, rec.Description},
		{engine.FieldCategory, rec.Category},
		{engine.FieldUnit, rec.Unit},
	}
	// Parents derive unit cost from children; writing it there would be
	// rejected anyway.
	if !idx.HasChildren(lineID) {
		fields = append(fields, struct {
			field engine.Field
			value string
		}{engine.FieldUnitCost, rec.UnitCost.String()})
	}
	for _, f := range fields {
		if err := s.lines.SetField(ctx, documentID, lineID, f.field, f.value); err != nil {
			return err
		}
	}
	return nil
}
