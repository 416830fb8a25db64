package service

import (
	"context"
	"time"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sectionService struct {
	sections repository.SectionRepo
}

func NewSectionService(sections repository.SectionRepo) SectionService {
	return &sectionService{sections: sections}
}

func (s *sectionService) Create(ctx context.Context, documentID, name string) (*domain.Section, error) {
	existing, err := s.sections.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	order := 0
	for _, sec := range existing {
		if sec.OrderIndex >= order {
			order = sec.OrderIndex + 1
		}
	}

	now := time.Now().UTC()
	sec := &domain.Section{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Name:       name,
		CapType:    domain.CapNone,
		CapValue:   decimal.Zero,
		OrderIndex: order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.sections.Create(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *sectionService) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	return s.sections.GetByID(ctx, id)
}

func (s *sectionService) ListByDocument(ctx context.Context, documentID string) ([]domain.Section, error) {
	return s.sections.ListByDocument(ctx, documentID)
}

func (s *sectionService) Update(ctx context.Context, sec *domain.Section) error {
	sec.UpdatedAt = time.Now().UTC()
	return s.sections.Update(ctx, sec)
}

func (s *sectionService) Delete(ctx context.Context, id string) error {
	return s.sections.Delete(ctx, id)
}
