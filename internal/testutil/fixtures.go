package testutil

import (
	"time"

	"github.com/avandyck/costline/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document options

type DocumentOption func(*domain.Document)

func WithDonor(donor string) DocumentOption {
	return func(d *domain.Document) {
		d.Meta.Donor = donor
	}
}

func NewTestDocument(name string, opts ...DocumentOption) *domain.Document {
	now := time.Now().UTC()
	d := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Meta:      domain.DefaultMeta(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Section options

type SectionOption func(*domain.Section)

func WithCap(capType domain.CapType, capValue string) SectionOption {
	return func(s *domain.Section) {
		s.CapType = capType
		s.CapValue = decimal.RequireFromString(capValue)
	}
}

func WithSectionOrder(order int) SectionOption {
	return func(s *domain.Section) {
		s.OrderIndex = order
	}
}

func NewTestSection(documentID, name string, opts ...SectionOption) *domain.Section {
	now := time.Now().UTC()
	s := &domain.Section{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Name:       name,
		CapType:    domain.CapNone,
		CapValue:   decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Line options

type LineOption func(*domain.Line)

func WithParent(parentID string) LineOption {
	return func(l *domain.Line) {
		l.ParentID = &parentID
	}
}

func WithUnitCost(v string) LineOption {
	return func(l *domain.Line) {
		l.UnitCost = decimal.RequireFromString(v)
	}
}

func WithQuantity(v string) LineOption {
	return func(l *domain.Line) {
		l.Quantity = decimal.RequireFromString(v)
	}
}

func WithFrequency(v string) LineOption {
	return func(l *domain.Line) {
		l.Frequency = decimal.RequireFromString(v)
	}
}

func WithCategory(category string) LineOption {
	return func(l *domain.Line) {
		l.Category = category
	}
}

func WithUnitLabel(unit string) LineOption {
	return func(l *domain.Line) {
		l.Unit = unit
	}
}

func NewTestLine(documentID, sectionID, description string, opts ...LineOption) domain.Line {
	now := time.Now().UTC()
	l := domain.Line{
		ID:          uuid.New().String(),
		DocumentID:  documentID,
		SectionID:   sectionID,
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		Frequency:   decimal.NewFromInt(1),
		UnitCost:    decimal.Zero,
		Total:       decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}
