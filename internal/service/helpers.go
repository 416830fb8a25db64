package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/repository"
	"github.com/google/uuid"
)

// persistLines rewrites a document's line list inside the given transaction
// and refreshes the cost-record index from its leaves. The list must already
// be recalculated: the index stores leaf unit costs as-is, without
// recomputing anything.
func persistLines(ctx context.Context, tx db.DBTX, doc *domain.Document, lines []domain.Line) error {
	now := time.Now().UTC()
	for i := range lines {
		if lines[i].CreatedAt.IsZero() {
			lines[i].CreatedAt = now
		}
		lines[i].UpdatedAt = now
		lines[i].DocumentID = doc.ID
	}

	if err := repository.NewSQLiteLineRepo(tx).ReplaceForDocument(ctx, doc.ID, lines); err != nil {
		return err
	}

	ix := engine.BuildIndex(lines)
	records := repository.NewSQLiteCostRecordRepo(tx)
	for _, l := range lines {
		if ix.HasChildren(l.ID) || l.Description == "" {
			continue
		}
		rec := &domain.CostRecord{
			ID:          uuid.New().String(),
			Description: l.Description,
			Category:    l.Category,
			Unit:        l.Unit,
			UnitCost:    l.UnitCost,
			Currency:    doc.Meta.BaseCurrency,
			Year:        now.Year(),
			Donor:       doc.Meta.Donor,
			Sector:      doc.Meta.Sector,
			DocumentID:  doc.ID,
			UpdatedAt:   now,
		}
		if err := records.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("indexing leaf cost %q: %w", l.Description, err)
		}
	}
	return nil
}
