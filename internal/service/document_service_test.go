package service

import (
	"context"
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/repository"
	"github.com/avandyck/costline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_CreateAppliesDefaultMeta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc, err := env.docs.Create(ctx, "Untitled", domain.DocumentMeta{})
	require.NoError(t, err)

	stored, err := env.docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMeta().BaseCurrency, stored.Meta.BaseCurrency)
}

func TestDocumentService_RenamePersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, _ := newTestBudget(t, env)

	require.NoError(t, env.docs.Rename(ctx, doc.ID, "Field Hospital 2027"))

	stored, err := env.docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Field Hospital 2027", stored.Name)
}

func TestDocumentService_LoadRecalculates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, sec := newTestBudget(t, env)

	// Stored totals are stale on purpose; Load must not trust them.
	stale := testutil.NewTestLine(doc.ID, sec.ID, "Nurse salary",
		testutil.WithQuantity("3"), testutil.WithFrequency("12"), testutil.WithUnitCost("500"))
	require.NoError(t, env.lineRepo.ReplaceForDocument(ctx, doc.ID, []domain.Line{stale}))

	loaded, err := env.docs.Load(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	requireDecimal(t, "18000", loaded.Lines[0].Total)
}

func TestDocumentService_SaveIndexesLeafCosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, sec := newTestBudget(t, env)

	parent := testutil.NewTestLine(doc.ID, sec.ID, "Medical team")
	child := testutil.NewTestLine(doc.ID, sec.ID, "Doctor salary",
		testutil.WithParent(parent.ID), testutil.WithUnitCost("1200"),
		testutil.WithCategory("Personnel"))

	require.NoError(t, env.docs.Save(ctx, &BudgetDocument{
		Document: doc,
		Lines:    []domain.Line{parent, child},
	}))

	recs, err := env.recRepo.Search(ctx, "Doctor", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	requireDecimal(t, "1200", recs[0].UnitCost)
	assert.Equal(t, "Personnel", recs[0].Category)

	// Parents are aggregates, not priced items; they stay out of the index.
	recs, err = env.recRepo.Search(ctx, "Medical team", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDocumentService_DeleteRemovesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, sec := newTestBudget(t, env)

	leaf := testutil.NewTestLine(doc.ID, sec.ID, "Tents", testutil.WithUnitCost("250"))
	require.NoError(t, env.docs.Save(ctx, &BudgetDocument{Document: doc, Lines: []domain.Line{leaf}}))

	require.NoError(t, env.docs.Delete(ctx, doc.ID))

	_, err := env.docs.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	recs, err := env.recRepo.Search(ctx, "Tents", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
