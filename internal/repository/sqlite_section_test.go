package repository

import (
	"context"
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	doc := testutil.NewTestDocument("Budget")
	require.NoError(t, NewSQLiteDocumentRepo(db).Create(ctx, doc))
	repo := NewSQLiteSectionRepo(db)

	sec := testutil.NewTestSection(doc.ID, "Personnel", testutil.WithCap(domain.CapPercent, "40"))
	require.NoError(t, repo.Create(ctx, sec))

	fetched, err := repo.GetByID(ctx, sec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Personnel", fetched.Name)
	assert.Equal(t, domain.CapPercent, fetched.CapType)
	assert.True(t, fetched.CapValue.Equal(decimal.RequireFromString("40")))
	assert.False(t, fetched.Collapsed)
}

func TestSectionRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSectionRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSectionRepo_ListByDocumentOrdered(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	doc := testutil.NewTestDocument("Budget")
	require.NoError(t, NewSQLiteDocumentRepo(db).Create(ctx, doc))
	repo := NewSQLiteSectionRepo(db)

	second := testutil.NewTestSection(doc.ID, "Travel", testutil.WithSectionOrder(1))
	first := testutil.NewTestSection(doc.ID, "Personnel", testutil.WithSectionOrder(0))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	sections, err := repo.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Personnel", sections[0].Name)
	assert.Equal(t, "Travel", sections[1].Name)
}

func TestSectionRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	doc := testutil.NewTestDocument("Budget")
	require.NoError(t, NewSQLiteDocumentRepo(db).Create(ctx, doc))
	repo := NewSQLiteSectionRepo(db)

	sec := testutil.NewTestSection(doc.ID, "Personnel")
	require.NoError(t, repo.Create(ctx, sec))

	sec.Name = "Staff"
	sec.Collapsed = true
	sec.CapType = domain.CapFixed
	sec.CapValue = decimal.RequireFromString("25000")
	require.NoError(t, repo.Update(ctx, sec))

	fetched, err := repo.GetByID(ctx, sec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff", fetched.Name)
	assert.True(t, fetched.Collapsed)
	assert.Equal(t, domain.CapFixed, fetched.CapType)
}

func TestSectionRepo_DeleteCascadesToLines(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	doc := testutil.NewTestDocument("Budget")
	require.NoError(t, NewSQLiteDocumentRepo(db).Create(ctx, doc))
	sections := NewSQLiteSectionRepo(db)
	lines := NewSQLiteLineRepo(db)

	sec := testutil.NewTestSection(doc.ID, "Personnel")
	require.NoError(t, sections.Create(ctx, sec))
	require.NoError(t, lines.ReplaceForDocument(ctx, doc.ID, []domain.Line{
		testutil.NewTestLine(doc.ID, sec.ID, "Officer"),
	}))

	require.NoError(t, sections.Delete(ctx, sec.ID))

	remaining, err := lines.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
