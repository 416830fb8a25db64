package repository

import (
	"context"
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLineRepo(t *testing.T) (*SQLiteLineRepo, *domain.Document, *domain.Section) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	doc := testutil.NewTestDocument("Budget")
	require.NoError(t, NewSQLiteDocumentRepo(db).Create(ctx, doc))
	sec := testutil.NewTestSection(doc.ID, "Personnel")
	require.NoError(t, NewSQLiteSectionRepo(db).Create(ctx, sec))

	return NewSQLiteLineRepo(db), doc, sec
}

func TestLineRepo_RoundTripPreservesOrderAndValues(t *testing.T) {
	repo, doc, sec := setupLineRepo(t)
	ctx := context.Background()

	parent := testutil.NewTestLine(doc.ID, sec.ID, "Team", testutil.WithFrequency("12"))
	child := testutil.NewTestLine(doc.ID, sec.ID, "Officer",
		testutil.WithParent(parent.ID), testutil.WithUnitCost("1250.75"),
		testutil.WithUnitLabel("month"))
	other := testutil.NewTestLine(doc.ID, sec.ID, "Driver", testutil.WithUnitCost("400"))

	require.NoError(t, repo.ReplaceForDocument(ctx, doc.ID, []domain.Line{parent, child, other}))

	loaded, err := repo.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, parent.ID, loaded[0].ID)
	assert.Equal(t, child.ID, loaded[1].ID)
	assert.Equal(t, other.ID, loaded[2].ID)

	require.NotNil(t, loaded[1].ParentID)
	assert.Equal(t, parent.ID, *loaded[1].ParentID)
	assert.Nil(t, loaded[0].ParentID)

	assert.True(t, loaded[1].UnitCost.Equal(child.UnitCost))
	assert.True(t, loaded[0].Frequency.Equal(parent.Frequency))
	assert.Equal(t, "month", loaded[1].Unit)
}

func TestLineRepo_ReplaceOverwritesPreviousList(t *testing.T) {
	repo, doc, sec := setupLineRepo(t)
	ctx := context.Background()

	first := testutil.NewTestLine(doc.ID, sec.ID, "Old line")
	require.NoError(t, repo.ReplaceForDocument(ctx, doc.ID, []domain.Line{first}))

	second := testutil.NewTestLine(doc.ID, sec.ID, "New line")
	require.NoError(t, repo.ReplaceForDocument(ctx, doc.ID, []domain.Line{second}))

	loaded, err := repo.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "New line", loaded[0].Description)
}

func TestLineRepo_DanglingParentSurvivesSave(t *testing.T) {
	repo, doc, sec := setupLineRepo(t)
	ctx := context.Background()

	orphan := testutil.NewTestLine(doc.ID, sec.ID, "Orphan", testutil.WithParent("gone"))
	require.NoError(t, repo.ReplaceForDocument(ctx, doc.ID, []domain.Line{orphan}))

	loaded, err := repo.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.NotNil(t, loaded[0].ParentID)
	assert.Equal(t, "gone", *loaded[0].ParentID)
}

func TestLineRepo_EmptyReplaceClearsDocument(t *testing.T) {
	repo, doc, sec := setupLineRepo(t)
	ctx := context.Background()

	l := testutil.NewTestLine(doc.ID, sec.ID, "Something")
	require.NoError(t, repo.ReplaceForDocument(ctx, doc.ID, []domain.Line{l}))
	require.NoError(t, repo.ReplaceForDocument(ctx, doc.ID, nil))

	loaded, err := repo.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
