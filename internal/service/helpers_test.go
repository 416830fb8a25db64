package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/repository"
	"github.com/avandyck/costline/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sql.DB
	docRepo  repository.DocumentRepo
	lineRepo repository.LineRepo
	secRepo  repository.SectionRepo
	recRepo  repository.CostRecordRepo

	docs     DocumentService
	sections SectionService
	lines    LineService
	lookup   LookupService
	imports  ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	env := &testEnv{
		db:       database,
		docRepo:  repository.NewSQLiteDocumentRepo(database),
		lineRepo: repository.NewSQLiteLineRepo(database),
		secRepo:  repository.NewSQLiteSectionRepo(database),
		recRepo:  repository.NewSQLiteCostRecordRepo(database),
	}
	env.docs = NewDocumentService(env.docRepo, env.secRepo, env.lineRepo, uow)
	env.sections = NewSectionService(env.secRepo)
	env.lines = NewLineService(env.docRepo, env.lineRepo, uow)
	env.lookup = NewLookupService(env.recRepo, env.lines, env.docs)
	env.imports = NewImportService(env.docRepo, env.secRepo, env.lineRepo, uow)
	return env
}

// newTestBudget creates a document with one section, ready for line work.
func newTestBudget(t *testing.T, env *testEnv) (*domain.Document, *domain.Section) {
	t.Helper()
	ctx := context.Background()
	doc, err := env.docs.Create(ctx, "Field Hospital 2026", domain.DefaultMeta())
	require.NoError(t, err)
	sec, err := env.sections.Create(ctx, doc.ID, "Staff")
	require.NoError(t, err)
	return doc, sec
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func findLine(lines []domain.Line, id string) *domain.Line {
	for i := range lines {
		if lines[i].ID == id {
			return &lines[i]
		}
	}
	return nil
}
