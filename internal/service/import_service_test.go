package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/importer"
	"github.com/avandyck/costline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func importFixture() *importer.ImportFile {
	return &importer.ImportFile{Rows: []importer.RowImport{
		{Description: "Doctor salary", Category: "Staff", Unit: "month",
			Quantity: strp("2"), Frequency: strp("12"), UnitCost: strp("1.200,50")},
		{Description: "Ambulance", Category: "Transport", UnitCost: strp("45000")},
		{Description: "Stationery", UnitCost: strp("150")},
	}}
}

func TestImportService_CreatesSectionsOnDemand(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, _ := newTestBudget(t, env)

	res, err := env.imports.ImportRows(ctx, doc.ID, importFixture())
	require.NoError(t, err)

	// "Staff" already exists; "Transport" and "General" are created.
	assert.Equal(t, 2, res.SectionsCreated)
	assert.Equal(t, 3, res.LinesImported)

	sections, err := env.sections.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Staff", "Transport", "General"}, names)

	loaded, err := env.docs.Load(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 3)
	requireDecimal(t, "28812", findLineByDescription(loaded, "Doctor salary").Total)
}

func TestImportService_AppendsToExistingLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, sec := newTestBudget(t, env)

	existing, err := env.lines.Add(ctx, doc.ID, sec.ID, nil)
	require.NoError(t, err)

	_, err = env.imports.ImportRows(ctx, doc.ID, importFixture())
	require.NoError(t, err)

	loaded, err := env.docs.Load(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Lines, 4)
	assert.NotNil(t, findLine(loaded.Lines, existing.ID))
}

func TestImportService_RejectsInvalidAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, _ := newTestBudget(t, env)

	f := &importer.ImportFile{Rows: []importer.RowImport{
		{Description: "Broken", UnitCost: strp("abc")},
	}}
	_, err := env.imports.ImportRows(ctx, doc.ID, f)
	require.Error(t, err)

	loaded, err := env.docs.Load(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Lines)
}

func TestImportService_RollsBackOnWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc, _ := newTestBudget(t, env)

	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: boom}
	imports := NewImportService(env.docRepo, env.secRepo, env.lineRepo, failing)

	_, err := imports.ImportRows(ctx, doc.ID, importFixture())
	require.ErrorIs(t, err, boom)

	sections, err := env.sections.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, sections, 1) // only the pre-existing one

	loaded, err := env.docs.Load(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Lines)
}

func findLineByDescription(doc *BudgetDocument, description string) *domain.Line {
	for i := range doc.Lines {
		if doc.Lines[i].Description == description {
			return &doc.Lines[i]
		}
	}
	return nil
}
