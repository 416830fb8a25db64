package engine

import (
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subtreeFixture() []domain.Line {
	return []domain.Line{
		testLine("root", "s1", "", "1", "12", "0"),
		testLine("mid", "s1", "root", "1", "1", "0"),
		testLine("leaf", "s1", "mid", "1", "1", "100"),
		testLine("other", "s1", "", "1", "1", "50"),
	}
}

func TestAdd_Defaults(t *testing.T) {
	out, added, err := Add(nil, "doc-1", "s1", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "s1", added.SectionID)
	assert.Nil(t, added.ParentID)
	assertDecimal(t, "1", added.Quantity)
	assertDecimal(t, "1", added.Frequency)
	assertDecimal(t, "0", added.UnitCost)
}

func TestAdd_UnderParent(t *testing.T) {
	lines := subtreeFixture()
	out, added, err := Add(lines, "doc-1", "s1", ptr("mid"))
	require.NoError(t, err)
	require.Len(t, out, 5)
	require.NotNil(t, added.ParentID)
	assert.Equal(t, "mid", *added.ParentID)
}

func TestAdd_UnderParentInheritsParentSection(t *testing.T) {
	lines := subtreeFixture()
	// Target section disagrees with the parent's; the parent's section wins.
	_, added, err := Add(lines, "doc-1", "s2", ptr("mid"))
	require.NoError(t, err)
	assert.Equal(t, "s1", added.SectionID)
}

func TestAdd_DepthLimit(t *testing.T) {
	lines := subtreeFixture()
	_, _, err := Add(lines, "doc-1", "s1", ptr("leaf")) // leaf is at depth 3
	assert.ErrorIs(t, err, ErrMaxDepth)

	_, _, err = Add(lines, "doc-1", "s1", ptr("ghost"))
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestSetField_Text(t *testing.T) {
	lines := subtreeFixture()
	out, err := SetField(lines, "leaf", FieldDescription, "Senior consultant")
	require.NoError(t, err)
	assert.Equal(t, "Senior consultant", lineByID(t, out, "leaf").Description)
	// input untouched
	assert.Empty(t, lineByID(t, lines, "leaf").Description)
}

func TestSetField_NumericParsing(t *testing.T) {
	lines := subtreeFixture()
	out, err := SetField(lines, "leaf", FieldUnitCost, "1.234,56")
	require.NoError(t, err)
	assertDecimal(t, "1234.56", lineByID(t, out, "leaf").UnitCost)

	out, err = SetField(lines, "leaf", FieldQuantity, "2+3")
	require.NoError(t, err)
	assertDecimal(t, "5", lineByID(t, out, "leaf").Quantity)
}

func TestSetField_InvalidNumberKeepsPriorValue(t *testing.T) {
	lines := subtreeFixture()
	_, err := SetField(lines, "leaf", FieldUnitCost, "abc")
	assert.ErrorIs(t, err, ErrNotANumber)
	assertDecimal(t, "100", lineByID(t, lines, "leaf").UnitCost)
}

func TestSetField_UnitCostLockedOnParent(t *testing.T) {
	lines := subtreeFixture()
	_, err := SetField(lines, "root", FieldUnitCost, "700")
	assert.ErrorIs(t, err, ErrUnitCostLocked)

	// quantity and frequency stay editable on parents
	out, err := SetField(lines, "root", FieldQuantity, "4")
	require.NoError(t, err)
	assertDecimal(t, "4", lineByID(t, out, "root").Quantity)
}

func TestDelete_CascadesToDescendants(t *testing.T) {
	lines := subtreeFixture()
	out := Delete(lines, "root")

	require.Len(t, out, 1)
	assert.Equal(t, "other", out[0].ID)
}

func TestDelete_LeafOnly(t *testing.T) {
	lines := subtreeFixture()
	out := Delete(lines, "leaf")

	require.Len(t, out, 3)
	for _, l := range out {
		assert.NotEqual(t, "leaf", l.ID)
	}
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	lines := subtreeFixture()
	out := Delete(lines, "ghost")
	assert.Len(t, out, len(lines))
}

func TestDuplicate_SubtreeShape(t *testing.T) {
	lines := subtreeFixture()
	out, err := Duplicate(lines, "root")
	require.NoError(t, err)
	require.Len(t, out, 7)

	// clones sit right after the last member of the original subtree ("leaf")
	assert.Equal(t, "root", out[0].ID)
	assert.Equal(t, "mid", out[1].ID)
	assert.Equal(t, "leaf", out[2].ID)
	assert.Equal(t, "other", out[6].ID)

	cloneRoot, cloneMid, cloneLeaf := out[3], out[4], out[5]
	ids := map[string]bool{}
	for _, l := range out {
		assert.False(t, ids[l.ID], "duplicate id %s", l.ID)
		ids[l.ID] = true
	}

	assert.Nil(t, cloneRoot.ParentID)
	require.NotNil(t, cloneMid.ParentID)
	assert.Equal(t, cloneRoot.ID, *cloneMid.ParentID)
	require.NotNil(t, cloneLeaf.ParentID)
	assert.Equal(t, cloneMid.ID, *cloneLeaf.ParentID)

	assertDecimal(t, "100", cloneLeaf.UnitCost)
	assertDecimal(t, "12", cloneRoot.Frequency)
}

func TestDuplicate_KeepsOriginalParentLink(t *testing.T) {
	lines := subtreeFixture()
	out, err := Duplicate(lines, "mid")
	require.NoError(t, err)
	require.Len(t, out, 6)

	// clone of "mid" stays attached to the original "root"
	cloneMid := out[3]
	require.NotNil(t, cloneMid.ParentID)
	assert.Equal(t, "root", *cloneMid.ParentID)
}

func TestMoveToSection_CascadesSectionClearsParent(t *testing.T) {
	lines := subtreeFixture()
	out, err := MoveToSection(lines, "mid", "s2")
	require.NoError(t, err)

	mid := lineByID(t, out, "mid")
	assert.Nil(t, mid.ParentID)
	assert.Equal(t, "s2", mid.SectionID)

	leaf := lineByID(t, out, "leaf")
	assert.Equal(t, "s2", leaf.SectionID)
	require.NotNil(t, leaf.ParentID)
	assert.Equal(t, "mid", *leaf.ParentID)

	assert.Equal(t, "s1", lineByID(t, out, "root").SectionID)
}

func TestReparent_CycleGuard(t *testing.T) {
	lines := subtreeFixture()
	_, err := Reparent(lines, "root", ptr("leaf"))
	assert.ErrorIs(t, err, ErrCycle)

	_, err = Reparent(lines, "root", ptr("root"))
	assert.ErrorIs(t, err, ErrCycle)
}

func TestReparent_DepthGuard(t *testing.T) {
	lines := subtreeFixture()
	// "mid" subtree is two levels tall; under "leaf"'s parent it would exceed 3
	_, err := Reparent(lines, "mid", ptr("leaf"))
	assert.ErrorIs(t, err, ErrCycle) // leaf is inside mid's subtree

	_, err = Reparent(lines, "other", ptr("leaf"))
	assert.ErrorIs(t, err, ErrMaxDepth)

	out, err := Reparent(lines, "other", ptr("root"))
	require.NoError(t, err)
	other := lineByID(t, out, "other")
	require.NotNil(t, other.ParentID)
	assert.Equal(t, "root", *other.ParentID)
}

func TestReparent_AcrossSectionsCarriesSubtree(t *testing.T) {
	lines := []domain.Line{
		testLine("anchor", "s1", "", "1", "1", "0"),
		testLine("mover", "s2", "", "1", "1", "0"),
		testLine("mover-kid", "s2", "mover", "1", "1", "40"),
	}

	out, err := Reparent(lines, "mover", ptr("anchor"))
	require.NoError(t, err)

	// The whole subtree follows the new parent's section.
	assert.Equal(t, "s1", lineByID(t, out, "mover").SectionID)
	assert.Equal(t, "s1", lineByID(t, out, "mover-kid").SectionID)
	require.NotNil(t, lineByID(t, out, "mover-kid").ParentID)
	assert.Equal(t, "mover", *lineByID(t, out, "mover-kid").ParentID)
}

func TestReparent_ToTopLevel(t *testing.T) {
	lines := subtreeFixture()
	out, err := Reparent(lines, "leaf", nil)
	require.NoError(t, err)
	assert.Nil(t, lineByID(t, out, "leaf").ParentID)
}

func TestPasteColumn_Numeric(t *testing.T) {
	lines := []domain.Line{
		testLine("a", "s1", "", "1", "1", "1"),
		testLine("b", "s1", "", "1", "1", "2"),
		testLine("c", "s1", "", "1", "1", "3"),
	}
	out, err := PasteColumn(lines, "a", FieldUnitCost, "100\t(ignored)\n1.234,56\nabc\n")
	require.NoError(t, err)

	assertDecimal(t, "100", lineByID(t, out, "a").UnitCost)
	assertDecimal(t, "1234.56", lineByID(t, out, "b").UnitCost)
	// unparsable row keeps the prior value
	assertDecimal(t, "3", lineByID(t, out, "c").UnitCost)
}

func TestPasteColumn_StopsAtEndOfList(t *testing.T) {
	lines := []domain.Line{
		testLine("a", "s1", "", "1", "1", "1"),
		testLine("b", "s1", "", "1", "1", "2"),
	}
	out, err := PasteColumn(lines, "b", FieldDescription, "first\nsecond\nthird")
	require.NoError(t, err)

	assert.Equal(t, "first", lineByID(t, out, "b").Description)
	assert.Empty(t, lineByID(t, out, "a").Description)
}

func TestPasteColumn_UnknownStart(t *testing.T) {
	_, err := PasteColumn(subtreeFixture(), "ghost", FieldNote, "x")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestPasteColumn_WindowsLineEndings(t *testing.T) {
	lines := []domain.Line{
		testLine("a", "s1", "", "1", "1", "0"),
		testLine("b", "s1", "", "1", "1", "0"),
	}
	out, err := PasteColumn(lines, "a", FieldUnit, "month\r\nday\r\n")
	require.NoError(t, err)
	assert.Equal(t, "month", lineByID(t, out, "a").Unit)
	assert.Equal(t, "day", lineByID(t, out, "b").Unit)
}

func ptr(s string) *string { return &s }
