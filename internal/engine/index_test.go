package engine

import (
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex_RootsAndChildren(t *testing.T) {
	lines := []domain.Line{
		testLine("a", "s1", "", "1", "1", "10"),
		testLine("b", "s1", "a", "1", "1", "20"),
		testLine("c", "s1", "a", "1", "1", "30"),
		testLine("d", "s2", "", "1", "1", "40"),
	}
	ix := BuildIndex(lines)

	assert.Equal(t, []string{"a", "d"}, ix.Roots())
	assert.Equal(t, []string{"b", "c"}, ix.Children("a"))
	assert.True(t, ix.HasChildren("a"))
	assert.False(t, ix.HasChildren("b"))

	p, ok := ix.Parent("b")
	require.True(t, ok)
	assert.Equal(t, "a", p)
	_, ok = ix.Parent("a")
	assert.False(t, ok)
}

func TestBuildIndex_DanglingParentBecomesRoot(t *testing.T) {
	lines := []domain.Line{
		testLine("a", "s1", "ghost", "1", "1", "10"),
		testLine("b", "s1", "a", "1", "1", "20"),
	}
	ix := BuildIndex(lines)

	assert.Equal(t, []string{"a"}, ix.Roots())
	assert.Equal(t, []string{"b"}, ix.Children("a"))
}

func TestBuildIndex_SelfReferenceBecomesRoot(t *testing.T) {
	lines := []domain.Line{testLine("a", "s1", "a", "1", "1", "10")}
	ix := BuildIndex(lines)
	assert.Equal(t, []string{"a"}, ix.Roots())
	assert.Empty(t, ix.Children("a"))
}

func TestBuildIndex_CycleMembersBecomeRoots(t *testing.T) {
	lines := []domain.Line{
		testLine("a", "s1", "b", "1", "1", "10"),
		testLine("b", "s1", "a", "1", "1", "20"),
		testLine("c", "s1", "a", "1", "1", "30"),
	}
	ix := BuildIndex(lines)

	// a and b reference each other: both promoted to roots, c still hangs off a.
	assert.Equal(t, []string{"a", "b"}, ix.Roots())
	assert.Equal(t, []string{"c"}, ix.Children("a"))
}

func TestIndex_DepthHeightDescendant(t *testing.T) {
	lines := []domain.Line{
		testLine("root", "s1", "", "1", "1", "0"),
		testLine("mid", "s1", "root", "1", "1", "0"),
		testLine("leaf", "s1", "mid", "1", "1", "5"),
	}
	ix := BuildIndex(lines)

	assert.Equal(t, 1, ix.Depth("root"))
	assert.Equal(t, 3, ix.Depth("leaf"))
	assert.Equal(t, 0, ix.Depth("missing"))

	assert.Equal(t, 3, ix.Height("root"))
	assert.Equal(t, 1, ix.Height("leaf"))

	assert.True(t, ix.IsDescendant("leaf", "root"))
	assert.True(t, ix.IsDescendant("mid", "root"))
	assert.False(t, ix.IsDescendant("root", "leaf"))
	assert.False(t, ix.IsDescendant("root", "root"))
}

func TestIndex_SubtreeOrder(t *testing.T) {
	lines := []domain.Line{
		testLine("r", "s1", "", "1", "1", "0"),
		testLine("x", "s1", "r", "1", "1", "0"),
		testLine("y", "s1", "x", "1", "1", "0"),
		testLine("z", "s1", "r", "1", "1", "0"),
	}
	ix := BuildIndex(lines)
	assert.Equal(t, []string{"r", "x", "y", "z"}, ix.Subtree("r"))
	assert.Nil(t, ix.Subtree("missing"))
}
