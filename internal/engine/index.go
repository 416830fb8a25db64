// Package engine implements the budget calculation core: the tree index over
// the flat line list, the bottom-up recalculation pass, the mutation
// operations, section aggregation and the text filter. Every function here is
// pure; callers own persistence and presentation.
package engine

import "github.com/avandyck/costline/internal/domain"

// Index resolves the parent/child structure of a flat line list. A line whose
// ParentID is missing, self-referential, dangling, or part of a reference
// cycle is treated as a root; every consumer of the hierarchy goes through
// this single resolution so the orphan policy cannot diverge.
type Index struct {
	pos      map[string]int      // line id -> index in source list
	parent   map[string]string   // line id -> resolved parent id (absent = root)
	children map[string][]string // parent id -> child ids in list order
	roots    []string            // root ids in list order
}

// BuildIndex constructs an Index in O(n). The source slice is not retained.
func BuildIndex(lines []domain.Line) *Index {
	ix := &Index{
		pos:      make(map[string]int, len(lines)),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
	for i, l := range lines {
		if _, dup := ix.pos[l.ID]; dup {
			continue // first occurrence wins
		}
		ix.pos[l.ID] = i
	}

	// First pass: resolve references that point at an existing, distinct line.
	candidate := make(map[string]string, len(lines))
	for _, l := range lines {
		if !l.HasParent() || *l.ParentID == l.ID {
			continue
		}
		if _, ok := ix.pos[*l.ParentID]; ok {
			candidate[l.ID] = *l.ParentID
		}
	}

	// Second pass: break reference cycles. Members of a cycle lose their
	// parent reference and become roots; lines hanging below a broken cycle
	// keep theirs, since their chain now terminates at a root.
	const (
		anchors = 1
		inCycle = 2
	)
	status := make(map[string]int, len(lines))
	resolve := func(id string) {
		if _, done := status[id]; done {
			return
		}
		var path []string
		onPath := make(map[string]int)
		cur := id
		for {
			if _, done := status[cur]; done {
				break
			}
			if at, seen := onPath[cur]; seen {
				for _, m := range path[at:] {
					status[m] = inCycle
				}
				path = path[:at]
				break
			}
			onPath[cur] = len(path)
			path = append(path, cur)
			p, ok := candidate[cur]
			if !ok {
				break
			}
			cur = p
		}
		// Everything left on the path reaches a root, possibly through a
		// freshly broken cycle member.
		for _, m := range path {
			if _, done := status[m]; !done {
				status[m] = anchors
			}
		}
	}
	for _, l := range lines {
		resolve(l.ID)
	}

	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		p, ok := candidate[l.ID]
		if ok && status[l.ID] == anchors {
			ix.parent[l.ID] = p
			ix.children[p] = append(ix.children[p], l.ID)
		} else {
			ix.roots = append(ix.roots, l.ID)
		}
	}
	return ix
}

// Roots returns root line ids in list order.
func (ix *Index) Roots() []string { return ix.roots }

// Children returns the ids of id's children in list order.
func (ix *Index) Children(id string) []string { return ix.children[id] }

// HasChildren reports whether id has at least one child.
func (ix *Index) HasChildren(id string) bool { return len(ix.children[id]) > 0 }

// Parent returns the resolved parent of id, or false for roots and unknown ids.
func (ix *Index) Parent(id string) (string, bool) {
	p, ok := ix.parent[id]
	return p, ok
}

// Contains reports whether id occurs in the indexed list.
func (ix *Index) Contains(id string) bool {
	_, ok := ix.pos[id]
	return ok
}

// Depth returns the 1-based nesting depth of id (roots are depth 1).
// Unknown ids report 0.
func (ix *Index) Depth(id string) int {
	if !ix.Contains(id) {
		return 0
	}
	depth := 1
	for {
		p, ok := ix.parent[id]
		if !ok {
			return depth
		}
		depth++
		id = p
	}
}

// Height returns the number of levels in the subtree rooted at id (a leaf has
// height 1). Unknown ids report 0.
func (ix *Index) Height(id string) int {
	if !ix.Contains(id) {
		return 0
	}
	max := 0
	for _, c := range ix.children[id] {
		if h := ix.Height(c); h > max {
			max = h
		}
	}
	return max + 1
}

// IsDescendant reports whether id sits strictly below ancestorID.
func (ix *Index) IsDescendant(id, ancestorID string) bool {
	for {
		p, ok := ix.parent[id]
		if !ok {
			return false
		}
		if p == ancestorID {
			return true
		}
		id = p
	}
}

// Subtree returns id followed by all its descendants in depth-first list
// order. Unknown ids yield nil.
func (ix *Index) Subtree(id string) []string {
	if !ix.Contains(id) {
		return nil
	}
	out := []string{id}
	for _, c := range ix.children[id] {
		out = append(out, ix.Subtree(c)...)
	}
	return out
}
