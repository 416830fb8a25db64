package engine

import (
	"strings"

	"github.com/avandyck/costline/internal/domain"
)

// VisibleLines computes which lines a case-insensitive text filter leaves
// visible. A line is visible when its own description or category matches,
// when any descendant matches (so a matching parent shows its context), or
// when any ancestor matches (so a matching child keeps its chain legible).
// An empty filter leaves everything visible. Read-only: the list is never
// mutated.
func VisibleLines(lines []domain.Line, filter string) map[string]bool {
	visible := make(map[string]bool, len(lines))
	query := strings.ToLower(strings.TrimSpace(filter))
	if query == "" {
		for _, l := range lines {
			visible[l.ID] = true
		}
		return visible
	}

	self := make(map[string]bool, len(lines))
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l.Description), query) ||
			strings.Contains(strings.ToLower(l.Category), query) {
			self[l.ID] = true
		}
	}

	ix := BuildIndex(lines)

	// subtree[id]: id or any descendant matches
	subtree := make(map[string]bool, len(lines))
	var walk func(id string) bool
	walk = func(id string) bool {
		hit := self[id]
		for _, c := range ix.Children(id) {
			if walk(c) {
				hit = true
			}
		}
		subtree[id] = hit
		return hit
	}
	for _, r := range ix.Roots() {
		walk(r)
	}

	// top-down: an ancestor match surfaces the whole chain below it
	var mark func(id string, ancestorHit bool)
	mark = func(id string, ancestorHit bool) {
		visible[id] = ancestorHit || subtree[id]
		for _, c := range ix.Children(id) {
			mark(c, ancestorHit || self[id])
		}
	}
	for _, r := range ix.Roots() {
		mark(r, false)
	}
	return visible
}
