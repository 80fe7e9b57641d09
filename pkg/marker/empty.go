package marker

import (
	"strings"

	"github.com/aretw0/flexmark/pkg/mdast"
)

// resolveEmpty applies the empty-span policy to a text node. Only called
// for the remove and mark policies.
func (r *run) resolveEmpty(node *mdast.Node, index int, parent *mdast.Node) mdast.Result {
	if parent == nil {
		return mdast.Continue()
	}

	matches := Empty.FindAll(node.Value)
	if len(matches) == 0 {
		return mdast.Continue()
	}

	if r.cfg.emptyAction == EmptyRemove {
		return r.removeEmpty(node, index, parent, matches)
	}

	replacement := splitMatches(node.Value, matches, func(m Match) *mdast.Node {
		return r.mark(PassEmpty, m.Classification, nil)
	})
	parent.Splice(index, 1, replacement...)

	return mdast.Continue()
}

// removeEmpty strips every empty span from node. A node left holding only
// whitespace is dropped when it is the parent's only child; otherwise the
// whitespace stays so the spacing between siblings survives.
func (r *run) removeEmpty(node *mdast.Node, index int, parent *mdast.Node, matches []Match) mdast.Result {
	var b strings.Builder
	cursor := 0
	for _, m := range matches {
		b.WriteString(node.Value[cursor:m.Start])
		cursor = m.End
	}
	b.WriteString(node.Value[cursor:])

	r.stats.Removed += len(matches)
	node.Value = b.String()

	if strings.TrimSpace(node.Value) == "" && len(parent.Children) == 1 {
		parent.Remove(index)
		return mdast.SkipTo(index)
	}
	return mdast.Continue()
}
