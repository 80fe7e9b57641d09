package marker

import (
	"strings"

	"github.com/aretw0/flexmark/pkg/mdast"
)

// resolveSingle replaces a text node containing complete spans with the
// text around them and one mark per span.
func (r *run) resolveSingle(node *mdast.Node, index int, parent *mdast.Node) mdast.Result {
	if parent == nil {
		return mdast.Continue()
	}

	matches := Full.FindAll(node.Value)
	if len(matches) == 0 {
		return mdast.Continue()
	}

	replacement := splitMatches(node.Value, matches, func(m Match) *mdast.Node {
		return r.mark(PassSingle, m.Classification, []*mdast.Node{
			mdast.Text(strings.TrimSpace(m.Content)),
		})
	})
	parent.Splice(index, 1, replacement...)

	return mdast.Continue()
}

// splitMatches cuts value at every match: literal text for the prefix,
// the gaps and the suffix, and build(m) in place of each match. Empty
// literal parts are omitted.
func splitMatches(value string, matches []Match, build func(Match) *mdast.Node) []*mdast.Node {
	nodes := make([]*mdast.Node, 0, 2*len(matches)+1)
	cursor := 0
	for _, m := range matches {
		if m.Start > cursor {
			nodes = append(nodes, mdast.Text(value[cursor:m.Start]))
		}
		nodes = append(nodes, build(m))
		cursor = m.End
	}
	if cursor < len(value) {
		nodes = append(nodes, mdast.Text(value[cursor:]))
	}
	return nodes
}
