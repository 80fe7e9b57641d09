package marker

import (
	"github.com/aretw0/flexmark/pkg/mdast"
)

// resolveCross handles spans whose delimiters sit in different sibling
// text nodes, e.g. "==a **b** c==" where the strong node splits the text.
//
// The opening delimiter is the first Starting match in node; the closing
// one is the first Ending match in the nearest later text sibling. The
// parent's children are rebuilt as before ++ [mark] ++ after, the mark
// holding everything in between (non-text siblings included, untouched).
// The walk then revisits index since the rebuilt list may hold further
// opening delimiters.
func (r *run) resolveCross(node *mdast.Node, index int, parent *mdast.Node) mdast.Result {
	if parent == nil {
		return mdast.Continue()
	}

	open, ok := Starting.Find(node.Value)
	if !ok {
		return mdast.Continue()
	}

	closeIndex, closing, ok := findClosing(parent, index)
	if !ok {
		return mdast.Continue()
	}

	children := parent.Children
	before := append([]*mdast.Node(nil), children[:index]...)
	between := append([]*mdast.Node(nil), children[index+1:closeIndex]...)
	after := append([]*mdast.Node(nil), children[closeIndex+1:]...)

	value := node.Value
	if open.Start > 0 {
		before = append(before, mdast.Text(value[:open.Start]))
	}
	if len(value) > open.End {
		between = append([]*mdast.Node{mdast.Text(value[open.End:])}, between...)
	}

	closeValue := children[closeIndex].Value
	if closing.Start > 0 {
		between = append(between, mdast.Text(closeValue[:closing.Start]))
	}
	if len(closeValue) > closing.End {
		after = append([]*mdast.Node{mdast.Text(closeValue[closing.End:])}, after...)
	}

	mark := r.mark(PassCross, open.Classification, between)

	rebuilt := make([]*mdast.Node, 0, len(before)+1+len(after))
	rebuilt = append(rebuilt, before...)
	rebuilt = append(rebuilt, mark)
	rebuilt = append(rebuilt, after...)
	parent.Children = rebuilt

	return mdast.Revisit(index)
}

// findClosing returns the nearest text sibling after index that holds a
// closing delimiter. Only the parent's direct children are searched.
func findClosing(parent *mdast.Node, index int) (int, Match, bool) {
	for i := index + 1; i < len(parent.Children); i++ {
		sibling := parent.Children[i]
		if !sibling.IsText() {
			continue
		}
		if m, ok := Ending.Find(sibling.Value); ok {
			return i, m, true
		}
	}
	return -1, Match{}, false
}
