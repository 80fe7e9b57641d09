package marker

import (
	"github.com/aretw0/flexmark/pkg/mdast"
)

// normalizeEscapes rewrites every occurrence of the escape pattern to "==".
// It runs last, so the restored delimiters are never resolved as spans.
func (r *run) normalizeEscapes(node *mdast.Node, _ int, _ *mdast.Node) mdast.Result {
	out, err := r.cfg.escape.Replace(node.Value, Equals, -1, -1)
	if err != nil || out == node.Value {
		return mdast.Continue()
	}
	node.Value = out
	r.stats.Escaped++
	return mdast.Continue()
}
