// Package html serializes an mdast tree to HTML.
//
// Block elements are written one per line and the children of container
// blocks (lists, list items, blockquotes, tables) are indented by two
// spaces per level. Nodes carrying rendering hints (Data.HName,
// Data.ClassName, Data.Properties) are written as that element, which is
// how mark nodes reach the output.
package html

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/aretw0/flexmark/pkg/mdast"
)

const indentUnit = "  "

// Render writes the HTML for root to w.
func Render(w io.Writer, root *mdast.Node) error {
	r := &renderer{}
	r.block(root, 0, false)
	_, err := w.Write(r.buf.Bytes())
	return err
}

// String returns the HTML for root.
func String(root *mdast.Node) string {
	var b bytes.Buffer
	_ = Render(&b, root)
	return b.String()
}

type renderer struct {
	buf bytes.Buffer
}

func (r *renderer) indent(depth int) {
	r.buf.WriteString(strings.Repeat(indentUnit, depth))
}

func (r *renderer) line(depth int, s string) {
	r.indent(depth)
	r.buf.WriteString(s)
	r.buf.WriteByte('\n')
}

// block writes n as a block at depth. tight is set for the children of a
// tight list item, whose paragraphs are written without <p>.
func (r *renderer) block(n *mdast.Node, depth int, tight bool) {
	switch n.Type {
	case mdast.TypeRoot:
		for _, c := range n.Children {
			r.block(c, depth, false)
		}

	case mdast.TypeParagraph:
		r.indent(depth)
		if !tight {
			r.buf.WriteString("<p>")
		}
		r.inlines(n.Children)
		if !tight {
			r.buf.WriteString("</p>")
		}
		r.buf.WriteByte('\n')

	case mdast.TypeHeading:
		depthTag := "h" + strconv.Itoa(clamp(n.Depth, 1, 6))
		r.indent(depth)
		r.open(n, depthTag, nil)
		r.inlines(n.Children)
		r.close(n, depthTag)
		r.buf.WriteByte('\n')

	case mdast.TypeThematicBreak:
		r.line(depth, "<hr>")

	case mdast.TypeBlockquote:
		r.container(n, "blockquote", nil, depth)

	case mdast.TypeList:
		r.list(n, depth)

	case mdast.TypeCode:
		r.indent(depth)
		r.buf.WriteString("<pre><code")
		if n.Lang != "" {
			r.buf.WriteString(` class="language-`)
			r.buf.Write(util.EscapeHTML([]byte(n.Lang)))
			r.buf.WriteByte('"')
		}
		r.buf.WriteByte('>')
		r.text(n.Value)
		if n.Value != "" {
			r.buf.WriteByte('\n')
		}
		r.buf.WriteString("</code></pre>\n")

	case mdast.TypeHTML:
		r.indent(depth)
		r.buf.WriteString(n.Value)
		r.buf.WriteByte('\n')

	case mdast.TypeTable:
		r.table(n, depth)

	default:
		// Phrasing content at block level (e.g. a mark produced from a
		// whole paragraph's text) and hinted nodes.
		r.indent(depth)
		r.inline(n)
		r.buf.WriteByte('\n')
	}
}

func (r *renderer) container(n *mdast.Node, tag string, attrs []attr, depth int) {
	r.indent(depth)
	r.open(n, tag, attrs)
	r.buf.WriteByte('\n')
	for _, c := range n.Children {
		r.block(c, depth+1, false)
	}
	r.indent(depth)
	r.close(n, tag)
	r.buf.WriteByte('\n')
}

func (r *renderer) list(n *mdast.Node, depth int) {
	tag := "ul"
	var attrs []attr
	if n.Ordered {
		tag = "ol"
		if n.Start != 0 && n.Start != 1 {
			attrs = append(attrs, attr{"start", strconv.Itoa(n.Start)})
		}
	}
	if hasTask(n) {
		attrs = append(attrs, attr{"class", "contains-task-list"})
	}

	r.indent(depth)
	r.open(n, tag, attrs)
	r.buf.WriteByte('\n')
	for _, item := range n.Children {
		r.listItem(item, depth+1, !n.Spread && !item.Spread)
	}
	r.indent(depth)
	r.close(n, tag)
	r.buf.WriteByte('\n')
}

func (r *renderer) listItem(n *mdast.Node, depth int, tight bool) {
	var attrs []attr
	if n.Checked != nil {
		attrs = append(attrs, attr{"class", "task-list-item"})
	}

	r.indent(depth)
	r.open(n, "li", attrs)
	r.checkbox(n)

	// A tight item holding a single paragraph stays on one line.
	if tight && len(n.Children) == 1 && n.Children[0].Type == mdast.TypeParagraph {
		r.inlines(n.Children[0].Children)
		r.close(n, "li")
		r.buf.WriteByte('\n')
		return
	}
	if len(n.Children) == 0 {
		r.close(n, "li")
		r.buf.WriteByte('\n')
		return
	}

	r.buf.WriteByte('\n')
	for _, c := range n.Children {
		r.block(c, depth+1, tight)
	}
	r.indent(depth)
	r.close(n, "li")
	r.buf.WriteByte('\n')
}

func (r *renderer) checkbox(n *mdast.Node) {
	if n.Checked == nil {
		return
	}
	r.buf.WriteString(`<input type="checkbox" disabled`)
	if *n.Checked {
		r.buf.WriteString(" checked")
	}
	r.buf.WriteString("> ")
}

func hasTask(list *mdast.Node) bool {
	for _, item := range list.Children {
		if item.Checked != nil {
			return true
		}
	}
	return false
}

func (r *renderer) table(n *mdast.Node, depth int) {
	r.indent(depth)
	r.open(n, "table", nil)
	r.buf.WriteByte('\n')

	for i, row := range n.Children {
		section, cell := "tbody", "td"
		if i == 0 {
			section, cell = "thead", "th"
		}
		if i <= 1 {
			r.line(depth+1, "<"+section+">")
		}

		r.line(depth+2, "<tr>")
		for j, c := range row.Children {
			var attrs []attr
			if j < len(n.Align) && n.Align[j] != mdast.AlignNone {
				attrs = append(attrs, attr{"align", string(n.Align[j])})
			}
			r.indent(depth + 3)
			r.open(c, cell, attrs)
			r.inlines(c.Children)
			r.close(c, cell)
			r.buf.WriteByte('\n')
		}
		r.line(depth+2, "</tr>")

		if i == 0 || i == len(n.Children)-1 {
			r.line(depth+1, "</"+section+">")
		}
	}

	r.indent(depth)
	r.close(n, "table")
	r.buf.WriteByte('\n')
}

func (r *renderer) inlines(nodes []*mdast.Node) {
	for _, n := range nodes {
		r.inline(n)
	}
}

func (r *renderer) inline(n *mdast.Node) {
	switch n.Type {
	case mdast.TypeText:
		r.text(n.Value)
		return
	case mdast.TypeHTML:
		r.buf.WriteString(n.Value)
		return
	case mdast.TypeBreak:
		r.buf.WriteString("<br>\n")
		return
	case mdast.TypeInlineCode:
		r.open(n, "code", nil)
		r.text(n.Value)
		r.close(n, "code")
		return
	case mdast.TypeImage:
		attrs := []attr{{"src", string(util.URLEscape([]byte(n.URL), false))}, {"alt", n.Alt}}
		if n.Title != "" {
			attrs = append(attrs, attr{"title", n.Title})
		}
		r.open(n, "img", attrs)
		return
	}

	tag := ""
	var attrs []attr
	switch n.Type {
	case mdast.TypeEmphasis:
		tag = "em"
	case mdast.TypeStrong:
		tag = "strong"
	case mdast.TypeDelete:
		tag = "del"
	case mdast.TypeLink:
		tag = "a"
		attrs = append(attrs, attr{"href", string(util.URLEscape([]byte(n.URL), false))})
		if n.Title != "" {
			attrs = append(attrs, attr{"title", n.Title})
		}
	}

	if tag == "" && (n.Data == nil || n.Data.HName == "") {
		// Unknown phrasing without a tag hint: children only.
		r.inlines(n.Children)
		return
	}

	r.open(n, tag, attrs)
	r.inlines(n.Children)
	r.close(n, tag)
}

func (r *renderer) text(s string) {
	r.buf.Write(util.EscapeHTML([]byte(s)))
}

type attr struct {
	name  string
	value string
}

// open writes the start tag of n. Data.HName replaces tag; Data.ClassName
// is written first as class, then Data.Properties in key order.
func (r *renderer) open(n *mdast.Node, tag string, attrs []attr) {
	if n.Data != nil && n.Data.HName != "" {
		tag = n.Data.HName
	}

	r.buf.WriteByte('<')
	r.buf.WriteString(tag)

	if n.Data != nil && len(n.Data.ClassName) > 0 {
		r.attr("class", strings.Join(n.Data.ClassName, " "))
	}
	for _, a := range attrs {
		r.attr(a.name, a.value)
	}
	if n.Data != nil {
		r.properties(n.Data.Properties)
	}

	r.buf.WriteByte('>')
}

func (r *renderer) close(n *mdast.Node, tag string) {
	if n.Data != nil && n.Data.HName != "" {
		tag = n.Data.HName
	}
	r.buf.WriteString("</")
	r.buf.WriteString(tag)
	r.buf.WriteByte('>')
}

func (r *renderer) attr(name, value string) {
	r.buf.WriteByte(' ')
	r.buf.WriteString(name)
	r.buf.WriteString(`="`)
	r.buf.Write(util.EscapeHTML([]byte(value)))
	r.buf.WriteByte('"')
}

func (r *renderer) properties(props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := props[k].(type) {
		case nil:
		case bool:
			if v {
				r.buf.WriteByte(' ')
				r.buf.WriteString(k)
			}
		case string:
			r.attr(k, v)
		case []string:
			r.attr(k, strings.Join(v, " "))
		case []any:
			parts := make([]string, len(v))
			for i, p := range v {
				parts[i] = fmt.Sprint(p)
			}
			r.attr(k, strings.Join(parts, " "))
		default:
			r.attr(k, fmt.Sprint(v))
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
