// Package goldmark converts documents parsed by goldmark into the mdast
// tree consumed by the marker engine and the renderers.
package goldmark

import (
	"bytes"
	"strings"

	gm "github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/aretw0/flexmark/pkg/mdast"
)

// Parser parses Markdown into an mdast tree.
type Parser struct {
	md         gm.Markdown
	extensions []gm.Extender
	gfm        bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithoutGFM disables the GitHub Flavored Markdown extensions (tables,
// strikethrough, autolinks, task lists).
func WithoutGFM() Option {
	return func(p *Parser) {
		p.gfm = false
	}
}

// WithExtensions adds goldmark extensions to the parser.
func WithExtensions(exts ...gm.Extender) Option {
	return func(p *Parser) {
		p.extensions = append(p.extensions, exts...)
	}
}

// NewParser creates a Parser. GFM is enabled unless WithoutGFM is given.
func NewParser(opts ...Option) *Parser {
	p := &Parser{gfm: true}
	for _, opt := range opts {
		opt(p)
	}

	exts := p.extensions
	if p.gfm {
		exts = append([]gm.Extender{extension.GFM}, exts...)
	}
	p.md = gm.New(gm.WithExtensions(exts...))
	return p
}

// Parse parses source and returns the mdast root.
func (p *Parser) Parse(source []byte) *mdast.Node {
	doc := p.md.Parser().Parse(text.NewReader(source))
	c := &converter{source: source}
	root := mdast.Root()
	root.Children = c.blocks(doc)
	return root
}

type converter struct {
	source []byte
}

func (c *converter) blocks(parent ast.Node) []*mdast.Node {
	var out []*mdast.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if node := c.block(n); node != nil {
			out = append(out, node)
			continue
		}
		// Unknown block kinds are unwrapped.
		if n.HasChildren() && n.FirstChild().Type() == ast.TypeInline {
			out = append(out, mdast.New(mdast.TypeParagraph, c.inlines(n)...))
		} else if n.HasChildren() {
			out = append(out, c.blocks(n)...)
		}
	}
	return out
}

func (c *converter) block(n ast.Node) *mdast.Node {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return mdast.New(mdast.TypeParagraph, c.inlines(n)...)

	case *ast.Heading:
		h := mdast.New(mdast.TypeHeading, c.inlines(n)...)
		h.Depth = n.Level
		return h

	case *ast.ThematicBreak:
		return mdast.New(mdast.TypeThematicBreak)

	case *ast.Blockquote:
		return mdast.New(mdast.TypeBlockquote, c.blocks(n)...)

	case *ast.List:
		return c.list(n)

	case *ast.FencedCodeBlock:
		code := &mdast.Node{Type: mdast.TypeCode, Value: c.lines(n)}
		if lang := n.Language(c.source); lang != nil {
			code.Lang = string(lang)
		}
		return code

	case *ast.CodeBlock:
		return &mdast.Node{Type: mdast.TypeCode, Value: c.lines(n)}

	case *ast.HTMLBlock:
		value := c.lines(n)
		if n.HasClosure() {
			value += "\n" + strings.TrimRight(string(n.ClosureLine.Value(c.source)), "\n")
		}
		return &mdast.Node{Type: mdast.TypeHTML, Value: value}

	case *east.Table:
		return c.table(n)
	}
	return nil
}

// lines joins a block's raw lines without the final newline.
func (c *converter) lines(n ast.Node) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c *converter) list(n *ast.List) *mdast.Node {
	list := mdast.New(mdast.TypeList)
	list.Ordered = n.IsOrdered()
	if list.Ordered {
		list.Start = n.Start
	}
	list.Spread = !n.IsTight

	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li := mdast.New(mdast.TypeListItem, c.blocks(item)...)
		li.Spread = !n.IsTight
		c.taskCheckbox(li)
		list.Children = append(list.Children, li)
	}
	return list
}

// taskCheckbox lifts a leading GFM task checkbox into ListItem.Checked.
func (c *converter) taskCheckbox(li *mdast.Node) {
	if len(li.Children) == 0 || li.Children[0].Type != mdast.TypeParagraph {
		return
	}
	para := li.Children[0]
	if len(para.Children) == 0 || para.Children[0].Type != typeCheckbox {
		return
	}

	checked := para.Children[0].Value == "x"
	li.Checked = &checked
	para.Remove(0)
	if len(para.Children) > 0 && para.Children[0].IsText() {
		para.Children[0].Value = strings.TrimLeft(para.Children[0].Value, " ")
	}
}

// typeCheckbox marks a task checkbox until taskCheckbox consumes it.
const typeCheckbox mdast.NodeType = "taskCheckbox"

func (c *converter) table(n *east.Table) *mdast.Node {
	table := mdast.New(mdast.TypeTable)
	table.Align = make([]mdast.Align, len(n.Alignments))
	for i, a := range n.Alignments {
		table.Align[i] = align(a)
	}

	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		tr := mdast.New(mdast.TypeTableRow)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tr.Children = append(tr.Children, mdast.New(mdast.TypeTableCell, c.inlines(cell)...))
		}
		table.Children = append(table.Children, tr)
	}
	return table
}

func align(a east.Alignment) mdast.Align {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignRight:
		return mdast.AlignRight
	default:
		return mdast.AlignNone
	}
}

// inlines converts the inline children of n. Adjacent text is merged so
// that a delimiter split by goldmark's tokenizer reads as one run.
func (c *converter) inlines(parent ast.Node) []*mdast.Node {
	var out []*mdast.Node
	appendText := func(value string) {
		if value == "" {
			return
		}
		if last := len(out) - 1; last >= 0 && out[last].IsText() {
			out[last].Value += value
			return
		}
		out = append(out, mdast.Text(value))
	}

	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			value := n.Segment.Value(c.source)
			if !n.IsRaw() {
				value = unescape(value)
			}
			appendText(string(value))
			if n.HardLineBreak() {
				out = append(out, mdast.New(mdast.TypeBreak))
			} else if n.SoftLineBreak() {
				appendText("\n")
			}

		case *ast.String:
			value := n.Value
			if !n.IsRaw() {
				value = unescape(value)
			}
			appendText(string(value))

		case *ast.Emphasis:
			typ := mdast.TypeEmphasis
			if n.Level >= 2 {
				typ = mdast.TypeStrong
			}
			out = append(out, mdast.New(typ, c.inlines(n)...))

		case *ast.CodeSpan:
			out = append(out, &mdast.Node{Type: mdast.TypeInlineCode, Value: c.rawText(n)})

		case *ast.Link:
			link := mdast.New(mdast.TypeLink, c.inlines(n)...)
			link.URL = string(n.Destination)
			link.Title = string(n.Title)
			out = append(out, link)

		case *ast.Image:
			out = append(out, &mdast.Node{
				Type:  mdast.TypeImage,
				URL:   string(n.Destination),
				Title: string(n.Title),
				Alt:   plain(c.inlines(n)),
			})

		case *ast.AutoLink:
			url := string(n.URL(c.source))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
				url = "mailto:" + url
			}
			link := mdast.New(mdast.TypeLink, mdast.Text(string(n.Label(c.source))))
			link.URL = url
			out = append(out, link)

		case *ast.RawHTML:
			var b bytes.Buffer
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				b.Write(seg.Value(c.source))
			}
			out = append(out, &mdast.Node{Type: mdast.TypeHTML, Value: b.String()})

		case *east.Strikethrough:
			out = append(out, mdast.New(mdast.TypeDelete, c.inlines(n)...))

		case *east.TaskCheckBox:
			value := ""
			if n.IsChecked {
				value = "x"
			}
			out = append(out, &mdast.Node{Type: typeCheckbox, Value: value})

		default:
			for _, child := range c.inlines(n) {
				if child.IsText() {
					appendText(child.Value)
					continue
				}
				out = append(out, child)
			}
		}
	}
	return out
}

// rawText joins the text segments of a code span verbatim, line endings
// read as spaces.
func (c *converter) rawText(n ast.Node) string {
	var b bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(c.source))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

// plain flattens nodes to their text content, for image alt text.
func plain(nodes []*mdast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.TextContent())
	}
	return b.String()
}
