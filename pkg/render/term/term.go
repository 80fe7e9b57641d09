// Package term renders an mdast tree as styled terminal text.
package term

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/flexmark/pkg/mdast"
)

// Renderer writes documents with ANSI styling for a terminal profile.
// Mark nodes are drawn with their colour as background.
type Renderer struct {
	profile termenv.Profile
	palette Palette
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile sets the colour profile. termenv.Ascii disables styling.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = p
	}
}

// WithPalette adds or overrides colour name mappings.
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		for k, v := range p {
			r.palette[strings.ToLower(k)] = v
		}
	}
}

// New creates a Renderer for the profile detected on stdout unless
// WithProfile is given.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		profile: termenv.ColorProfile(),
		palette: DefaultPalette(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes root to w.
func (r *Renderer) Render(w io.Writer, root *mdast.Node) error {
	var buf bytes.Buffer
	for i, block := range root.Children {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(r.block(block))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// String returns the rendered root.
func (r *Renderer) String(root *mdast.Node) string {
	var b bytes.Buffer
	_ = r.Render(&b, root)
	return b.String()
}

// block renders n followed by a newline.
func (r *Renderer) block(n *mdast.Node) string {
	switch n.Type {
	case mdast.TypeParagraph:
		return r.inlines(n.Children, style{}) + "\n"

	case mdast.TypeHeading:
		prefix := strings.Repeat("#", n.Depth) + " "
		return r.inlines(append([]*mdast.Node{mdast.Text(prefix)}, n.Children...), style{bold: true, underline: true}) + "\n"

	case mdast.TypeThematicBreak:
		return r.paint(strings.Repeat("─", 40), style{faint: true}) + "\n"

	case mdast.TypeBlockquote:
		return prefixLines(r.blocks(n.Children), r.paint("│ ", style{faint: true}))

	case mdast.TypeList:
		return r.list(n)

	case mdast.TypeCode:
		return prefixLines(r.paint(n.Value, style{faint: true})+"\n", "    ")

	case mdast.TypeHTML:
		return r.paint(n.Value, style{faint: true}) + "\n"

	case mdast.TypeTable:
		return r.table(n)
	}

	if len(n.Children) > 0 && n.Children[0].IsParent() && !isPhrasing(n.Children[0]) {
		return r.blocks(n.Children)
	}
	return r.inlines([]*mdast.Node{n}, style{}) + "\n"
}

func (r *Renderer) blocks(nodes []*mdast.Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.block(n))
	}
	return b.String()
}

func (r *Renderer) list(n *mdast.Node) string {
	var b strings.Builder
	for i, item := range n.Children {
		bullet := "• "
		if n.Ordered {
			start := n.Start
			if start == 0 {
				start = 1
			}
			bullet = strconv.Itoa(start+i) + ". "
		}
		if item.Checked != nil {
			if *item.Checked {
				bullet += "[x] "
			} else {
				bullet += "[ ] "
			}
		}

		var body strings.Builder
		for j, c := range item.Children {
			if j > 0 && n.Spread {
				body.WriteByte('\n')
			}
			body.WriteString(r.block(c))
		}

		pad := strings.Repeat(" ", len([]rune(bullet)))
		lines := strings.Split(strings.TrimSuffix(body.String(), "\n"), "\n")
		for k, line := range lines {
			if k == 0 {
				b.WriteString(bullet)
			} else if line != "" {
				b.WriteString(pad)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *Renderer) table(n *mdast.Node) string {
	var b strings.Builder
	sep := r.paint(" │ ", style{faint: true})
	for i, row := range n.Children {
		st := style{}
		if i == 0 {
			st.bold = true
		}
		cells := make([]string, len(row.Children))
		for j, c := range row.Children {
			cells[j] = r.inlines(c.Children, st)
		}
		b.WriteString(strings.Join(cells, sep))
		b.WriteByte('\n')
	}
	return b.String()
}

// style is the accumulated inline styling of a text run.
type style struct {
	bold, italic, underline, crossout, faint bool
	bg, fg                                   string
}

func (r *Renderer) inlines(nodes []*mdast.Node, st style) string {
	var b strings.Builder
	for _, n := range nodes {
		r.inline(&b, n, st)
	}
	return b.String()
}

func (r *Renderer) inline(b *strings.Builder, n *mdast.Node, st style) {
	switch n.Type {
	case mdast.TypeText:
		b.WriteString(r.paint(n.Value, st))
		return
	case mdast.TypeBreak:
		b.WriteByte('\n')
		return
	case mdast.TypeInlineCode:
		st.faint = true
		b.WriteString(r.paint(n.Value, st))
		return
	case mdast.TypeHTML:
		b.WriteString(r.paint(n.Value, st))
		return
	case mdast.TypeImage:
		b.WriteString(r.paint("[image: "+n.Alt+"]", st))
		return
	case mdast.TypeStrong:
		st.bold = true
	case mdast.TypeEmphasis:
		st.italic = true
	case mdast.TypeDelete:
		st.crossout = true
	case mdast.TypeLink:
		st.underline = true
	case mdast.TypeMark:
		color := ""
		if n.Data != nil {
			color = n.Data.Color
		}
		st.bg = r.palette.Hex(color)
		st.fg = "#000000"
		if isDark(st.bg) {
			st.fg = "#ffffff"
		}
	}

	for _, c := range n.Children {
		r.inline(b, c, st)
	}
	if n.Type == mdast.TypeLink && n.URL != "" {
		b.WriteString(r.paint(" ("+n.URL+")", style{faint: true}))
	}
}

func (r *Renderer) paint(s string, st style) string {
	if s == "" {
		return ""
	}
	out := r.profile.String(s)
	if st.bg != "" {
		out = out.Background(r.profile.Color(st.bg))
	}
	if st.fg != "" {
		out = out.Foreground(r.profile.Color(st.fg))
	}
	if st.bold {
		out = out.Bold()
	}
	if st.italic {
		out = out.Italic()
	}
	if st.underline {
		out = out.Underline()
	}
	if st.crossout {
		out = out.CrossOut()
	}
	if st.faint {
		out = out.Faint()
	}
	return out.String()
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func isPhrasing(n *mdast.Node) bool {
	switch n.Type {
	case mdast.TypeText, mdast.TypeEmphasis, mdast.TypeStrong, mdast.TypeDelete,
		mdast.TypeInlineCode, mdast.TypeBreak, mdast.TypeLink, mdast.TypeImage, mdast.TypeMark:
		return true
	}
	return false
}
