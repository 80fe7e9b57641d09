package mdast

import "strings"

// NodeType identifies the kind of node in the document tree,
// e.g. "text", "strong", "link".
type NodeType string

// Node types understood by the parser adapter and the renderers.
// Any other type is carried through the engine as an opaque payload.
const (
	TypeRoot          NodeType = "root"
	TypeParagraph     NodeType = "paragraph"
	TypeHeading       NodeType = "heading"
	TypeThematicBreak NodeType = "thematicBreak"
	TypeBlockquote    NodeType = "blockquote"
	TypeList          NodeType = "list"
	TypeListItem      NodeType = "listItem"
	TypeCode          NodeType = "code"
	TypeHTML          NodeType = "html"
	TypeTable         NodeType = "table"
	TypeTableRow      NodeType = "tableRow"
	TypeTableCell     NodeType = "tableCell"

	TypeText       NodeType = "text"
	TypeEmphasis   NodeType = "emphasis"
	TypeStrong     NodeType = "strong"
	TypeDelete     NodeType = "delete"
	TypeInlineCode NodeType = "inlineCode"
	TypeBreak      NodeType = "break"
	TypeLink       NodeType = "link"
	TypeImage      NodeType = "image"

	// TypeMark is emitted by the marker engine; it never comes out of the parser.
	TypeMark NodeType = "mark"
)

// Align is the column alignment of a table cell.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Node is a single node of the document tree. Only the fields relevant to
// its Type are populated.
type Node struct {
	Type     NodeType `json:"type"`
	Value    string   `json:"value,omitempty"`
	Children []*Node  `json:"children,omitempty"`

	// heading
	Depth int `json:"depth,omitempty"`
	// link, image
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
	Alt   string `json:"alt,omitempty"`
	// code
	Lang string `json:"lang,omitempty"`
	// list, listItem
	Ordered bool  `json:"ordered,omitempty"`
	Start   int   `json:"start,omitempty"`
	Spread  bool  `json:"spread,omitempty"`
	Checked *bool `json:"checked,omitempty"`
	// table, tableCell
	Align []Align `json:"align,omitempty"`

	Data *Data `json:"data,omitempty"`
}

// Data carries the rendering hints attached to a node. Serializers that do
// not know a node's Type render it with HName instead.
type Data struct {
	HName     string   `json:"hName,omitempty"`
	ClassName []string `json:"className,omitempty"`
	// Properties holds extra attributes. A nil value means "no value":
	// the key is present but nothing is rendered for it.
	Properties map[string]any `json:"hProperties,omitempty"`
	// Color is the resolved colour of a mark node, "" when none resolved.
	// It is not rendered as an attribute.
	Color string `json:"color,omitempty"`
}

// Text returns a new text node.
func Text(value string) *Node {
	return &Node{Type: TypeText, Value: value}
}

// New returns a new node of the given type with the given children.
func New(t NodeType, children ...*Node) *Node {
	return &Node{Type: t, Children: children}
}

// Root returns a new root node.
func Root(children ...*Node) *Node {
	return New(TypeRoot, children...)
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Type == TypeText
}

// IsParent reports whether n can hold children. Text-bearing leaves
// (text, inlineCode, code, html) cannot.
func (n *Node) IsParent() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case TypeText, TypeInlineCode, TypeCode, TypeHTML, TypeBreak, TypeThematicBreak, TypeImage:
		return false
	}
	return true
}

// TextContent returns the concatenated value of every text-bearing
// descendant of n, in document order.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Type {
	case TypeText, TypeInlineCode, TypeCode, TypeHTML:
		b.WriteString(n.Value)
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// Splice removes deleteCount children starting at index and inserts nodes
// in their place, in order. It mutates n.Children in place.
func (n *Node) Splice(index, deleteCount int, nodes ...*Node) {
	if index < 0 || index > len(n.Children) {
		return
	}
	if index+deleteCount > len(n.Children) {
		deleteCount = len(n.Children) - index
	}
	tail := append([]*Node(nil), n.Children[index+deleteCount:]...)
	n.Children = append(append(n.Children[:index], nodes...), tail...)
}

// Remove deletes the child at index.
func (n *Node) Remove(index int) {
	n.Splice(index, 1)
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Checked != nil {
		v := *n.Checked
		c.Checked = &v
	}
	if n.Align != nil {
		c.Align = append([]Align(nil), n.Align...)
	}
	if n.Data != nil {
		d := *n.Data
		d.ClassName = append([]string(nil), n.Data.ClassName...)
		if n.Data.Properties != nil {
			d.Properties = make(map[string]any, len(n.Data.Properties))
			for k, v := range n.Data.Properties {
				d.Properties[k] = v
			}
		}
		c.Data = &d
	}
	return &c
}
