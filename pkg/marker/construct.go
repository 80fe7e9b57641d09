package marker

import (
	"reflect"

	"github.com/aretw0/flexmark/pkg/mdast"
)

// NewMark builds a mark node for classification (possibly "") around
// children. A nil or empty children list yields an empty mark.
func (c *Config) NewMark(classification string, children []*mdast.Node) *mdast.Node {
	color := c.Color(classification)

	info := MarkInfo{
		Classification: classification,
		Color:          color,
		Empty:          len(children) == 0,
	}

	data := &mdast.Data{
		HName:     c.tagName.ResolveTagName(color),
		ClassName: c.className.ResolveClassName(info),
		Color:     color,
	}
	if c.properties != nil {
		data.Properties = sanitizeProperties(c.properties.ResolveProperties(color))
	}

	if children == nil {
		children = []*mdast.Node{}
	}
	return &mdast.Node{
		Type:     mdast.TypeMark,
		Children: children,
		Data:     data,
	}
}

// sanitizeProperties copies props, turning empty strings and empty
// sequences into nil (no value) and dropping any attempt to set the class
// list, which NewMark owns.
func sanitizeProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if k == "className" || k == "class" {
			continue
		}
		if isEmptyValue(v) {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	return (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0
}
