package config

import (
	"sort"
	"strings"

	"github.com/aretw0/flexmark/pkg/marker"
)

func expand(tmpl, color, fallback string) string {
	if color == "" {
		color = fallback
	}
	return strings.ReplaceAll(tmpl, ColorPlaceholder, color)
}

// tagTemplate resolves the tag name from a {color} template.
type tagTemplate struct {
	tmpl     string
	fallback string
}

func (t tagTemplate) ResolveTagName(color string) string {
	return expand(t.tmpl, color, t.fallback)
}

func (t tagTemplate) String() string {
	return "tmpl:" + t.tmpl + "|" + t.fallback
}

// classTemplate resolves the class list from {color} templates. Entries
// that expand to "" are dropped.
type classTemplate struct {
	tmpls    []string
	fallback string
}

func (c classTemplate) ResolveClassName(info marker.MarkInfo) []string {
	out := make([]string, 0, len(c.tmpls))
	for _, tmpl := range c.tmpls {
		if v := expand(tmpl, info.Color, c.fallback); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c classTemplate) String() string {
	return "tmpl:" + strings.Join(c.tmpls, ",") + "|" + c.fallback
}

// propertiesTemplate resolves attribute values from {color} templates.
type propertiesTemplate struct {
	props    map[string]string
	fallback string
}

func (p propertiesTemplate) ResolveProperties(color string) map[string]any {
	out := make(map[string]any, len(p.props))
	for k, tmpl := range p.props {
		out[k] = expand(tmpl, color, p.fallback)
	}
	return out
}

func (p propertiesTemplate) String() string {
	keys := make([]string, 0, len(p.props))
	for k := range p.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p.props[k]
	}
	return "tmpl:" + strings.Join(parts, ",") + "|" + p.fallback
}
