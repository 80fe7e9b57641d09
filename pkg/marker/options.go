package marker

import (
	"fmt"
	"strings"
)

// Defaults applied by NewConfig for every unset option.
const (
	DefaultTagName   = "mark"
	DefaultClassName = "flexible-marker"
)

// EmptyAction is the policy applied to spans with no content.
type EmptyAction string

const (
	// EmptyKeep leaves empty spans as literal text.
	EmptyKeep EmptyAction = "keep"
	// EmptyRemove strips empty spans from the text.
	EmptyRemove EmptyAction = "remove"
	// EmptyMark turns empty spans into mark nodes with no children.
	EmptyMark EmptyAction = "mark"
)

// ParseEmptyAction parses a policy name. The empty string yields EmptyMark.
func ParseEmptyAction(s string) (EmptyAction, error) {
	switch a := EmptyAction(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return EmptyMark, nil
	case EmptyKeep, EmptyRemove, EmptyMark:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q (expected keep, remove or mark)", ErrInvalidEmptyAction, s)
	}
}

// TagNameResolver selects the render tag name of a mark node from its
// resolved colour ("" when none resolved).
type TagNameResolver interface {
	ResolveTagName(color string) string
}

// FixedTagName always resolves to itself.
type FixedTagName string

// ResolveTagName implements TagNameResolver.
func (t FixedTagName) ResolveTagName(string) string { return string(t) }

// TagNameFunc computes the tag name from the colour.
type TagNameFunc func(color string) string

// ResolveTagName implements TagNameResolver.
func (f TagNameFunc) ResolveTagName(color string) string { return f(color) }

// MarkInfo describes the mark node a class list is being computed for.
type MarkInfo struct {
	Classification string
	Color          string
	Empty          bool
}

// ClassNameResolver computes the class list of a mark node.
type ClassNameResolver interface {
	ResolveClassName(info MarkInfo) []string
}

// BaseClassName derives the class list from a base class:
// base, base-default when no classification was given, base-<color> when
// a colour resolved and base-empty when the node has no children.
type BaseClassName string

// ResolveClassName implements ClassNameResolver.
func (b BaseClassName) ResolveClassName(info MarkInfo) []string {
	base := string(b)
	classes := []string{base}
	if info.Classification == "" {
		classes = append(classes, base+"-default")
	}
	if info.Color != "" {
		classes = append(classes, base+"-"+info.Color)
	}
	if info.Empty {
		classes = append(classes, base+"-empty")
	}
	return classes
}

// ClassNameFunc computes the class list from the colour alone. The result
// is used as is.
type ClassNameFunc func(color string) []string

// ResolveClassName implements ClassNameResolver.
func (f ClassNameFunc) ResolveClassName(info MarkInfo) []string { return f(info.Color) }

// PropertiesResolver computes extra attributes from the colour.
type PropertiesResolver interface {
	ResolveProperties(color string) map[string]any
}

// PropertiesFunc computes extra attributes from the colour.
type PropertiesFunc func(color string) map[string]any

// ResolveProperties implements PropertiesResolver.
func (f PropertiesFunc) ResolveProperties(color string) map[string]any { return f(color) }

// Options is the partial, user-facing configuration. Zero fields fall back
// to defaults in NewConfig.
type Options struct {
	// Dictionary entries override the default dictionary letter by letter.
	Dictionary Dictionary
	TagName    TagNameResolver
	ClassName  ClassNameResolver
	Properties PropertiesResolver
	// EscapePattern, when set, is rewritten to "==" in every text node
	// after span resolution. Matching is case-insensitive.
	EscapePattern string
	EmptyAction   EmptyAction
}
