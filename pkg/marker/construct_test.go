package marker

import (
	"fmt"
	"testing"

	"github.com/aretw0/flexmark/pkg/mdast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMark_ClassDerivation(t *testing.T) {
	cfg := MustConfig(Options{Dictionary: Dictionary{"b": ""}})

	tests := []struct {
		name           string
		classification string
		children       []*mdast.Node
		want           []string
	}{
		{"default", "", []*mdast.Node{mdast.Text("x")}, []string{"flexible-marker", "flexible-marker-default"}},
		{"coloured", "r", []*mdast.Node{mdast.Text("x")}, []string{"flexible-marker", "flexible-marker-red"}},
		{"empty default", "", nil, []string{"flexible-marker", "flexible-marker-default", "flexible-marker-empty"}},
		{"empty coloured", "x", nil, []string{"flexible-marker", "flexible-marker-gray", "flexible-marker-empty"}},
		{"letter without colour", "b", []*mdast.Node{mdast.Text("x")}, []string{"flexible-marker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := cfg.NewMark(tt.classification, tt.children)
			require.NotNil(t, node.Data)
			assert.Equal(t, mdast.TypeMark, node.Type)
			assert.Equal(t, "mark", node.Data.HName)
			assert.Equal(t, tt.want, node.Data.ClassName)
			assert.NotNil(t, node.Children)
			assert.Nil(t, node.Data.Properties)
		})
	}
}

func TestNewMark_CustomOptions(t *testing.T) {
	cfg := MustConfig(Options{
		Dictionary: Dictionary{"b": "brother"},
		TagName:    FixedTagName("span"),
		ClassName:  BaseClassName("custom-marker"),
		Properties: PropertiesFunc(func(color string) map[string]any {
			return map[string]any{"data-color": color}
		}),
	})

	node := cfg.NewMark("b", []*mdast.Node{mdast.Text("x")})
	assert.Equal(t, "span", node.Data.HName)
	assert.Equal(t, []string{"custom-marker", "custom-marker-brother"}, node.Data.ClassName)
	assert.Equal(t, map[string]any{"data-color": "brother"}, node.Data.Properties)
}

func TestNewMark_Selectors(t *testing.T) {
	cfg := MustConfig(Options{
		TagName: TagNameFunc(func(color string) string {
			if color == "" {
				return "yellow"
			}
			return color
		}),
		ClassName: ClassNameFunc(func(color string) []string {
			if color == "" {
				color = "yellow"
			}
			return []string{fmt.Sprintf("remark-marker-%s", color)}
		}),
	})

	node := cfg.NewMark("g", []*mdast.Node{mdast.Text("x")})
	assert.Equal(t, "green", node.Data.HName)
	assert.Equal(t, []string{"remark-marker-green"}, node.Data.ClassName)

	node = cfg.NewMark("", nil)
	assert.Equal(t, "yellow", node.Data.HName)
	assert.Equal(t, []string{"remark-marker-yellow"}, node.Data.ClassName)
}

func TestNewMark_SanitizesProperties(t *testing.T) {
	cfg := MustConfig(Options{
		Properties: PropertiesFunc(func(color string) map[string]any {
			return map[string]any{
				"data-color": color,
				"title":      "",
				"data-tags":  []string{},
				"data-list":  [0]int{},
				"className":  "injected",
				"class":      "injected",
			}
		}),
	})

	node := cfg.NewMark("r", nil)
	assert.Equal(t, map[string]any{
		"data-color": "red",
		"title":      nil,
		"data-tags":  nil,
		"data-list":  nil,
	}, node.Data.Properties)
	assert.Equal(t, []string{"flexible-marker", "flexible-marker-red", "flexible-marker-empty"}, node.Data.ClassName)
}
