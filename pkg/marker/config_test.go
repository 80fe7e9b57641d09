package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultDictionary(), cfg.Dictionary())
	assert.Equal(t, EmptyMark, cfg.EmptyAction())
	assert.Empty(t, cfg.EscapePattern())
	assert.Equal(t, "red", cfg.Color("r"))
	assert.Equal(t, "gray", cfg.Color("x"))
	assert.Empty(t, cfg.Color(""))
}

func TestNewConfig_DictionaryMerge(t *testing.T) {
	cfg, err := NewConfig(Options{Dictionary: Dictionary{"b": "brother"}})
	require.NoError(t, err)

	assert.Equal(t, "brother", cfg.Color("b"))
	assert.Equal(t, "red", cfg.Color("r"), "other letters keep their default")
	assert.Equal(t, "blue", DefaultDictionary()["b"], "defaults are not mutated")
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"invalid escape pattern", Options{EscapePattern: "=("}, ErrInvalidEscapePattern},
		{"invalid empty action", Options{EmptyAction: "drop"}, ErrInvalidEmptyAction},
		{"uppercase key", Options{Dictionary: Dictionary{"B": "blue"}}, ErrInvalidClassification},
		{"long key", Options{Dictionary: Dictionary{"ab": "x"}}, ErrInvalidClassification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustConfig_Panics(t *testing.T) {
	assert.Panics(t, func() { MustConfig(Options{EmptyAction: "nope"}) })
}

func TestParseEmptyAction(t *testing.T) {
	for in, want := range map[string]EmptyAction{
		"":       EmptyMark,
		"keep":   EmptyKeep,
		"REMOVE": EmptyRemove,
		" mark ": EmptyMark,
	} {
		got, err := ParseEmptyAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestConfig_Fingerprint(t *testing.T) {
	a := MustConfig(Options{EscapePattern: "=:="})
	b := MustConfig(Options{EscapePattern: "=:="})
	c := MustConfig(Options{EscapePattern: "=!="})
	d := MustConfig(Options{EscapePattern: "=:=", EmptyAction: EmptyKeep})

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
	assert.Contains(t, a.Fingerprint(), "tag=fixed:mark")
}

func TestConfig_Fingerprint_FuncSelectors(t *testing.T) {
	tagFor := func(tag string) TagNameFunc {
		return func(string) string { return tag }
	}

	a := MustConfig(Options{TagName: tagFor("span")})
	b := MustConfig(Options{TagName: tagFor("mark")})
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint(), "closures over different values")
	assert.Equal(t, a.Fingerprint(), a.Fingerprint())

	classes := ClassNameFunc(func(color string) []string { return []string{color} })
	props := PropertiesFunc(func(color string) map[string]any { return map[string]any{"data-color": color} })
	c := MustConfig(Options{ClassName: classes})
	d := MustConfig(Options{ClassName: classes})
	assert.NotEqual(t, c.Fingerprint(), d.Fingerprint())
	assert.NotEqual(t, MustConfig(Options{Properties: props}).Fingerprint(), MustConfig(Options{Properties: props}).Fingerprint())

	plain := MustConfig(Options{})
	assert.NotContains(t, plain.Fingerprint(), "nonce")
}

func TestDictionary_String(t *testing.T) {
	d := Dictionary{"b": "blue", "a": "amber"}
	assert.Equal(t, "a=amber,b=blue", d.String())
}
