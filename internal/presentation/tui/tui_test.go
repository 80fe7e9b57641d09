package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/flexmark/pkg/marker"
	"github.com/aretw0/flexmark/pkg/render/term"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "1.2.3\n")

	out := buf.String()
	assert.Contains(t, out, bannerLines[0])
	assert.Contains(t, out, "v1.2.3\n")
}

func TestPrintDictionary(t *testing.T) {
	var buf bytes.Buffer
	dict := marker.Dictionary{"r": "red", "b": "brother"}
	PrintDictionary(&buf, termenv.Ascii, dict, term.DefaultPalette())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"b  =b=text==  brother",
		"r  =r=text==  red",
	}, trimAll(lines))
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}
