package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/flexmark/pkg/marker"
	"github.com/aretw0/flexmark/pkg/render/term"
)

// PrintDictionary lists every classification letter with its colour name
// and a swatch in that colour.
func PrintDictionary(w io.Writer, p termenv.Profile, dict marker.Dictionary, palette term.Palette) {
	for _, letter := range dict.Letters() {
		name := dict[letter]
		swatch := p.String("  ").Background(p.Color(palette.Hex(name)))
		fmt.Fprintf(w, "%s %s  =%s=text==  %s\n", swatch, letter, letter, name)
	}
}
