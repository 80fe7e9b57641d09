package term

import (
	"strconv"
	"strings"
)

// Palette maps colour names to hex values.
type Palette map[string]string

// FallbackColor is used for marks whose colour is unknown or unset.
const FallbackColor = "yellow"

var defaultPalette = Palette{
	"amber":    "#ffbf00",
	"blue":     "#1e90ff",
	"cyan":     "#00bcd4",
	"brown":    "#8b4513",
	"espresso": "#4b3621",
	"fuchsia":  "#ff00ff",
	"green":    "#2e8b57",
	"hotpink":  "#ff69b4",
	"indigo":   "#4b0082",
	"jade":     "#00a86b",
	"kiwi":     "#8ee53f",
	"lime":     "#32cd32",
	"magenta":  "#c71585",
	"navyblue": "#000080",
	"orange":   "#ffa500",
	"purple":   "#800080",
	"pink":     "#ffc0cb",
	"red":      "#dc143c",
	"silver":   "#c0c0c0",
	"teal":     "#008080",
	"umber":    "#635147",
	"violet":   "#ee82ee",
	"white":    "#ffffff",
	"gray":     "#808080",
	"yellow":   "#ffd700",
	"black":    "#000000",
}

// DefaultPalette returns a copy of the built-in palette, which covers
// every colour of the default dictionary.
func DefaultPalette() Palette {
	out := make(Palette, len(defaultPalette))
	for k, v := range defaultPalette {
		out[k] = v
	}
	return out
}

// Hex returns the hex value for name, falling back to FallbackColor.
// A name that is itself a hex value ("#rrggbb") is returned as is.
func (p Palette) Hex(name string) string {
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		return name
	}
	if hex, ok := p[strings.ToLower(name)]; ok {
		return hex
	}
	if hex, ok := p[FallbackColor]; ok {
		return hex
	}
	return defaultPalette[FallbackColor]
}

// isDark reports whether a "#rrggbb" colour needs light text on top.
func isDark(hex string) bool {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return false
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	return 0.299*r+0.587*g+0.114*b < 128
}
