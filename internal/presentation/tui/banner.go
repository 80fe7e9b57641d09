package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  __ _                                _    ",
	" / _| | _____  ___ __ ___   __ _ _ __| | __",
	"| |_| |/ _ \\ \\/ / '_ ` _ \\ / _` | '__| |/ /",
	"|  _| |  __/>  <| | | | | | (_| | |  |   < ",
	"|_| |_|\\___/_/\\_\\_| |_| |_|\\__,_|_|  |_|\\_\\",
}

// Highlighter yellows fading to orange.
var bannerColors = []string{"#fde047", "#facc15", "#fbbf24", "#f59e0b", "#f97316"}

// PrintBanner writes the flexmark banner and version to w.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintf(w, "%s\n\n", p.String("  v"+strings.TrimSpace(version)).Faint())
}
