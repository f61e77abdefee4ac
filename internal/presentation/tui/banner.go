package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _                      _   _ _     ", "#34d399"},
	{"| |_ _  _ _ _ _ _  ___| |_(_) |___ ", "#2dd4bf"},
	{"|  _| || | '_| ' \\(_-<|  _| | / -_)", "#22d3ee"},
	{" \\__|\\_,_|_| |_||_/__/ \\__|_|_\\___|", "#38bdf8"},
}

// PrintBanner writes the turnstile banner to w, coloured when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
