package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the deckgen banner to w. Colors are dropped when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"      _           _                    ", "#818cf8"},
		{"   __| | ___  ___| | ____ _  ___ _ __  ", "#a78bfa"},
		{"  / _` |/ _ \\/ __| |/ / _` |/ _ \\ '_ \\ ", "#c084fc"},
		{" | (_| |  __/ (__|   < (_| |  __/ | | |", "#e879f9"},
		{"  \\__,_|\\___|\\___|_|\\_\\__, |\\___|_| |_|", "#f472b6"},
		{"                      |___/            ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  "+version).Faint())
	}
	fmt.Fprintln(w)
}
