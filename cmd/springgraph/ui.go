package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Output colours
var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// table prints an aligned two-column key/value table.
func table(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		subtle.Fprintf(w, "  %-*s", width, r[0])
		fmt.Fprintf(w, "  %s\n", r[1])
	}
}

// rule prints a heading followed by a line.
func rule(w io.Writer, title string) {
	brand.Fprintln(w, title)
	subtle.Fprintln(w, strings.Repeat("─", len([]rune(title))))
}
