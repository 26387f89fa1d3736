package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// padRight pads value with spaces to width display cells.
func padRight(value string, width int) string {
	return runewidth.FillRight(value, width)
}

// truncate shortens value to at most width display cells.
func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// table lays out rows in columns sized by display width.
type table struct {
	header []string
	rows   [][]string
	max    int // cell width cap, 0 for none
}

func (t *table) add(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) widths() []int {
	w := make([]int, len(t.header))
	measure := func(cells []string) {
		for i, c := range cells {
			if i >= len(w) {
				break
			}
			if n := runewidth.StringWidth(t.cell(c)); n > w[i] {
				w[i] = n
			}
		}
	}
	measure(t.header)
	for _, r := range t.rows {
		measure(r)
	}
	return w
}

func (t *table) cell(c string) string {
	if t.max > 0 {
		return truncate(c, t.max)
	}
	return c
}

func (t *table) write(out io.Writer) {
	w := t.widths()
	line := func(cells []string, header bool) {
		var sb strings.Builder
		for i := range w {
			c := ""
			if i < len(cells) {
				c = t.cell(cells[i])
			}
			padded := c
			if i < len(w)-1 {
				padded = padRight(c, w[i]) + "  "
			}
			if header {
				// Style only the text so the padding stays plain.
				padded = styled(headerStyle, c) + padded[len(c):]
			}
			sb.WriteString(padded)
		}
		io.WriteString(out, strings.TrimRight(sb.String(), " ")+"\n")
	}
	line(t.header, true)
	for _, r := range t.rows {
		line(r, false)
	}
}
