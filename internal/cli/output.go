// Package cli holds the terminal helpers shared by the menu commands:
// colors, tables, prompts, error formatting and the $EDITOR round trip.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// colorEnabled is decided once from stdout and may be overridden by --no-color.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled reports whether color output is on.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
// It accepts readers as well as writers so prompts can check stdin.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func paint(code, s string) string {
	if !colorEnabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

func Green(s string) string  { return paint(ansiGreen, s) }
func Red(s string) string    { return paint(ansiRed, s) }
func Yellow(s string) string { return paint(ansiYellow, s) }
func Cyan(s string) string   { return paint(ansiCyan, s) }
func Gray(s string) string   { return paint(ansiGray, s) }
func Bold(s string) string   { return paint(ansiBold, s) }

// Align controls how a table column is padded.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table lays out rows in columns sized to their widest visible cell.
type Table struct {
	rows   [][]string
	widths []int
	limits map[int]int
	align  map[int]Align
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{limits: map[int]int{}, align: map[int]Align{}}
}

// SetMaxWidth caps the visible width of a column; longer cells are
// truncated with "...".
func (t *Table) SetMaxWidth(col, width int) {
	t.limits[col] = width
}

// SetAlign sets the alignment of a column. Prices read better right-aligned.
func (t *Table) SetAlign(col int, a Align) {
	t.align[col] = a
}

// Len returns the number of rows added so far.
func (t *Table) Len() int {
	return len(t.rows)
}

// AddRow appends a row. Rows may have different lengths.
func (t *Table) AddRow(cells ...string) {
	cells = append([]string(nil), cells...)
	for i, cell := range cells {
		if limit, ok := t.limits[i]; ok {
			cell = Truncate(cell, limit)
			cells[i] = cell
		}
		if i == len(t.widths) {
			t.widths = append(t.widths, 0)
		}
		if w := visibleWidth(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cells)
}

// Render writes every row to w, columns separated by two spaces. The last
// column of a left-aligned row is not padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", t.widths[i]-visibleWidth(cell))
			switch {
			case t.align[i] == AlignRight:
				b.WriteString(pad + cell)
			case i == len(row)-1:
				b.WriteString(cell)
			default:
				b.WriteString(cell + pad)
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// Truncate shortens s to at most width visible characters, ending in "..."
// when there is room for it. Escape sequences are kept and closed with a
// reset.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if visibleWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	if width < len(ellipsis) {
		out, _ := cut(s, width)
		return out
	}
	out, colored := cut(s, width-len(ellipsis))
	out += ellipsis
	if colored {
		out += ansiReset
	}
	return out
}

// cut keeps the first n visible runes of s along with any escape sequences
// met on the way. It reports whether s contained an escape sequence before
// the cut point.
func cut(s string, n int) (string, bool) {
	var b strings.Builder
	visible := 0
	escaped := false
	colored := false
	for _, r := range s {
		switch {
		case r == '\033':
			escaped, colored = true, true
			b.WriteRune(r)
		case escaped:
			b.WriteRune(r)
			escaped = r != 'm'
		case visible < n:
			b.WriteRune(r)
			visible++
		default:
			return b.String(), colored
		}
	}
	return b.String(), colored
}

// visibleWidth counts runes outside ANSI escape sequences.
func visibleWidth(s string) int {
	n := 0
	escaped := false
	for _, r := range s {
		switch {
		case r == '\033':
			escaped = true
		case escaped:
			escaped = r != 'm'
		default:
			n++
		}
	}
	return n
}
