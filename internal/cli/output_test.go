package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withColor runs fn with colors forced to enabled and restores the setting.
func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := ColorEnabled()
	SetColorEnabled(enabled)
	t.Cleanup(func() { SetColorEnabled(prev) })
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Skip("cannot create temp file")
	}
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(nil))
}

func TestColors(t *testing.T) {
	withColor(t, true)
	assert.Equal(t, "\033[32mok\033[0m", Green("ok"))
	assert.Equal(t, "\033[31mok\033[0m", Red("ok"))
	assert.Equal(t, "\033[33mok\033[0m", Yellow("ok"))
	assert.Equal(t, "\033[36mok\033[0m", Cyan("ok"))
	assert.Equal(t, "\033[90mok\033[0m", Gray("ok"))
	assert.Equal(t, "\033[1mok\033[0m", Bold("ok"))
	assert.Equal(t, "", Green(""))

	SetColorEnabled(false)
	assert.Equal(t, "ok", Green("ok"))
	assert.Equal(t, "ok", Bold("ok"))
}

func TestTableRender(t *testing.T) {
	tbl := NewTable()
	tbl.SetAlign(2, AlignRight)
	tbl.AddRow("01HX", "Classic Burger", "5.99")
	tbl.AddRow("01HY", "Fries", "12.50")

	var buf bytes.Buffer
	tbl.Render(&buf)

	want := "01HX  Classic Burger   5.99\n" +
		"01HY  Fries           12.50\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, tbl.Len())
}

func TestTableIgnoresColorWidth(t *testing.T) {
	withColor(t, true)

	tbl := NewTable()
	tbl.AddRow(Gray("a"), "x")
	tbl.AddRow("bbb", "y")

	var buf bytes.Buffer
	tbl.Render(&buf)
	assert.Equal(t, Gray("a")+"    x\nbbb  y\n", buf.String())
}

func TestTableMaxWidth(t *testing.T) {
	tbl := NewTable()
	tbl.SetMaxWidth(0, 8)
	tbl.AddRow("Bacon Cheeseburger", "5.99")

	var buf bytes.Buffer
	tbl.Render(&buf)
	assert.Equal(t, "Bacon...  5.99\n", buf.String())
}

func TestTableDoesNotMutateRow(t *testing.T) {
	row := []string{"Bacon Cheeseburger"}
	tbl := NewTable()
	tbl.SetMaxWidth(0, 5)
	tbl.AddRow(row...)
	assert.Equal(t, "Bacon Cheeseburger", row[0])
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Fries", 10, "Fries"},
		{"exact", "Fries", 5, "Fries"},
		{"cut", "Milkshake", 6, "Mil..."},
		{"narrow", "Milkshake", 2, "Mi"},
		{"zero", "Milkshake", 0, ""},
		{"unicode", "Crème brûlée", 8, "Crème..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestTruncateKeepsEscapes(t *testing.T) {
	withColor(t, true)
	got := Truncate(Green("Milkshake"), 6)
	assert.Equal(t, "\033[32mMil...\033[0m", got)
	assert.Equal(t, 6, visibleWidth(got))
}
