package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// Table provides styled fixed-width table rendering. Cell widths are
// computed on display width, so wide runes line up correctly.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	header := ""
	for i, col := range t.columns {
		if i > 0 {
			header += " "
		}
		header += t.cell(col, col.Name)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Header.Render(header))
}

// WriteRow writes a data row to the table. Values beyond the column count
// are ignored; missing values render as empty cells.
func (t *Table) WriteRow(values ...string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row += t.cell(col, value)
	}
	_, _ = fmt.Fprintln(t.w, row)
}

// WriteDimRow writes a data row rendered in the dim style.
func (t *Table) WriteDimRow(values ...string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row += t.cell(col, value)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Dim.Render(row))
}

// cell truncates or pads value to the column's display width.
func (t *Table) cell(col TableColumn, value string) string {
	if col.Width > 1 && runewidth.StringWidth(value) > col.Width {
		value = runewidth.Truncate(value, col.Width, "…")
	}
	if col.Align == AlignRight {
		return runewidth.FillLeft(value, col.Width)
	}
	return runewidth.FillRight(value, col.Width)
}
