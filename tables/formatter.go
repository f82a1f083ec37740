package tables

import (
	"regexp"
	"strings"

	"github.com/tsawler/docstruct/model"
)

// SeparatorCell is the cell text of the header separator row
const SeparatorCell = "---"

// Config holds formatter configuration
type Config struct {
	// SkipBlankRows when true, drops data rows whose cells are all empty.
	// The header row is always kept.
	// Default: false
	SkipBlankRows bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{}
}

var lineBreaks = regexp.MustCompile(`\s*[\r\n]+\s*`)

// Formatter converts cell grids into table blocks
type Formatter struct {
	config Config
}

// NewFormatter creates a formatter with default configuration
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(DefaultConfig())
}

// NewFormatterWithConfig creates a formatter with custom configuration
func NewFormatterWithConfig(config Config) *Formatter {
	return &Formatter{config: config}
}

// Format converts rows into a table block. Row 0 is the header; a row of
// separator cells with the header's cell count is inserted directly after
// it. Data rows are not validated against the header width: short and long
// rows pass through as given. ok is false when rows is empty.
func (f *Formatter) Format(rows [][]string) (block model.Block, ok bool) {
	if len(rows) == 0 {
		return model.Block{}, false
	}

	header := cleanRow(rows[0])
	out := make([][]string, 0, len(rows)+1)
	out = append(out, header, separator(len(header)))

	for _, row := range rows[1:] {
		cells := cleanRow(row)
		if f.config.SkipBlankRows && isBlankRow(cells) {
			continue
		}
		out = append(out, cells)
	}

	return model.Table(out), true
}

// CleanCell collapses embedded line breaks to single spaces and trims
// surrounding whitespace
func CleanCell(cell string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(cell, " "))
}

func cleanRow(row []string) []string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = CleanCell(c)
	}
	return cells
}

func separator(n int) []string {
	row := make([]string, n)
	for i := range row {
		row[i] = SeparatorCell
	}
	return row
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
