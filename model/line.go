package model

import (
	"strings"
	"unicode/utf8"
)

// Visual holds optional rendering attributes reported by a decoder for a line
type Visual struct {
	// AvgCharSize is the average character size of the line in points
	AvgCharSize float64

	// Bold indicates the line is set in a bold face
	Bold bool
}

// Line is one raw line of text as delivered by a decoder
type Line struct {
	// Text is the raw line text
	Text string

	// Visual is nil when the decoder has no visual information
	Visual *Visual

	// Style is an optional source style hint such as "Heading 2" or "Title"
	Style string
}

// TextLine creates a line with no visual attributes
func TextLine(text string) Line {
	return Line{Text: text}
}

// SizedLine creates a line with a known average character size
func SizedLine(text string, size float64) Line {
	return Line{Text: text, Visual: &Visual{AvgCharSize: size}}
}

// Trimmed returns the line text without surrounding whitespace
func (l Line) Trimmed() string {
	return strings.TrimSpace(l.Text)
}

// IsBlank returns true if the line contains only whitespace
func (l Line) IsBlank() bool {
	return l.Trimmed() == ""
}

// HasVisual returns true if the line carries a usable character size
func (l Line) HasVisual() bool {
	return l.Visual != nil && l.Visual.AvgCharSize > 0
}

// TableGrid is a grid of cell strings supplied alongside a page's lines
type TableGrid struct {
	// Rows are the table rows; row 0 is the header
	Rows [][]string

	// Anchor is the number of page lines that precede the table.
	// Values past the end of the page place the table after the last line.
	Anchor int
}

// Page is one logical page or section of input
type Page struct {
	Lines  []Line
	Tables []TableGrid
}

// LinesFromText splits text into lines, one Line per newline-separated row
func LinesFromText(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, TextLine(r))
	}
	return lines
}

// MeanCharSize returns the rune-weighted mean character size over the lines
// that carry visual attributes, and false if none do.
func MeanCharSize(lines []Line) (float64, bool) {
	var total float64
	var weight int
	for _, l := range lines {
		if !l.HasVisual() {
			continue
		}
		n := utf8.RuneCountInString(l.Trimmed())
		if n == 0 {
			continue
		}
		total += l.Visual.AvgCharSize * float64(n)
		weight += n
	}
	if weight == 0 {
		return 0, false
	}
	return total / float64(weight), true
}
