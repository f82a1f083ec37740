package model

import (
	"strings"
)

// BlockKind represents the structural role of a block
type BlockKind int

const (
	BlockBlank BlockKind = iota
	BlockHeading
	BlockListItem
	BlockParagraph
	BlockTable
	BlockPageBreak
)

func (k BlockKind) String() string {
	switch k {
	case BlockBlank:
		return "Blank"
	case BlockHeading:
		return "Heading"
	case BlockListItem:
		return "ListItem"
	case BlockParagraph:
		return "Paragraph"
	case BlockTable:
		return "Table"
	case BlockPageBreak:
		return "PageBreak"
	default:
		return "Unknown"
	}
}

// Heading levels emitted by the engine
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 3
)

// Block is one structural unit of an assembled document
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-3); zero for other kinds
	Level int

	// Text is the content of headings, list items and paragraphs
	Text string

	// Rows holds table rows, including the header separator row
	Rows [][]string
}

// ClampLevel forces a heading level into the supported range
func ClampLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

// Heading creates a heading block. Out-of-range levels are clamped.
func Heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: ClampLevel(level), Text: text}
}

// ListItem creates a list item block
func ListItem(text string) Block {
	return Block{Kind: BlockListItem, Text: text}
}

// Paragraph creates a prose paragraph block
func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

// Table creates a table block from already formatted rows
func Table(rows [][]string) Block {
	return Block{Kind: BlockTable, Rows: rows}
}

// Blank creates a blank separator block
func Blank() Block {
	return Block{Kind: BlockBlank}
}

// PageBreak creates a page boundary block
func PageBreak() Block {
	return Block{Kind: BlockPageBreak}
}

// IsBlank returns true for blank separators
func (b Block) IsBlank() bool {
	return b.Kind == BlockBlank
}

// Equal reports whether two blocks have the same kind and content
func (b Block) Equal(o Block) bool {
	if b.Kind != o.Kind || b.Level != o.Level || b.Text != o.Text {
		return false
	}
	if len(b.Rows) != len(o.Rows) {
		return false
	}
	for i := range b.Rows {
		if len(b.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range b.Rows[i] {
			if b.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}

// Markdown renders the block as Markdown without a trailing newline.
// Tables render one line per row.
func (b Block) Markdown() string {
	switch b.Kind {
	case BlockHeading:
		return strings.Repeat("#", b.Level) + " " + b.Text
	case BlockListItem:
		return "- " + b.Text
	case BlockParagraph:
		return b.Text
	case BlockTable:
		lines := make([]string, 0, len(b.Rows))
		for _, row := range b.Rows {
			lines = append(lines, TableRowMarkdown(row))
		}
		return strings.Join(lines, "\n")
	case BlockPageBreak:
		return "---"
	default:
		return ""
	}
}

// TableRowMarkdown renders one pipe-delimited table row
func TableRowMarkdown(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", "\\|")
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}
