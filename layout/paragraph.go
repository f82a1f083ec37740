package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/docstruct/model"
)

var (
	spaceBeforeMark = regexp.MustCompile(`\s+([，。；：])`)
	spaceAfterMark  = regexp.MustCompile(`([，。；：])\s+`)
)

// NormalizePunctuation removes whitespace before the closing marks ，。；：
// and collapses whitespace after them to a single space. No space is
// inserted where there was none.
func NormalizePunctuation(text string) string {
	text = spaceBeforeMark.ReplaceAllString(text, "$1")
	return spaceAfterMark.ReplaceAllString(text, "$1 ")
}

// ParagraphAccumulator folds consecutive prose fragments into paragraphs.
// It is a small state machine owned by a single assembly pass.
type ParagraphAccumulator struct {
	buffer []string
	inList bool
}

// NewParagraphAccumulator creates an empty accumulator
func NewParagraphAccumulator() *ParagraphAccumulator {
	return &ParagraphAccumulator{}
}

// Push feeds one classified line and returns the blocks it completes
func (a *ParagraphAccumulator) Push(c Classification) []model.Block {
	switch c.Kind {
	case model.BlockParagraph:
		var out []model.Block
		if a.inList {
			out = append(out, model.Blank())
			a.inList = false
		}
		if t := strings.TrimSpace(c.Text); t != "" {
			a.buffer = append(a.buffer, t)
		}
		return out

	case model.BlockListItem:
		var out []model.Block
		if !a.inList {
			out = a.Flush()
		}
		a.inList = true
		return append(out, model.ListItem(c.Text))

	case model.BlockHeading:
		out := a.Flush()
		a.inList = false
		return append(out, model.Heading(c.Level, c.Text), model.Blank())

	default:
		out := a.Flush()
		a.inList = false
		return append(out, model.Blank())
	}
}

// Flush emits the buffered prose as one paragraph followed by a blank
// separator. Flushing an empty buffer emits nothing.
func (a *ParagraphAccumulator) Flush() []model.Block {
	if len(a.buffer) == 0 {
		return nil
	}
	text := NormalizePunctuation(strings.Join(a.buffer, " "))
	a.buffer = a.buffer[:0]
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []model.Block{model.Paragraph(text), model.Blank()}
}

// Break flushes pending prose and leaves any open list. It is used before
// out-of-band blocks such as tables.
func (a *ParagraphAccumulator) Break() []model.Block {
	out := a.Flush()
	a.inList = false
	return out
}

// InList reports whether the last pushed block was a list item
func (a *ParagraphAccumulator) InList() bool {
	return a.inList
}

// Pending returns the number of buffered prose fragments
func (a *ParagraphAccumulator) Pending() int {
	return len(a.buffer)
}
