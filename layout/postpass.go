package layout

import (
	"github.com/tsawler/docstruct/model"
)

// PostPass normalizes blank separators in an assembled block sequence:
// runs of blanks collapse to one, every heading followed by a non-blank
// block gets exactly one blank after it, and leading and trailing blanks
// are dropped. PostPass is idempotent and does not modify its input.
func PostPass(blocks []model.Block) []model.Block {
	out := make([]model.Block, 0, len(blocks)+len(blocks)/4)

	for i, b := range blocks {
		if b.IsBlank() {
			if len(out) == 0 || out[len(out)-1].IsBlank() {
				continue
			}
			out = append(out, b)
			continue
		}

		out = append(out, b)
		if b.Kind == model.BlockHeading && i+1 < len(blocks) && !blocks[i+1].IsBlank() {
			out = append(out, model.Blank())
		}
	}

	for len(out) > 0 && out[len(out)-1].IsBlank() {
		out = out[:len(out)-1]
	}
	return out
}

// Validate reports the first structural problem in a post-passed block
// sequence: consecutive blanks, an out-of-range heading level or an empty
// paragraph. It returns -1 when the sequence is well formed.
func Validate(blocks []model.Block) (index int, problem string) {
	for i, b := range blocks {
		switch {
		case b.IsBlank() && i > 0 && blocks[i-1].IsBlank():
			return i, "consecutive blanks"
		case b.Kind == model.BlockHeading && (b.Level < model.MinHeadingLevel || b.Level > model.MaxHeadingLevel):
			return i, "heading level out of range"
		case b.Kind == model.BlockParagraph && b.Text == "":
			return i, "empty paragraph"
		}
	}
	return -1, ""
}
