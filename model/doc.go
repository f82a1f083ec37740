// Package model provides the intermediate representation (IR) for inferred
// document structure.
//
// This package defines the user-facing data structures produced by the
// structure inference engine. Line sources feed [Page] values in; the
// layout package turns them into [Block] sequences; the result is a
// [Document] that renders to Markdown with a YAML metadata preamble.
//
// # Input
//
// A [Page] holds the raw [Line] values of one logical page or section,
// plus any [TableGrid] values supplied by the decoder:
//
//	page := model.Page{
//	    Lines: []model.Line{{Text: "Foreword"}, {Text: "Hello"}},
//	}
//
// Visual attributes are optional. A nil [Visual] means the decoder did not
// report character sizes, which is distinct from a size of zero.
//
// # Blocks
//
// A [Block] is a tagged variant. The concrete kinds are:
//
//   - [BlockHeading] - heading with level 1-3
//   - [BlockListItem] - list item
//   - [BlockParagraph] - merged prose paragraph
//   - [BlockTable] - pipe table rows including the separator row
//   - [BlockBlank] - blank separator
//   - [BlockPageBreak] - boundary between pages
//
// # Rendering
//
// [Document.Markdown] emits the preamble followed by each block rendered
// with [Block.Markdown].
package model
