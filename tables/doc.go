// Package tables converts cell grids into header-delimited table blocks.
//
// Decoders deliver tables as plain grids of cell strings. The [Formatter]
// treats row 0 as the header and inserts a separator row of "---" cells
// directly after it, so the block renders as a pipe-delimited Markdown
// table:
//
//	f := tables.NewFormatter()
//	block, ok := f.Format([][]string{{"A", "B"}, {"1", "2"}})
//	// block.Markdown():
//	// | A | B |
//	// | --- | --- |
//	// | 1 | 2 |
//
// # Cell Cleaning
//
// Embedded line breaks inside a cell collapse to a single space and cells
// are trimmed.
//
// # Limitations
//
// Data rows are not validated against the header width. A short row is
// emitted short and a long row is emitted long; no padding or truncation
// takes place.
package tables
