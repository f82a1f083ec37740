// Package source turns files into pages of raw lines.
//
// A [Decoder] reads one file and returns an [Extraction]: the ordered pages
// of lines, with optional visual attributes and table grids, that the
// layout package consumes. Decoders are looked up by source kind in a
// [Registry]:
//
//	reg := source.NewDefaultRegistry()
//	dec, ok := reg.Get(format.TXT)
//	ext, err := dec.Decode(ctx, "notes.txt")
//
// # Built-in Decoders
//
//   - [TextDecoder] - plain text and Markdown; form feeds separate pages
//   - [HTMLDecoder] - headings, paragraphs, lists and tables from HTML
//   - [CommandDecoder] - runs an external extractor such as pdftotext and
//     reads its standard output as text
//
// Binary containers (DOCX, DOC, PDF) have no built-in decoder. Register a
// [CommandDecoder] for them, or any other [Decoder] implementation.
//
// # Errors
//
// Every decoding failure is reported as an [UnreadableError], which the
// conversion facade turns into an error document instead of propagating.
package source
