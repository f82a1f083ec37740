// Package docstruct provides a fluent API for inferring the structure of a
// document from its flat text lines and rendering it as Markdown with a YAML
// metadata preamble.
//
// Basic usage:
//
//	md, warnings, err := docstruct.Open("notes.txt").Markdown(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docstruct.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := docstruct.Open("report.pdf").
//	    WithDecoder(format.PDF, source.NewCommandDecoder("pdftotext", "{path}", "-")).
//	    WithoutPageBreaks().
//	    Document(ctx)
//
// Lines that were extracted elsewhere can be assembled directly:
//
//	doc, _, err := docstruct.FromPages("memo.docx", pages).Document(ctx)
//
// The lower-level layout, tables and meta packages are also available.
package docstruct

import (
	"github.com/tsawler/docstruct/format"
	"github.com/tsawler/docstruct/model"
	"github.com/tsawler/docstruct/source"
)

// Open returns a Converter for the file at filename. The source kind is
// taken from the extension; an unsupported extension is reported by the
// terminal operation as an *UnsupportedSourceKindError.
//
// Example:
//
//	md, warnings, err := docstruct.Open("minutes.html").Markdown(ctx)
func Open(filename string) *Converter {
	c := &Converter{
		filename: filename,
		kind:     format.Detect(filename),
		options:  defaultOptions(),
	}
	if c.kind == format.Unknown {
		c.err = &UnsupportedSourceKindError{Filename: filename}
	}
	return c
}

// FromPages returns a Converter over pages that were already decoded. The
// name is used for metadata and to choose per-kind classification; it need
// not exist on disk and its extension may be unknown.
//
// Example:
//
//	pages := []model.Page{{Lines: model.LinesFromText("Summary:\nAll good.")}}
//	doc, _, err := docstruct.FromPages("status.txt", pages).Document(ctx)
func FromPages(name string, pages []model.Page) *Converter {
	return &Converter{
		filename: name,
		kind:     format.Detect(name),
		pages:    append([]model.Page(nil), pages...),
		inMemory: true,
		options:  defaultOptions(),
	}
}

// FromText returns a Converter over plain text. Form feeds separate pages.
func FromText(name, text string) *Converter {
	return FromPages(name, source.PagesFromText(source.NormalizeText(text)))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := docstruct.Must(docstruct.Open("notes.txt").Pages(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a call to Document() or Markdown() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	md := docstruct.MustDocument(docstruct.FromText("a.txt", text).Markdown(ctx))
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
