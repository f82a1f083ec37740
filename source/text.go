package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docstruct/model"
)

// PageSeparator separates pages in plain text, as emitted by pdftotext
const PageSeparator = "\f"

// TextDecoder reads plain text and Markdown files
type TextDecoder struct{}

// NewTextDecoder creates a text decoder
func NewTextDecoder() *TextDecoder {
	return &TextDecoder{}
}

// Decode reads the file at path as UTF-8 text
func (d *TextDecoder) Decode(ctx context.Context, path string) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return &Extraction{Pages: PagesFromText(string(data))}, nil
}

// PagesFromText splits text into pages on form feeds and each page into
// lines. Text is normalized to NFC, a leading byte order mark is dropped and
// invalid UTF-8 is replaced. A trailing form feed does not start a new page.
func PagesFromText(text string) []model.Page {
	text = NormalizeText(text)
	chunks := strings.Split(text, PageSeparator)
	if n := len(chunks); n > 1 && strings.TrimSpace(chunks[n-1]) == "" {
		chunks = chunks[:n-1]
	}

	pages := make([]model.Page, 0, len(chunks))
	for _, c := range chunks {
		pages = append(pages, model.Page{Lines: model.LinesFromText(c)})
	}
	return pages
}

// NormalizeText prepares decoded text for classification
func NormalizeText(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ToValidUTF8(text, "\uFFFD")
	return norm.NFC.String(text)
}
