// Package format provides source kind detection for the docstruct library.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedKind is returned when a source's extension is not supported.
var ErrUnsupportedKind = errors.New("unsupported source kind")

// Kind represents a supported source kind.
type Kind int

const (
	// Unknown indicates an unrecognized source kind.
	Unknown Kind = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// DOC indicates a legacy Microsoft Word (.doc) document.
	DOC
	// PDF indicates a PDF document.
	PDF
	// TXT indicates a plain text file.
	TXT
	// Markdown indicates a Markdown file, read as plain lines.
	Markdown
	// HTML indicates an HTML document.
	HTML
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case PDF:
		return "PDF"
	case TXT:
		return "TXT"
	case Markdown:
		return "Markdown"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Name returns the lower-case identifier used in metadata and configuration.
func (k Kind) Name() string {
	switch k {
	case DOCX:
		return "docx"
	case DOC:
		return "doc"
	case PDF:
		return "pdf"
	case TXT:
		return "txt"
	case Markdown:
		return "md"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the kind.
func (k Kind) Extension() string {
	switch k {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case PDF:
		return ".pdf"
	case TXT:
		return ".txt"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// IsBinary reports whether the kind is a binary container whose decoding
// happens outside this module.
func (k Kind) IsBinary() bool {
	return k == DOCX || k == DOC || k == PDF
}

// Binary lists the binary container kinds in their conventional order.
func Binary() []Kind {
	return []Kind{DOCX, DOC, PDF}
}

// Supported lists every kind with a known extension.
func Supported() []Kind {
	return []Kind{DOCX, DOC, PDF, TXT, Markdown, HTML}
}

// Extensions returns every extension mapped to the given kinds.
func Extensions(kinds ...Kind) []string {
	var exts []string
	for _, k := range kinds {
		switch k {
		case Markdown:
			exts = append(exts, ".md", ".markdown")
		case HTML:
			exts = append(exts, ".html", ".htm")
		case Unknown:
		default:
			exts = append(exts, k.Extension())
		}
	}
	return exts
}

// Detect determines the source kind from the filename extension.
func Detect(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	case ".pdf":
		return PDF
	case ".txt", ".text":
		return TXT
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromMagic checks leading magic bytes to determine the kind.
// ZIP archives return Unknown; use DetectFromReader to inspect them.
func DetectFromMagic(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, oleMagic):
		return DOC
	case bytes.HasPrefix(data, zipMagic):
		return Unknown
	case detectHTMLMagic(data):
		return HTML
	default:
		return Unknown
	}
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(len(data), 512)]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// DetectFromReader inspects content to determine the kind. It can tell a
// DOCX archive apart from other ZIP containers.
func DetectFromReader(r io.ReaderAt, size int64) (Kind, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPKind(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPKind reports DOCX when the archive carries a word/ part.
func detectZIPKind(r io.ReaderAt, size int64) (Kind, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}
	return Unknown, nil
}
