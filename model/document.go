package model

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is an assembled block sequence plus its metadata
type Document struct {
	Metadata Metadata
	Blocks   []Block
}

// Metadata contains document-level information derived from the source name.
// Optional fields are empty when absent and are omitted from the preamble.
type Metadata struct {
	Title          string
	SourceFilename string
	ConvertedAt    time.Time
	SourceType     string

	// Optional
	Category   string
	Year       string
	PersonName string
}

// frontMatter fixes the key names and order of the preamble
type frontMatter struct {
	Title       string `yaml:"title"`
	Filename    string `yaml:"filename"`
	ConvertedAt string `yaml:"converted_at"`
	SourceType  string `yaml:"source_type"`
	Category    string `yaml:"category,omitempty"`
	Year        string `yaml:"year,omitempty"`
	PersonName  string `yaml:"person_name,omitempty"`
}

// PreambleMarker delimits the metadata preamble
const PreambleMarker = "---"

// Preamble renders the metadata as YAML between marker lines
func (m Metadata) Preamble() (string, error) {
	fm := frontMatter{
		Title:       m.Title,
		Filename:    m.SourceFilename,
		ConvertedAt: m.ConvertedAt.Format(time.RFC3339),
		SourceType:  m.SourceType,
		Category:    m.Category,
		Year:        m.Year,
		PersonName:  m.PersonName,
	}
	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encoding preamble: %w", err)
	}
	return PreambleMarker + "\n" + string(out) + PreambleMarker + "\n", nil
}

// ParsePreamble reads metadata back from a rendered document
func ParsePreamble(rendered string) (Metadata, error) {
	if !strings.HasPrefix(rendered, PreambleMarker+"\n") {
		return Metadata{}, fmt.Errorf("missing preamble marker")
	}
	rest := rendered[len(PreambleMarker)+1:]
	end := strings.Index(rest, "\n"+PreambleMarker+"\n")
	if end < 0 {
		return Metadata{}, fmt.Errorf("unterminated preamble")
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end+1]), &fm); err != nil {
		return Metadata{}, fmt.Errorf("decoding preamble: %w", err)
	}

	m := Metadata{
		Title:          fm.Title,
		SourceFilename: fm.Filename,
		SourceType:     fm.SourceType,
		Category:       fm.Category,
		Year:           fm.Year,
		PersonName:     fm.PersonName,
	}
	if fm.ConvertedAt != "" {
		ts, err := time.Parse(time.RFC3339, fm.ConvertedAt)
		if err != nil {
			return Metadata{}, fmt.Errorf("decoding converted_at: %w", err)
		}
		m.ConvertedAt = ts
	}
	return m, nil
}

// Body renders the block sequence as Markdown, one block per line
func (d *Document) Body() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(b.Markdown())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown renders the preamble, a blank line and the body
func (d *Document) Markdown() (string, error) {
	pre, err := d.Metadata.Preamble()
	if err != nil {
		return "", err
	}
	return pre + "\n" + d.Body(), nil
}

// Headings returns all heading blocks in document order
func (d *Document) Headings() []Block {
	var headings []Block
	for _, b := range d.Blocks {
		if b.Kind == BlockHeading {
			headings = append(headings, b)
		}
	}
	return headings
}

// Count returns the number of blocks of the given kind
func (d *Document) Count(kind BlockKind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// TableOfContents returns a markdown-formatted table of contents
func (d *Document) TableOfContents() string {
	var sb strings.Builder
	for _, h := range d.Headings() {
		sb.WriteString(strings.Repeat("  ", h.Level-1))
		sb.WriteString("- ")
		sb.WriteString(h.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
