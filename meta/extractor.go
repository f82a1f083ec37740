// Package meta derives document metadata from a source name.
//
// Extraction is a pure, total function of the name and the injected clock:
// fields that cannot be derived are left empty and omitted from the
// rendered preamble.
package meta

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/tsawler/docstruct/format"
	"github.com/tsawler/docstruct/model"
)

// CategoryRule maps a keyword found in a source name to a category tag
type CategoryRule struct {
	// Keyword is matched as a substring of the source name
	Keyword string

	// Category is the tag recorded when the keyword matches
	Category string

	// FoldCase matches the keyword case-insensitively
	FoldCase bool
}

// DefaultCategoryRules returns the ordered keyword table. The first match
// wins, so more specific keywords come first.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Keyword: "会计", Category: "accounting"},
		{Keyword: "Accounting", Category: "accounting", FoldCase: true},
		{Keyword: "信管", Category: "information-management"},
		{Keyword: "Information Management", Category: "information-management", FoldCase: true},
		{Keyword: "工商", Category: "business-administration"},
		{Keyword: "Business", Category: "business-administration", FoldCase: true},
		{Keyword: "计科", Category: "computer-science"},
		{Keyword: "CS", Category: "computer-science"},
		{Keyword: "Computer", Category: "computer-science", FoldCase: true},
		{Keyword: "通信", Category: "communication-engineering"},
		{Keyword: "Telecom", Category: "communication-engineering", FoldCase: true},
		{Keyword: "环境", Category: "environmental-engineering"},
		{Keyword: "Environment", Category: "environmental-engineering", FoldCase: true},
		{Keyword: "数媒", Category: "digital-media"},
		{Keyword: "Digital Media", Category: "digital-media", FoldCase: true},
	}
}

// DefaultNameLabels returns the label tokens that precede a person name
func DefaultNameLabels() []string {
	return []string{"飞跃手册", "Leap-Manual", "Leap_Manual", "LeapManual"}
}

// Config holds extractor configuration
type Config struct {
	// Categories is the ordered keyword table
	Categories []CategoryRule

	// NameLabels are the label tokens that precede a person name.
	// The earliest occurrence in the name wins.
	NameLabels []string

	// Clock supplies the conversion timestamp
	// Default: time.Now
	Clock func() time.Time
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Categories: DefaultCategoryRules(),
		NameLabels: DefaultNameLabels(),
		Clock:      time.Now,
	}
}

var yearPattern = regexp.MustCompile(`20\d\d`)

// Extractor derives Metadata from source names
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor with default configuration
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	config.Categories = append([]CategoryRule(nil), config.Categories...)
	config.NameLabels = append([]string(nil), config.NameLabels...)
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Extractor{config: config}
}

// Extract derives metadata from a source path or name. The conversion
// timestamp is taken from the clock and truncated to whole seconds.
func (e *Extractor) Extract(source string) model.Metadata {
	base := filepath.Base(source)
	if source == "" {
		base = ""
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return model.Metadata{
		Title:          stem,
		SourceFilename: base,
		ConvertedAt:    e.config.Clock().Truncate(time.Second),
		SourceType:     format.Detect(base).Name(),
		Category:       e.Category(stem),
		Year:           Year(stem),
		PersonName:     e.PersonName(stem),
	}
}

// Category returns the category of the first matching rule, or "" when no
// rule matches
func (e *Extractor) Category(name string) string {
	lower := strings.ToLower(name)
	for _, r := range e.config.Categories {
		if r.Keyword == "" {
			continue
		}
		if r.FoldCase {
			if strings.Contains(lower, strings.ToLower(r.Keyword)) {
				return r.Category
			}
			continue
		}
		if strings.Contains(name, r.Keyword) {
			return r.Category
		}
	}
	return ""
}

// Year returns the first 20xx substring of name, or ""
func Year(name string) string {
	return yearPattern.FindString(name)
}

// PersonName returns the text after the earliest name label with
// separators normalized to single spaces, or "" when no label is present
// or nothing follows it
func (e *Extractor) PersonName(name string) string {
	at, label := -1, ""
	for _, l := range e.config.NameLabels {
		if l == "" {
			continue
		}
		if i := strings.Index(name, l); i >= 0 && (at < 0 || i < at) {
			at, label = i, l
		}
	}
	if at < 0 {
		return ""
	}

	// a separator right after the label is dropped with the other runs
	return NormalizeSeparators(name[at+len(label):])
}

// NormalizeSeparators replaces runs of '-', '_' and whitespace with a single
// space and trims the result
func NormalizeSeparators(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
