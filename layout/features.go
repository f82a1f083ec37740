package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/tsawler/docstruct/model"
)

// Length thresholds. They are tuned independently and must not be merged.
const (
	// ShortLineLimit is the rune count below which a line counts as short
	ShortLineLimit = 50

	// ColonHeadingLimit is the rune count below which a colon-terminated
	// line is promoted to a heading
	ColonHeadingLimit = 30
)

// SizeClass buckets a line's character size relative to its page
type SizeClass int

const (
	SizeUnknown SizeClass = iota
	SizeSmall
	SizeNormal
	SizeLarge
)

// String returns a string representation of the size class
func (c SizeClass) String() string {
	switch c {
	case SizeSmall:
		return "small"
	case SizeNormal:
		return "normal"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// SizeSignal is the ratio of a line's character size to its page mean.
// Known is false when either the line or the page lacks visual attributes.
type SizeSignal struct {
	Known bool
	Ratio float64
}

// Class buckets the signal using the given ratios
func (s SizeSignal) Class(large, small float64) SizeClass {
	switch {
	case !s.Known:
		return SizeUnknown
	case s.Ratio > large:
		return SizeLarge
	case s.Ratio < small:
		return SizeSmall
	default:
		return SizeNormal
	}
}

// VisualContext carries page-level visual statistics
type VisualContext struct {
	// MeanCharSize is the rune-weighted mean character size of the page
	MeanCharSize float64

	// Known is false when no line on the page has visual attributes
	Known bool
}

// NewVisualContext computes the visual context of a page's lines
func NewVisualContext(lines []model.Line) VisualContext {
	mean, ok := model.MeanCharSize(lines)
	return VisualContext{MeanCharSize: mean, Known: ok}
}

// Features are the structural features of a single line
type Features struct {
	// Length is the rune count of the trimmed line
	Length int

	StartsWithNumber bool
	StartsWithBullet bool

	// Bullet is the bullet glyph the line starts with, if any
	Bullet string

	EndsWithColon bool
	IsShort       bool
	IsQuestion    bool

	// EndsWithTerminal is true for sentence-final punctuation (. 。 ! ？ etc.)
	EndsWithTerminal bool

	// HasLetter is true when the line has at least one letter or digit
	HasLetter bool

	// Bold mirrors the line's visual attribute; false when unknown
	Bold bool

	// Size compares the line's character size to the page mean
	Size SizeSignal
}

// FeatureConfig holds configuration for feature analysis
type FeatureConfig struct {
	// ShortLineLimit is the rune count below which a line is short
	// Default: 50
	ShortLineLimit int

	// Bullets are the glyphs that mark a bulleted line
	// Default: •, ·, -, *
	Bullets []string
}

// DefaultFeatureConfig returns sensible default configuration
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		ShortLineLimit: ShortLineLimit,
		Bullets:        []string{"•", "·", "-", "*"},
	}
}

var numberPrefix = regexp.MustCompile(`^\d+[.)]`)

// FeatureAnalyzer computes line features. It is stateless and safe for
// concurrent use.
type FeatureAnalyzer struct {
	config FeatureConfig
}

// NewFeatureAnalyzer creates a feature analyzer with default configuration
func NewFeatureAnalyzer() *FeatureAnalyzer {
	return NewFeatureAnalyzerWithConfig(DefaultFeatureConfig())
}

// NewFeatureAnalyzerWithConfig creates a feature analyzer with custom configuration
func NewFeatureAnalyzerWithConfig(config FeatureConfig) *FeatureAnalyzer {
	if config.ShortLineLimit <= 0 {
		config.ShortLineLimit = ShortLineLimit
	}
	config.Bullets = append([]string(nil), config.Bullets...)
	return &FeatureAnalyzer{config: config}
}

// Analyze computes the features of a line. It never fails: lines without
// visual attributes get an unknown size signal.
func (a *FeatureAnalyzer) Analyze(line model.Line, vc VisualContext) Features {
	text := line.Trimmed()
	f := Features{
		Length: utf8.RuneCountInString(text),
	}
	f.IsShort = f.Length < a.config.ShortLineLimit
	f.StartsWithNumber = numberPrefix.MatchString(text)
	f.Bullet = a.bulletPrefix(text)
	f.StartsWithBullet = f.Bullet != ""
	f.HasLetter = strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}) >= 0

	if last, _ := utf8.DecodeLastRuneInString(text); last != utf8.RuneError {
		switch foldRune(last) {
		case ':':
			f.EndsWithColon = true
		case '?':
			f.IsQuestion = true
			f.EndsWithTerminal = true
		case '.', '!', '。', '｡':
			f.EndsWithTerminal = true
		}
	}

	if line.Visual != nil {
		f.Bold = line.Visual.Bold
	}
	if vc.Known && vc.MeanCharSize > 0 && line.HasVisual() {
		f.Size = SizeSignal{Known: true, Ratio: line.Visual.AvgCharSize / vc.MeanCharSize}
	}

	return f
}

func (a *FeatureAnalyzer) bulletPrefix(text string) string {
	for _, b := range a.config.Bullets {
		if b != "" && strings.HasPrefix(text, b) {
			return b
		}
	}
	return ""
}

// foldRune maps full-width punctuation to its half-width form
func foldRune(r rune) rune {
	if n := width.LookupRune(r).Narrow(); n != 0 {
		return n
	}
	return r
}
