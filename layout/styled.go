package layout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/docstruct/model"
)

// Rule names reported by the StyledClassifier
const (
	RuleStyleHint        = "style-hint"
	RuleLongUnterminated = "long-unterminated"
)

var headingStyle = regexp.MustCompile(`(?i)^heading\s*(\d+)$`)

// StyledConfig holds configuration for a StyledClassifier
type StyledConfig struct {
	// PromoteLongUnterminated when true, lines longer than ShortLineLimit
	// that do not end in terminal punctuation become level 2 headings.
	// Word processors emit such lines for run-in section titles.
	// Default: false
	PromoteLongUnterminated bool
}

// StyledClassifier honors source style hints before falling back to a base
// classifier. It is meant for structured sources that name their paragraph
// styles; the long-line rule is a format-specific variant and is not part
// of the shared Classifier policy.
type StyledClassifier struct {
	base   LineClassifier
	config StyledConfig
}

// NewStyledClassifier wraps base with style-hint handling
func NewStyledClassifier(base LineClassifier, config StyledConfig) *StyledClassifier {
	if base == nil {
		base = NewClassifier()
	}
	return &StyledClassifier{base: base, config: config}
}

// Classify applies the style hint, then the long-line rule, then the base
// classifier.
func (s *StyledClassifier) Classify(line model.Line, f Features) Classification {
	text := line.Trimmed()
	if text == "" {
		return s.base.Classify(line, f)
	}

	if level, ok := StyleLevel(line.Style); ok {
		return heading(level, text, RuleStyleHint)
	}

	if s.config.PromoteLongUnterminated && !f.IsShort && !f.EndsWithTerminal && !f.EndsWithColon {
		return heading(DefaultHeadingLevel, text, RuleLongUnterminated)
	}

	return s.base.Classify(line, f)
}

// StyleLevel maps a style name to a heading level. "Title" is level 1,
// "Subtitle" level 2 and "Heading N" level N, clamped to the supported range.
func StyleLevel(style string) (int, bool) {
	style = strings.TrimSpace(style)
	switch strings.ToLower(style) {
	case "":
		return 0, false
	case "title":
		return model.MinHeadingLevel, true
	case "subtitle":
		return 2, true
	}
	m := headingStyle.FindStringSubmatch(style)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return model.ClampLevel(n), true
}
