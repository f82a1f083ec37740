package layout

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/docstruct/model"
)

// Size ratios for visual promotion
const (
	// LargeSizeRatio is the size ratio above which a line is eligible for
	// promotion to a heading
	LargeSizeRatio = 1.2

	// SmallSizeRatio is the size ratio below which a line is never promoted
	SmallSizeRatio = 0.8
)

// DefaultHeadingLevel is assigned to headings no level rule matches
const DefaultHeadingLevel = 2

// ColonHeadingLevel is the level of every short colon-terminated heading.
// Level rules do not apply to it.
const ColonHeadingLevel = 2

// Rule names reported in Classification.Rule
const (
	RuleBlank         = "blank"
	RuleThematicBreak = "thematic-break"
	RuleColonHeading  = "colon-heading"
	RuleBullet        = "bullet"
	RuleLargeSize     = "large-size"
	RuleBold          = "bold"
	RuleProse         = "prose"
)

// thematicBreak matches separator lines such as "---", "* * *" or "====".
// They carry no text and classify as blank.
var thematicBreak = regexp.MustCompile(`^(?:[-*_=]\s*){3,}$`)

// Classification is the outcome of classifying a single line
type Classification struct {
	// Kind is BlockBlank, BlockHeading, BlockListItem or BlockParagraph.
	// BlockParagraph marks a prose fragment for the accumulator.
	Kind model.BlockKind

	// Level is the heading level; zero for other kinds
	Level int

	// Text is the text to emit. Bullet glyphs are stripped from list items.
	Text string

	// Rule names the rule that decided the classification
	Rule string
}

// LineClassifier maps a line and its features to a classification
type LineClassifier interface {
	Classify(line model.Line, f Features) Classification
}

// ClassifierConfig holds the ordered, immutable policy of a Classifier.
// Slices are copied at construction, so later changes to the caller's
// slices have no effect.
type ClassifierConfig struct {
	// Catalogue lists patterns that make a line a heading outright
	Catalogue []HeadingPattern

	// LevelRules assign heading levels; the first match wins
	LevelRules []LevelRule

	// ListMarkers are enumeration markers that make a line a list item
	ListMarkers []ListMarker

	// DefaultLevel is used when no level rule matches
	// Default: 2
	DefaultLevel int

	// ColonHeadingLimit is the rune count below which a colon-terminated
	// line becomes a heading
	// Default: 30
	ColonHeadingLimit int

	// LargeSizeRatio is the size ratio above which a line is promoted,
	// whatever its length
	// Default: 1.2
	LargeSizeRatio float64

	// SmallSizeRatio is the size ratio below which a line is never promoted
	// Default: 0.8
	SmallSizeRatio float64

	// TopLevelSizeRatio, when positive, assigns level 1 to size-promoted
	// lines at or above this ratio. Default: 0 (disabled)
	TopLevelSizeRatio float64

	// BoldPromotes when true, short bold lines without terminal punctuation
	// become headings. Default: false
	BoldPromotes bool
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Catalogue:         DefaultCatalogue(),
		LevelRules:        DefaultLevelRules(),
		ListMarkers:       DefaultListMarkers(),
		DefaultLevel:      DefaultHeadingLevel,
		ColonHeadingLimit: ColonHeadingLimit,
		LargeSizeRatio:    LargeSizeRatio,
		SmallSizeRatio:    SmallSizeRatio,
	}
}

// Classifier applies the ordered decision policy to single lines. It holds
// no per-document state and is safe for concurrent use.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultClassifierConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration.
// Zero numeric fields take their defaults.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	config.Catalogue = append([]HeadingPattern(nil), config.Catalogue...)
	config.LevelRules = append([]LevelRule(nil), config.LevelRules...)
	config.ListMarkers = append([]ListMarker(nil), config.ListMarkers...)
	if config.DefaultLevel == 0 {
		config.DefaultLevel = DefaultHeadingLevel
	}
	config.DefaultLevel = model.ClampLevel(config.DefaultLevel)
	if config.ColonHeadingLimit <= 0 {
		config.ColonHeadingLimit = ColonHeadingLimit
	}
	if config.LargeSizeRatio <= 0 {
		config.LargeSizeRatio = LargeSizeRatio
	}
	if config.SmallSizeRatio <= 0 {
		config.SmallSizeRatio = SmallSizeRatio
	}
	return &Classifier{config: config}
}

// Config returns a copy of the classifier's configuration
func (c *Classifier) Config() ClassifierConfig {
	config := c.config
	config.Catalogue = append([]HeadingPattern(nil), c.config.Catalogue...)
	config.LevelRules = append([]LevelRule(nil), c.config.LevelRules...)
	config.ListMarkers = append([]ListMarker(nil), c.config.ListMarkers...)
	return config
}

// Classify maps a line to a classification. The first matching rule wins:
// blank or separator line, heading catalogue, short colon line, list
// marker, visual size and finally prose. Textual rules are checked before any size signal, so large
// decorative glyphs cannot override them. Classify never fails.
func (c *Classifier) Classify(line model.Line, f Features) Classification {
	text := line.Trimmed()
	if text == "" {
		return Classification{Kind: model.BlockBlank, Rule: RuleBlank}
	}
	if thematicBreak.MatchString(text) {
		return Classification{Kind: model.BlockBlank, Rule: RuleThematicBreak}
	}

	for _, p := range c.config.Catalogue {
		if p.Pattern.MatchString(text) {
			level, _ := c.LevelFor(text)
			return heading(level, text, p.Name)
		}
	}

	if f.EndsWithColon && f.Length < c.config.ColonHeadingLimit {
		return heading(ColonHeadingLevel, text, RuleColonHeading)
	}

	if cl, ok := c.listItem(text, f); ok {
		return cl
	}

	if f.Size.Class(c.config.LargeSizeRatio, c.config.SmallSizeRatio) == SizeLarge {
		level, rule := c.LevelFor(text)
		if rule == "" && c.config.TopLevelSizeRatio > 0 && f.Size.Ratio >= c.config.TopLevelSizeRatio {
			level = model.MinHeadingLevel
		}
		return heading(level, text, RuleLargeSize)
	}

	if c.config.BoldPromotes && f.Bold && f.IsShort && f.HasLetter && !f.EndsWithTerminal &&
		f.Size.Class(c.config.LargeSizeRatio, c.config.SmallSizeRatio) != SizeSmall {
		level, _ := c.LevelFor(text)
		return heading(level, text, RuleBold)
	}

	return Classification{Kind: model.BlockParagraph, Text: text, Rule: RuleProse}
}

// LevelFor returns the heading level for text and the name of the level
// rule that matched. The rule name is empty when the default level applies.
func (c *Classifier) LevelFor(text string) (int, string) {
	text = strings.TrimSpace(text)
	for _, r := range c.config.LevelRules {
		if r.Pattern.MatchString(text) {
			return model.ClampLevel(r.Level), r.Name
		}
	}
	return c.config.DefaultLevel, ""
}

func (c *Classifier) listItem(text string, f Features) (Classification, bool) {
	if f.StartsWithBullet {
		item := strings.TrimLeftFunc(strings.TrimPrefix(text, f.Bullet), unicode.IsSpace)
		if item == "" {
			item = text
		}
		return Classification{Kind: model.BlockListItem, Text: item, Rule: RuleBullet}, true
	}
	for _, m := range c.config.ListMarkers {
		if m.Pattern.MatchString(text) {
			return Classification{Kind: model.BlockListItem, Text: text, Rule: m.Name}, true
		}
	}
	return Classification{}, false
}

func heading(level int, text, rule string) Classification {
	return Classification{
		Kind:  model.BlockHeading,
		Level: model.ClampLevel(level),
		Text:  text,
		Rule:  rule,
	}
}
