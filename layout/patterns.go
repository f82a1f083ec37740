package layout

import (
	"regexp"
)

// HeadingPattern is one entry of the heading catalogue. A line matching any
// catalogue entry is a heading regardless of its other features.
type HeadingPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// LevelRule maps a heading text pattern to a heading level
type LevelRule struct {
	Name    string
	Pattern *regexp.Regexp
	Level   int
}

// ListMarker is an enumeration marker that makes a line a list item.
// Bullet glyphs are handled through FeatureConfig.Bullets.
type ListMarker struct {
	Name    string
	Pattern *regexp.Regexp
}

var (
	// Top-level section names, matched against the whole line
	sectionNames = regexp.MustCompile(`^(?:前言|个人情况|申请准备|申请过程|经验总结|建议|最后想说的话|结语|` +
		`(?i:foreword|preface|personal background|application preparation|application process|` +
		`lessons learned|summary|advice|final words|conclusion))$`)

	// Guidance questions such as "How should I ...?" or "我应该…？"
	guidanceQuestion = regexp.MustCompile(`^(?:(?:我应该|如何|怎么|怎样).*|.*规划.*|` +
		`(?i:(?:how (?:should|do|can) i|how to|what should i|should i)\b.*))[?？]$`)

	// Labeled fields such as "GPA:" or "雅思：", matched as a prefix
	labeledField = regexp.MustCompile(`^(?:GPA|GRE|GMAT|CV|PS|Tips|雅思|托福|去向|硬背景|软背景|语言|实习|项目|科研|笔面|时间线|时间规划|` +
		`(?i:ielts|toefl|score|destination|hard background|soft background|language|internship|projects?|` +
		`research|interview|timeline|schedule))\s*[:：]`)

	twoLevelNumeric   = regexp.MustCompile(`^\d+\.\d+\.?\s*[^。]+$`)
	numericDot        = regexp.MustCompile(`^\d+\.\s*[^。]+$`)
	cjkEnumeration    = regexp.MustCompile(`^[一二三四五六七八九十]+[、.．]\s*[^。]+$`)
	romanEnumeration  = regexp.MustCompile(`^(?:[IVX]+|[ⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩ]+)[、.．]\s*[^。]+$`)
	letterEnumeration = regexp.MustCompile(`^[a-zA-Z]\.\s*[^。]+$`)
	bulletHeading     = regexp.MustCompile(`^[•·]\s*[^。]+$`)

	numberedItem = regexp.MustCompile(`^\d+[.)]\s`)
	cjkItem      = regexp.MustCompile(`^[一二三四五六七八九十]+[、.．]\s*\S`)
	romanItem    = regexp.MustCompile(`^(?:[ⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩ]+[、.．]\s*\S|[IVX]+[、.]\s)`)
)

// DefaultCatalogue returns the ordered heading catalogue
func DefaultCatalogue() []HeadingPattern {
	return []HeadingPattern{
		{Name: "section-name", Pattern: sectionNames},
		{Name: "guidance-question", Pattern: guidanceQuestion},
		{Name: "labeled-field", Pattern: labeledField},
	}
}

// DefaultLevelRules returns the ordered level rules. Two-level numbering is
// checked before single-level numbering, which would otherwise shadow it.
func DefaultLevelRules() []LevelRule {
	return []LevelRule{
		{Name: "section-name", Pattern: sectionNames, Level: 1},
		{Name: "guidance-question", Pattern: guidanceQuestion, Level: 1},
		{Name: "labeled-field", Pattern: labeledField, Level: 2},
		{Name: "two-level-numeric", Pattern: twoLevelNumeric, Level: 3},
		{Name: "numeric-dot", Pattern: numericDot, Level: 2},
		{Name: "cjk-enumeration", Pattern: cjkEnumeration, Level: 2},
		{Name: "roman-enumeration", Pattern: romanEnumeration, Level: 2},
		{Name: "letter-enumeration", Pattern: letterEnumeration, Level: 3},
		{Name: "bullet-heading", Pattern: bulletHeading, Level: 3},
	}
}

// DefaultListMarkers returns the ordered enumeration markers
func DefaultListMarkers() []ListMarker {
	return []ListMarker{
		{Name: "numbered", Pattern: numberedItem},
		{Name: "cjk-numeral", Pattern: cjkItem},
		{Name: "roman-numeral", Pattern: romanItem},
	}
}
