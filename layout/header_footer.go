package layout

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/docstruct/model"
)

// RegionType tells running headers from running footers
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// LineRef locates a line within a page sequence
type LineRef struct {
	Page int
	Line int
}

// HeaderFooterRegion is a line that repeats at the same position near the
// top or bottom of many pages
type HeaderFooterRegion struct {
	Type RegionType

	// Text is the repeated line, or "[Page Number]"
	Text string

	// Position counts non-blank lines from the top for headers and from the
	// bottom for footers, starting at 0
	Position int

	// IsPageNumber is set when the line carries a running page number
	IsPageNumber bool

	// PageIndices are the pages the line appears on, ascending
	PageIndices []int

	// Lines are the occurrences to remove
	Lines []LineRef
}

// HeaderFooterConfig controls running header and footer detection
type HeaderFooterConfig struct {
	// RegionLines is how many non-blank lines at each end of a page are
	// candidates
	RegionLines int

	// MinOccurrenceRatio is the share of pages a line must repeat on.
	// Two pages are always required.
	MinOccurrenceRatio float64

	// MinPages is the page count below which nothing is detected
	MinPages int
}

// DefaultHeaderFooterConfig looks at two lines per page end and requires a
// repeat on half the pages
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		RegionLines:        2,
		MinOccurrenceRatio: 0.5,
		MinPages:           2,
	}
}

// HeaderFooterDetector finds page furniture in extracted text: titles
// repeated on every page and page numbers that count up.
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector returns a detector with DefaultHeaderFooterConfig
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return NewHeaderFooterDetectorWithConfig(DefaultHeaderFooterConfig())
}

// NewHeaderFooterDetectorWithConfig returns a detector for config. Zero
// fields take their default values.
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	def := DefaultHeaderFooterConfig()
	if config.RegionLines <= 0 {
		config.RegionLines = def.RegionLines
	}
	if config.MinOccurrenceRatio <= 0 {
		config.MinOccurrenceRatio = def.MinOccurrenceRatio
	}
	if config.MinPages <= 0 {
		config.MinPages = def.MinPages
	}
	return &HeaderFooterDetector{config: config}
}

// HeaderFooterResult holds the regions found by Detect
type HeaderFooterResult struct {
	Headers []HeaderFooterRegion
	Footers []HeaderFooterRegion
	Config  HeaderFooterConfig
}

type candidate struct {
	text     string
	position int
	ref      LineRef
}

// Detect finds lines that repeat at the same position on enough pages
func (d *HeaderFooterDetector) Detect(pages []model.Page) *HeaderFooterResult {
	result := &HeaderFooterResult{Config: d.config}
	if len(pages) < d.config.MinPages {
		return result
	}

	top, bottom := d.candidates(pages)
	result.Headers = d.repeated(top, len(pages), Header)
	result.Footers = d.repeated(bottom, len(pages), Footer)
	return result
}

// candidates collects the first and last RegionLines non-blank lines of
// every page
func (d *HeaderFooterDetector) candidates(pages []model.Page) (top, bottom []candidate) {
	for p, page := range pages {
		var content []int
		for i, line := range page.Lines {
			if !line.IsBlank() {
				content = append(content, i)
			}
		}

		n := min(d.config.RegionLines, len(content))
		for pos := 0; pos < n; pos++ {
			first, last := content[pos], content[len(content)-1-pos]
			top = append(top, candidate{
				text:     page.Lines[first].Trimmed(),
				position: pos,
				ref:      LineRef{Page: p, Line: first},
			})
			bottom = append(bottom, candidate{
				text:     page.Lines[last].Trimmed(),
				position: pos,
				ref:      LineRef{Page: p, Line: last},
			})
		}
	}
	return top, bottom
}

// repeated groups candidates by position and digit-masked text and keeps
// the groups that recur on enough pages
func (d *HeaderFooterDetector) repeated(cands []candidate, totalPages int, kind RegionType) []HeaderFooterRegion {
	type key struct {
		masked   string
		position int
	}
	groups := make(map[key][]candidate)
	for _, c := range cands {
		k := key{masked: maskDigits(c.text), position: c.position}
		groups[k] = append(groups[k], c)
	}

	need := max(2, int(float64(totalPages)*d.config.MinOccurrenceRatio))

	var regions []HeaderFooterRegion
	for k, group := range groups {
		// One or two runes repeat by accident unless they are a page number
		if len([]rune(k.masked)) <= 2 && !isPageNumberPattern(k.masked) {
			continue
		}

		onPages := distinctPages(group)
		if len(onPages) < need {
			continue
		}

		pageNumber := isPageNumberPattern(k.masked) || countsUp(group)
		// Figures that change from page to page without counting are body text
		if !pageNumber && !sameText(group) {
			continue
		}

		region := HeaderFooterRegion{
			Type:         kind,
			Text:         group[0].text,
			Position:     k.position,
			IsPageNumber: pageNumber,
			PageIndices:  onPages,
			Lines:        make([]LineRef, len(group)),
		}
		if pageNumber {
			region.Text = "[Page Number]"
		}
		for i, c := range group {
			region.Lines[i] = c.ref
		}
		regions = append(regions, region)
	}

	sort.Slice(regions, func(i, j int) bool {
		a, b := regions[i], regions[j]
		if len(a.PageIndices) != len(b.PageIndices) {
			return len(a.PageIndices) > len(b.PageIndices)
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Text < b.Text
	})
	return regions
}

func distinctPages(group []candidate) []int {
	seen := make(map[int]bool, len(group))
	var out []int
	for _, c := range group {
		if !seen[c.ref.Page] {
			seen[c.ref.Page] = true
			out = append(out, c.ref.Page)
		}
	}
	sort.Ints(out)
	return out
}

var digitRun = regexp.MustCompile(`\d+`)

// maskDigits replaces every digit run with "#" so "Page 3" and "Page 4"
// compare equal
func maskDigits(text string) string {
	return digitRun.ReplaceAllString(strings.TrimSpace(text), "#")
}

// pageNumberForms are digit-masked page number lines, lower case
var pageNumberForms = map[string]bool{
	"#":           true,
	"page #":      true,
	"- # -":       true,
	"# of #":      true,
	"page # of #": true,
	"#/#":         true,
	"# / #":       true,
	"p. #":        true,
	"p.#":         true,
	"pg #":        true,
	"pg. #":       true,
	"第#页":         true,
	"第 # 页":       true,
	"第#页 共#页":     true,
}

// isPageNumberPattern reports whether masked text is a page number form
func isPageNumberPattern(masked string) bool {
	return pageNumberForms[strings.ToLower(strings.TrimSpace(masked))]
}

// countsUp reports whether the leading numbers of a group mostly step by
// one, as page numbers in an unfamiliar form do
func countsUp(group []candidate) bool {
	var numbers []int
	for _, c := range group {
		if m := digitRun.FindString(c.text); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				numbers = append(numbers, n)
			}
		}
	}
	if len(numbers) < 2 {
		return false
	}

	sort.Ints(numbers)
	steps := 0
	for i := 1; i < len(numbers); i++ {
		if numbers[i] == numbers[i-1]+1 {
			steps++
		}
	}
	return steps >= len(numbers)/2
}

func sameText(group []candidate) bool {
	for _, c := range group[1:] {
		if c.text != group[0].text {
			return false
		}
	}
	return true
}

// Filter returns copies of pages without the detected header and footer
// lines. Table anchors move up by the number of removed lines before them.
func (r *HeaderFooterResult) Filter(pages []model.Page) []model.Page {
	if !r.HasHeadersOrFooters() {
		return pages
	}

	drop := make(map[LineRef]bool)
	for _, regions := range [][]HeaderFooterRegion{r.Headers, r.Footers} {
		for _, region := range regions {
			for _, ref := range region.Lines {
				drop[ref] = true
			}
		}
	}

	out := make([]model.Page, len(pages))
	for p, page := range pages {
		kept := make([]model.Line, 0, len(page.Lines))
		// dropped[i] counts removed lines among the first i
		dropped := make([]int, len(page.Lines)+1)
		for i, line := range page.Lines {
			dropped[i+1] = dropped[i]
			if drop[LineRef{Page: p, Line: i}] {
				dropped[i+1]++
				continue
			}
			kept = append(kept, line)
		}

		var grids []model.TableGrid
		for _, g := range page.Tables {
			at := min(max(g.Anchor, 0), len(page.Lines))
			g.Anchor = at - dropped[at]
			grids = append(grids, g)
		}
		out[p] = model.Page{Lines: kept, Tables: grids}
	}
	return out
}

// HasHeaders reports whether any running header was found
func (r *HeaderFooterResult) HasHeaders() bool {
	return r != nil && len(r.Headers) > 0
}

// HasFooters reports whether any running footer was found
func (r *HeaderFooterResult) HasFooters() bool {
	return r != nil && len(r.Footers) > 0
}

func (r *HeaderFooterResult) HasHeadersOrFooters() bool {
	return r.HasHeaders() || r.HasFooters()
}

// Summary describes the detected regions on one line
func (r *HeaderFooterResult) Summary() string {
	if !r.HasHeadersOrFooters() {
		return "No headers or footers detected"
	}

	var parts []string
	if r.HasHeaders() {
		parts = append(parts, "Headers: "+joinRegionText(r.Headers))
	}
	if r.HasFooters() {
		parts = append(parts, "Footers: "+joinRegionText(r.Footers))
	}
	return strings.Join(parts, "; ")
}

func joinRegionText(regions []HeaderFooterRegion) string {
	texts := make([]string, len(regions))
	for i, region := range regions {
		texts[i] = region.Text
	}
	return strings.Join(texts, ", ")
}
