package layout

import (
	"github.com/tsawler/docstruct/model"
	"github.com/tsawler/docstruct/tables"
)

// AssemblerConfig holds configuration for document assembly. Each stage has
// its own sub-configuration.
type AssemblerConfig struct {
	// Feature analysis configuration
	Features FeatureConfig

	// Line classification configuration
	Classifier ClassifierConfig

	// Table formatting configuration
	Tables tables.Config

	// UseStyleHints wraps the classifier in a StyledClassifier so source
	// style names (Title, Heading N) decide heading levels
	UseStyleHints bool

	// Styled configures the StyledClassifier when UseStyleHints is set
	Styled StyledConfig

	// PageBreaks inserts a page break block between non-empty pages
	// Default: true
	PageBreaks bool

	// StripHeadersFooters removes running headers, footers and page numbers
	// before classification. Default: false
	StripHeadersFooters bool

	// HeaderFooter configures detection when StripHeadersFooters is set
	HeaderFooter HeaderFooterConfig
}

// DefaultAssemblerConfig returns a configuration with sensible defaults
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		Features:     DefaultFeatureConfig(),
		Classifier:   DefaultClassifierConfig(),
		Tables:       tables.DefaultConfig(),
		PageBreaks:   true,
		HeaderFooter: DefaultHeaderFooterConfig(),
	}
}

// Assembler drives feature analysis, classification, paragraph
// accumulation and table formatting over a document's pages, then runs the
// post-pass. An Assembler holds no per-document state; each call to
// Assemble uses its own accumulator, so one Assembler may serve many
// goroutines.
type Assembler struct {
	config     AssemblerConfig
	features   *FeatureAnalyzer
	classifier LineClassifier
	tables     *tables.Formatter
	furniture  *HeaderFooterDetector
}

// NewAssembler creates an assembler with default configuration
func NewAssembler() *Assembler {
	return NewAssemblerWithConfig(DefaultAssemblerConfig())
}

// NewAssemblerWithConfig creates an assembler with custom configuration
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	var classifier LineClassifier = NewClassifierWithConfig(config.Classifier)
	if config.UseStyleHints {
		classifier = NewStyledClassifier(classifier, config.Styled)
	}
	return &Assembler{
		config:     config,
		features:   NewFeatureAnalyzerWithConfig(config.Features),
		classifier: classifier,
		tables:     tables.NewFormatterWithConfig(config.Tables),
		furniture:  NewHeaderFooterDetectorWithConfig(config.HeaderFooter),
	}
}

// Config returns the assembler's configuration
func (a *Assembler) Config() AssemblerConfig {
	return a.config
}

// Assemble converts pages into a post-passed block sequence
func (a *Assembler) Assemble(pages []model.Page) []model.Block {
	var blocks []model.Block
	emitted := false

	for _, page := range a.prepare(pages) {
		pageBlocks := a.assemblePage(page)
		if !hasContent(pageBlocks) {
			continue
		}
		if emitted && a.config.PageBreaks {
			blocks = append(blocks, model.Blank(), model.PageBreak(), model.Blank())
		}
		blocks = append(blocks, pageBlocks...)
		emitted = true
	}

	return PostPass(blocks)
}

// AssembleLines is a convenience for a single page without tables
func (a *Assembler) AssembleLines(lines []model.Line) []model.Block {
	return a.Assemble([]model.Page{{Lines: lines}})
}

// LineTrace records how a single line was classified
type LineTrace struct {
	// Page and Line are 0-based positions in the input
	Page int
	Line int

	Text           string
	Features       Features
	Classification Classification
}

// Trace classifies every line without assembling blocks. Positions refer to
// the pages after header and footer removal.
func (a *Assembler) Trace(pages []model.Page) []LineTrace {
	var traces []LineTrace
	for p, page := range a.prepare(pages) {
		vc := NewVisualContext(page.Lines)
		for i, line := range page.Lines {
			f := a.features.Analyze(line, vc)
			traces = append(traces, LineTrace{
				Page:           p,
				Line:           i,
				Text:           line.Text,
				Features:       f,
				Classification: a.classifier.Classify(line, f),
			})
		}
	}
	return traces
}

// prepare removes page furniture when configured
func (a *Assembler) prepare(pages []model.Page) []model.Page {
	if !a.config.StripHeadersFooters {
		return pages
	}
	return a.furniture.Detect(pages).Filter(pages)
}

func (a *Assembler) assemblePage(page model.Page) []model.Block {
	vc := NewVisualContext(page.Lines)
	acc := NewParagraphAccumulator()
	anchored := a.anchorTables(page)

	var out []model.Block
	for i, line := range page.Lines {
		out = append(out, a.emitTables(acc, anchored[i])...)

		f := a.features.Analyze(line, vc)
		out = append(out, acc.Push(a.classifier.Classify(line, f))...)
	}
	out = append(out, a.emitTables(acc, anchored[len(page.Lines)])...)
	out = append(out, acc.Flush()...)

	return out
}

// anchorTables groups a page's tables by the line index they precede.
// Index len(lines) means after the last line.
func (a *Assembler) anchorTables(page model.Page) map[int][]model.TableGrid {
	anchored := make(map[int][]model.TableGrid)
	for _, t := range page.Tables {
		at := t.Anchor
		if at < 0 {
			at = 0
		}
		if at > len(page.Lines) {
			at = len(page.Lines)
		}
		anchored[at] = append(anchored[at], t)
	}
	return anchored
}

func (a *Assembler) emitTables(acc *ParagraphAccumulator, grids []model.TableGrid) []model.Block {
	var out []model.Block
	for _, g := range grids {
		block, ok := a.tables.Format(g.Rows)
		if !ok {
			continue
		}
		out = append(out, acc.Break()...)
		out = append(out, model.Blank(), block, model.Blank())
	}
	return out
}

func hasContent(blocks []model.Block) bool {
	for _, b := range blocks {
		if !b.IsBlank() {
			return true
		}
	}
	return false
}
