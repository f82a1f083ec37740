// Package layout infers document structure from flat text lines.
//
// Lines arrive grouped by page, optionally carrying visual attributes. The
// package classifies each line as a heading, list item, prose fragment or
// blank and folds the result into a block sequence.
//
// # Assembly
//
// The [Assembler] drives every stage for a whole document:
//
//	assembler := layout.NewAssembler()
//	blocks := assembler.Assemble(pages)
//
// For a single page of plain lines:
//
//	blocks := assembler.AssembleLines(model.LinesFromText(text))
//
// # Stages
//
//   - [HeaderFooterDetector] - finds running headers, footers and page numbers (opt-in)
//   - [FeatureAnalyzer] - computes per-line features (length, markers, punctuation, size ratio)
//   - [Classifier] - applies the ordered decision policy to one line
//   - [StyledClassifier] - honors source style hints before the shared policy
//   - [ParagraphAccumulator] - merges prose fragments into paragraphs
//   - [PostPass] - normalizes blank separators
//
// # Decision Policy
//
// The [Classifier] checks rules in a fixed order and the first match wins:
//
//  1. blank line or separator line ("---", "* * *")
//  2. heading catalogue (section names, guidance questions, labeled fields)
//  3. short line ending in a colon (always level 2)
//  4. bullet glyph or enumeration marker
//  5. character size well above the page mean, at any length
//  6. prose
//
// Textual rules always run before the size signal. Colon headings are
// always level 2. Other heading levels come from an ordered list of
// [LevelRule] values; headings no rule matches get level 2.
//
// # Configuration
//
// The catalogue, level rules and thresholds are plain data:
//
//	config := layout.DefaultAssemblerConfig()
//	config.Classifier.LargeSizeRatio = 1.3
//	config.Classifier.BoldPromotes = true
//	assembler := layout.NewAssemblerWithConfig(config)
//
// Paginated extractor output often repeats a title and a page number on
// every page. Set StripHeadersFooters to drop those lines before
// classification; table anchors are adjusted to match.
//
// The two length thresholds, [ShortLineLimit] and [ColonHeadingLimit], are
// separate settings.
package layout
