package docstruct

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tsawler/docstruct/format"
	"github.com/tsawler/docstruct/layout"
	"github.com/tsawler/docstruct/meta"
	"github.com/tsawler/docstruct/model"
	"github.com/tsawler/docstruct/source"
)

// ErrorHeading is the heading of the document produced when a source cannot
// be decoded
const ErrorHeading = "Conversion Error"

// UnsupportedSourceKindError reports a file whose extension names no
// supported source kind
type UnsupportedSourceKindError struct {
	Filename string
}

func (e *UnsupportedSourceKindError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, format.ErrUnsupportedKind)
}

func (e *UnsupportedSourceKindError) Unwrap() error {
	return format.ErrUnsupportedKind
}

// Converter provides a fluent interface for converting one source. Each
// configuration method returns a new Converter, so a configured Converter
// can be shared between goroutines and reused as a template.
type Converter struct {
	// Source
	filename string
	kind     format.Kind

	// In-memory input (FromPages)
	pages    []model.Page
	inMemory bool

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		kind:     c.kind,
		pages:    c.pages,
		inMemory: c.inMemory,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// ============================================================================
// Options
// ============================================================================

// WithRegistry sets the decoders used to read the source. The registry is
// copied; later registrations on r have no effect.
func (c *Converter) WithRegistry(r *source.Registry) *Converter {
	n := c.clone()
	if r != nil {
		n.options.registry = r.Clone()
	} else {
		n.options.registry = nil
	}
	return n
}

// WithDecoder registers a decoder for one source kind on top of the current
// registry.
func (c *Converter) WithDecoder(kind format.Kind, d source.Decoder) *Converter {
	n := c.clone()
	r := n.options.sourceRegistry().Clone()
	r.Register(kind, d)
	n.options.registry = r
	return n
}

// WithAssemblerConfig replaces the whole assembly configuration.
func (c *Converter) WithAssemblerConfig(config layout.AssemblerConfig) *Converter {
	n := c.clone()
	n.options.assembler = config
	return n
}

// WithClassifierConfig replaces the line classification policy.
func (c *Converter) WithClassifierConfig(config layout.ClassifierConfig) *Converter {
	n := c.clone()
	n.options.assembler.Classifier = config
	return n
}

// WithFeatureConfig replaces the line feature configuration.
func (c *Converter) WithFeatureConfig(config layout.FeatureConfig) *Converter {
	n := c.clone()
	n.options.assembler.Features = config
	return n
}

// WithoutPageBreaks joins pages without page break blocks.
func (c *Converter) WithoutPageBreaks() *Converter {
	n := c.clone()
	n.options.assembler.PageBreaks = false
	return n
}

// StyleHints forces style-hinted classification on or off. By default it
// is on for DOCX and HTML sources, whose decoders report paragraph styles.
func (c *Converter) StyleHints(enabled bool) *Converter {
	n := c.clone()
	n.options.styleHints = &enabled
	return n
}

// StripHeadersFooters forces removal of running headers, footers and page
// numbers on or off. By default it is on for PDF sources.
func (c *Converter) StripHeadersFooters(enabled bool) *Converter {
	n := c.clone()
	n.options.stripFurniture = &enabled
	return n
}

// WithMetadataExtractor sets how metadata is derived from the source name.
func (c *Converter) WithMetadataExtractor(e *meta.Extractor) *Converter {
	n := c.clone()
	n.options.extractor = e
	return n
}

// Kind returns the source kind detected from the filename.
func (c *Converter) Kind() format.Kind {
	return c.kind
}

// Filename returns the source name the Converter was created with.
func (c *Converter) Filename() string {
	return c.filename
}

// ============================================================================
// Terminal operations
// ============================================================================

// Document decodes the source and assembles it into a document.
//
// A source that cannot be decoded does not fail the call: the returned
// document carries a "Conversion Error" heading and a paragraph naming the
// source and the cause, and the warnings include WarnDegraded. The error is
// non-nil only for an unsupported source kind or a cancelled context.
func (c *Converter) Document(ctx context.Context) (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	doc := &model.Document{Metadata: c.options.metaExtractor().Extract(c.filename)}

	pages, warnings, err := c.extract(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, warnings, ctxErr
		}
		cause := err
		var ue *source.UnreadableError
		if errors.As(err, &ue) {
			cause = ue.Err
		}
		log.Warn().Err(err).Str("source", c.filename).Msg("conversion degraded")
		doc.Blocks = ErrorBlocks(doc.Metadata.SourceFilename, cause)
		warnings = append(warnings, Warning{
			Code:    WarnDegraded,
			Message: fmt.Sprintf("unable to read %s: %v", doc.Metadata.SourceFilename, cause),
		})
		return doc, warnings, nil
	}

	doc.Blocks = c.assembler().Assemble(pages)
	if len(doc.Blocks) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnEmpty,
			Message: fmt.Sprintf("%s produced no content", doc.Metadata.SourceFilename),
		})
	}

	log.Debug().
		Str("source", c.filename).
		Int("blocks", len(doc.Blocks)).
		Int("headings", doc.Count(model.BlockHeading)).
		Msg("assembled document")

	return doc, warnings, nil
}

// Markdown converts the source and renders the preamble and body.
func (c *Converter) Markdown(ctx context.Context) (string, []Warning, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return "", warnings, err
	}
	md, err := doc.Markdown()
	if err != nil {
		return "", warnings, err
	}
	return md, warnings, nil
}

// Blocks converts the source and returns only the block sequence.
func (c *Converter) Blocks(ctx context.Context) ([]model.Block, []Warning, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return doc.Blocks, warnings, nil
}

// Pages decodes the source without assembling it. Unlike Document, a decode
// failure is returned as an error.
func (c *Converter) Pages(ctx context.Context) ([]model.Page, error) {
	if c.err != nil {
		return nil, c.err
	}
	pages, _, err := c.extract(ctx)
	return pages, err
}

// Trace decodes the source and reports how every line was classified. It is
// a debugging aid; a decode failure is returned as an error.
func (c *Converter) Trace(ctx context.Context) ([]layout.LineTrace, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	pages, warnings, err := c.extract(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return c.assembler().Trace(pages), warnings, nil
}

// ErrorBlocks returns the blocks of the document produced for a source that
// could not be decoded.
func ErrorBlocks(name string, cause error) []model.Block {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return []model.Block{
		model.Heading(model.MinHeadingLevel, ErrorHeading),
		model.Blank(),
		model.Paragraph(fmt.Sprintf("Unable to read %s: %s", name, msg)),
	}
}

// extract returns the pages to assemble, decoding the file when needed.
func (c *Converter) extract(ctx context.Context) ([]model.Page, []Warning, error) {
	if c.inMemory {
		return c.pages, nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if detected, ok := sniffKind(c.filename, c.kind); ok {
		log.Warn().
			Str("source", c.filename).
			Str("extension_kind", c.kind.String()).
			Str("content_kind", detected.String()).
			Msg("content does not match extension")
		warnings = append(warnings, Warning{
			Code:    WarnKindMismatch,
			Message: fmt.Sprintf("%s has a %s extension but looks like %s", c.filename, c.kind, detected),
		})
	}

	log.Debug().Str("source", c.filename).Str("kind", c.kind.String()).Msg("decoding source")

	ext, err := c.options.sourceRegistry().Decode(ctx, c.kind, c.filename)
	if err != nil {
		return nil, warnings, err
	}

	log.Debug().
		Str("source", c.filename).
		Int("pages", len(ext.Pages)).
		Int("lines", ext.LineCount()).
		Msg("decoded source")

	return ext.Pages, warnings, nil
}

// assembler builds the assembler for the source kind. Structured sources
// report paragraph styles, word processor output additionally promotes long
// unterminated lines, and paginated output carries running headers.
func (c *Converter) assembler() *layout.Assembler {
	config := c.options.assembler
	switch c.kind {
	case format.DOCX:
		config.UseStyleHints = true
		config.Styled.PromoteLongUnterminated = true
	case format.HTML:
		config.UseStyleHints = true
	case format.PDF:
		config.StripHeadersFooters = true
	}
	if c.options.styleHints != nil {
		config.UseStyleHints = *c.options.styleHints
	}
	if c.options.stripFurniture != nil {
		config.StripHeadersFooters = *c.options.stripFurniture
	}
	return layout.NewAssemblerWithConfig(config)
}

// sniffKind inspects the file content. It reports a kind only when the
// content is recognizable and disagrees with the extension.
func sniffKind(path string, kind format.Kind) (format.Kind, bool) {
	f, err := os.Open(path)
	if err != nil {
		return format.Unknown, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return format.Unknown, false
	}

	detected, err := format.DetectFromReader(f, info.Size())
	if err != nil || detected == format.Unknown || detected == kind {
		return format.Unknown, false
	}
	return detected, true
}
