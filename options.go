package docstruct

import (
	"github.com/tsawler/docstruct/layout"
	"github.com/tsawler/docstruct/meta"
	"github.com/tsawler/docstruct/source"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Decoders by source kind; nil means source.NewDefaultRegistry()
	registry *source.Registry

	// Assembly pipeline configuration. Style hints are switched on per
	// source kind at conversion time.
	assembler layout.AssemblerConfig

	// Metadata derivation
	extractor *meta.Extractor

	// styleHints and stripFurniture override the per-kind defaults when set
	styleHints     *bool
	stripFurniture *bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		assembler: layout.DefaultAssemblerConfig(),
	}
}

// clone creates a copy of ConvertOptions. The registry is shared until a
// method that mutates it clones it first.
func (o ConvertOptions) clone() ConvertOptions {
	newOpts := ConvertOptions{
		registry:  o.registry,
		assembler: o.assembler,
		extractor: o.extractor,
	}

	// Deep copy the classifier tables
	newOpts.assembler.Classifier.Catalogue = append([]layout.HeadingPattern(nil), o.assembler.Classifier.Catalogue...)
	newOpts.assembler.Classifier.LevelRules = append([]layout.LevelRule(nil), o.assembler.Classifier.LevelRules...)
	newOpts.assembler.Classifier.ListMarkers = append([]layout.ListMarker(nil), o.assembler.Classifier.ListMarkers...)
	newOpts.assembler.Features.Bullets = append([]string(nil), o.assembler.Features.Bullets...)

	if o.styleHints != nil {
		v := *o.styleHints
		newOpts.styleHints = &v
	}
	if o.stripFurniture != nil {
		v := *o.stripFurniture
		newOpts.stripFurniture = &v
	}

	return newOpts
}

func (o ConvertOptions) sourceRegistry() *source.Registry {
	if o.registry == nil {
		return source.NewDefaultRegistry()
	}
	return o.registry
}

func (o ConvertOptions) metaExtractor() *meta.Extractor {
	if o.extractor == nil {
		return meta.NewExtractor()
	}
	return o.extractor
}
