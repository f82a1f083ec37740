// Package config loads docstruct settings from a YAML or JSON file and
// resolves them into runtime options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/tsawler/docstruct"
	"github.com/tsawler/docstruct/format"
	"github.com/tsawler/docstruct/layout"
	"github.com/tsawler/docstruct/source"
)

// DefaultOutputDir is where converted files are written by default
const DefaultOutputDir = "converted_markdown"

// DefaultDecoderTimeout bounds each external decoder run
const DefaultDecoderTimeout = 2 * time.Minute

// File is the configuration file schema. Zero values leave the defaults in
// place; pointers distinguish an explicit false from an absent key.
type File struct {
	Output     string   `yaml:"output" json:"output"`
	Recursive  *bool    `yaml:"recursive" json:"recursive"`
	Workers    int      `yaml:"workers" json:"workers"`
	PageBreaks *bool    `yaml:"pageBreaks" json:"pageBreaks"`
	Extensions []string `yaml:"extensions" json:"extensions"`

	// StripHeadersFooters overrides the per-kind default, which strips
	// running headers and page numbers from PDF output only
	StripHeadersFooters *bool `yaml:"stripHeadersFooters" json:"stripHeadersFooters"`

	Classifier struct {
		ShortLineLimit    int     `yaml:"shortLineLimit" json:"shortLineLimit"`
		ColonHeadingLimit int     `yaml:"colonHeadingLimit" json:"colonHeadingLimit"`
		LargeSizeRatio    float64 `yaml:"largeSizeRatio" json:"largeSizeRatio"`
		SmallSizeRatio    float64 `yaml:"smallSizeRatio" json:"smallSizeRatio"`
		TopLevelSizeRatio float64 `yaml:"topLevelSizeRatio" json:"topLevelSizeRatio"`
		BoldPromotes      *bool   `yaml:"boldPromotes" json:"boldPromotes"`
	} `yaml:"classifier" json:"classifier"`

	// Decoders maps an extension to an external command. "{path}" in the
	// argument list is replaced by the source path.
	Decoders map[string][]string `yaml:"decoders" json:"decoders"`

	// DecoderTimeout is a duration string such as "90s"
	DecoderTimeout string `yaml:"decoderTimeout" json:"decoderTimeout"`
}

// Load reads YAML or JSON into File. The format follows the extension;
// other extensions try YAML, then JSON.
func Load(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return f, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &f); err != nil {
			return f, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &f); err != nil {
			if jerr := json.Unmarshal(b, &f); jerr != nil {
				return f, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return f, nil
}

// Settings are the resolved runtime options
type Settings struct {
	Output     string
	Recursive  bool
	Workers    int
	PageBreaks bool

	// Extensions limits batch discovery; empty means every supported kind
	Extensions []string

	// StripHeadersFooters is nil to keep the per-kind default
	StripHeadersFooters *bool

	Features   layout.FeatureConfig
	Classifier layout.ClassifierConfig

	// Decoders are external commands per binary source kind
	Decoders       map[format.Kind][]string
	DecoderTimeout time.Duration
}

// Default returns the built-in settings. Binary sources are read through
// the usual command line extractors; a missing tool degrades the affected
// documents rather than failing the run.
func Default() Settings {
	return Settings{
		Output:     DefaultOutputDir,
		Workers:    runtime.NumCPU(),
		PageBreaks: true,
		Features:   layout.DefaultFeatureConfig(),
		Classifier: layout.DefaultClassifierConfig(),
		Decoders: map[format.Kind][]string{
			format.PDF:  {"pdftotext", "-enc", "UTF-8", source.PathPlaceholder, "-"},
			format.DOC:  {"antiword", "-w", "0", source.PathPlaceholder},
			format.DOCX: {"pandoc", "--wrap=none", "-t", "plain", source.PathPlaceholder},
		},
		DecoderTimeout: DefaultDecoderTimeout,
	}
}

// Apply overlays the values set in f onto s
func (s *Settings) Apply(f File) error {
	if f.Output != "" {
		s.Output = f.Output
	}
	if f.Recursive != nil {
		s.Recursive = *f.Recursive
	}
	if f.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative")
	}
	if f.Workers > 0 {
		s.Workers = f.Workers
	}
	if f.PageBreaks != nil {
		s.PageBreaks = *f.PageBreaks
	}
	if len(f.Extensions) > 0 {
		s.Extensions = append([]string(nil), f.Extensions...)
	}
	if f.StripHeadersFooters != nil {
		v := *f.StripHeadersFooters
		s.StripHeadersFooters = &v
	}

	c := f.Classifier
	if c.ShortLineLimit < 0 || c.ColonHeadingLimit < 0 || c.LargeSizeRatio < 0 || c.SmallSizeRatio < 0 || c.TopLevelSizeRatio < 0 {
		return fmt.Errorf("config: classifier limits must not be negative")
	}
	if c.ShortLineLimit > 0 {
		s.Features.ShortLineLimit = c.ShortLineLimit
	}
	if c.ColonHeadingLimit > 0 {
		s.Classifier.ColonHeadingLimit = c.ColonHeadingLimit
	}
	if c.LargeSizeRatio > 0 {
		s.Classifier.LargeSizeRatio = c.LargeSizeRatio
	}
	if c.SmallSizeRatio > 0 {
		s.Classifier.SmallSizeRatio = c.SmallSizeRatio
	}
	if c.TopLevelSizeRatio > 0 {
		s.Classifier.TopLevelSizeRatio = c.TopLevelSizeRatio
	}
	if c.BoldPromotes != nil {
		s.Classifier.BoldPromotes = *c.BoldPromotes
	}
	if s.Classifier.SmallSizeRatio >= s.Classifier.LargeSizeRatio {
		return fmt.Errorf("config: classifier.smallSizeRatio (%g) must be below largeSizeRatio (%g)",
			s.Classifier.SmallSizeRatio, s.Classifier.LargeSizeRatio)
	}

	if len(f.Decoders) > 0 {
		decoders := make(map[format.Kind][]string, len(s.Decoders)+len(f.Decoders))
		for k, argv := range s.Decoders {
			decoders[k] = argv
		}
		for ext, argv := range f.Decoders {
			kind := format.Detect("x." + strings.TrimPrefix(ext, "."))
			if kind == format.Unknown {
				return fmt.Errorf("config: decoders: unsupported extension %q", ext)
			}
			if len(argv) == 0 {
				delete(decoders, kind)
				continue
			}
			decoders[kind] = append([]string(nil), argv...)
		}
		s.Decoders = decoders
	}

	if f.DecoderTimeout != "" {
		d, err := time.ParseDuration(f.DecoderTimeout)
		if err != nil {
			return fmt.Errorf("config: decoderTimeout: %w", err)
		}
		s.DecoderTimeout = d
	}
	return nil
}

// Registry returns the built-in decoders plus the configured commands
func (s Settings) Registry() *source.Registry {
	r := source.NewDefaultRegistry()
	for _, kind := range s.decoderKinds() {
		r.Register(kind, source.NewCommandDecoder(s.Decoders[kind]...).WithTimeout(s.DecoderTimeout))
	}
	return r
}

// AssemblerConfig returns the assembly configuration for the settings
func (s Settings) AssemblerConfig() layout.AssemblerConfig {
	config := layout.DefaultAssemblerConfig()
	config.Features = s.Features
	config.Classifier = s.Classifier
	config.PageBreaks = s.PageBreaks
	return config
}

// Configure applies the settings to a converter. The registry is built once
// and shared by every converter it returns.
func (s Settings) Configure() func(*docstruct.Converter) *docstruct.Converter {
	registry := s.Registry()
	assembler := s.AssemblerConfig()
	strip := s.StripHeadersFooters
	return func(c *docstruct.Converter) *docstruct.Converter {
		c = c.WithRegistry(registry).WithAssemblerConfig(assembler)
		if strip != nil {
			c = c.StripHeadersFooters(*strip)
		}
		return c
	}
}

// DecoderSummary lists the configured commands, one "kind: argv" per entry
func (s Settings) DecoderSummary() []string {
	var out []string
	for _, kind := range s.decoderKinds() {
		out = append(out, fmt.Sprintf("%s: %s", kind.Name(), strings.Join(s.Decoders[kind], " ")))
	}
	return out
}

func (s Settings) decoderKinds() []format.Kind {
	kinds := make([]format.Kind, 0, len(s.Decoders))
	for k := range s.Decoders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
