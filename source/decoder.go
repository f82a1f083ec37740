package source

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/docstruct/format"
	"github.com/tsawler/docstruct/model"
)

// ErrNoDecoder is returned when no decoder is registered for a source kind
var ErrNoDecoder = errors.New("no decoder registered")

// UnreadableError reports that a source could not be decoded
type UnreadableError struct {
	Path string
	Kind format.Kind
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("reading %s source %s: %v", e.Kind, e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Extraction is the decoded content of one source
type Extraction struct {
	// Pages are the logical pages in reading order
	Pages []model.Page
}

// LineCount returns the total number of lines across all pages
func (e *Extraction) LineCount() int {
	n := 0
	for _, p := range e.Pages {
		n += len(p.Lines)
	}
	return n
}

// Decoder reads a file into pages of lines
type Decoder interface {
	Decode(ctx context.Context, path string) (*Extraction, error)
}

// DecoderFunc adapts a function to the Decoder interface
type DecoderFunc func(ctx context.Context, path string) (*Extraction, error)

// Decode calls f(ctx, path)
func (f DecoderFunc) Decode(ctx context.Context, path string) (*Extraction, error) {
	return f(ctx, path)
}

// Registry maps source kinds to decoders. A Registry is not safe for
// concurrent registration; populate it before use.
type Registry struct {
	decoders map[format.Kind]Decoder
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[format.Kind]Decoder),
	}
}

// NewDefaultRegistry creates a registry with the built-in text and HTML
// decoders
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	text := NewTextDecoder()
	r.Register(format.TXT, text)
	r.Register(format.Markdown, text)
	r.Register(format.HTML, NewHTMLDecoder())
	return r
}

// Register sets the decoder for a kind, replacing any previous one
func (r *Registry) Register(kind format.Kind, d Decoder) {
	r.decoders[kind] = d
}

// Get retrieves the decoder for a kind
func (r *Registry) Get(kind format.Kind) (Decoder, bool) {
	d, ok := r.decoders[kind]
	return d, ok
}

// Kinds returns the registered kinds in ascending order
func (r *Registry) Kinds() []format.Kind {
	kinds := make([]format.Kind, 0, len(r.decoders))
	for k := range r.decoders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Clone returns a copy of the registry
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for k, d := range r.decoders {
		c.decoders[k] = d
	}
	return c
}

// Decode looks up the decoder for kind and runs it. Every failure is
// returned as an *UnreadableError.
func (r *Registry) Decode(ctx context.Context, kind format.Kind, path string) (*Extraction, error) {
	d, ok := r.Get(kind)
	if !ok {
		return nil, &UnreadableError{Path: path, Kind: kind, Err: ErrNoDecoder}
	}

	ext, err := d.Decode(ctx, path)
	if err != nil {
		var ue *UnreadableError
		if errors.As(err, &ue) {
			return nil, err
		}
		return nil, &UnreadableError{Path: path, Kind: kind, Err: err}
	}
	if ext == nil {
		ext = &Extraction{}
	}
	return ext, nil
}
