package source

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/docstruct/format"
	"github.com/tsawler/docstruct/model"
)

// writeFile creates a file in a temporary directory
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func pageTexts(p model.Page) []string {
	var out []string
	for _, l := range p.Lines {
		if !l.IsBlank() {
			out = append(out, l.Text)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ============================================================================
// Text Tests
// ============================================================================

func TestPagesFromText(t *testing.T) {
	pages := PagesFromText("page one\nline two\fpage two\f")
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if got := pageTexts(pages[0]); !equalStrings(got, []string{"page one", "line two"}) {
		t.Errorf("page 0 = %v", got)
	}
	if got := pageTexts(pages[1]); !equalStrings(got, []string{"page two"}) {
		t.Errorf("page 1 = %v", got)
	}
}

func TestPagesFromTextSinglePage(t *testing.T) {
	pages := PagesFromText("")
	if len(pages) != 1 {
		t.Errorf("empty text: got %d pages, want 1", len(pages))
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bom", "\uFEFFtitle", "title"},
		{"nfc", "e\u0301", "\u00e9"},
		{"invalid utf8", "a\xffb", "a\uFFFDb"},
		{"plain", "前言", "前言"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextDecoder(t *testing.T) {
	path := writeFile(t, "notes.txt", "前言\r\nHello\r\nworld.\r\n")

	ext, err := NewTextDecoder().Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := pageTexts(ext.Pages[0]); !equalStrings(got, []string{"前言", "Hello", "world."}) {
		t.Errorf("lines = %v", got)
	}
	if ext.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", ext.LineCount())
	}
}

func TestTextDecoderErrors(t *testing.T) {
	d := NewTextDecoder()

	if _, err := d.Decode(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := writeFile(t, "a.txt", "x")
	if _, err := d.Decode(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: err = %v, want context.Canceled", err)
	}
}

// ============================================================================
// HTML Tests
// ============================================================================

const sampleHTML = `<html><head><title>Ignored</title><style>p { color: red; }</style></head><body>
<h1>Foreword</h1>
<p>Hello
   world.</p>
<ul><li>one</li><li>two<ul><li>nested</li></ul></li></ul>
<ol><li>first</li><li>second</li></ol>
<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2<br>3</td></tr></table>
<p>After<br>break</p>
<script>var x = 1;</script>
</body></html>`

func TestHTMLDecoder(t *testing.T) {
	ext, err := NewHTMLDecoder().DecodeReader(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("DecodeReader() error: %v", err)
	}
	if len(ext.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(ext.Pages))
	}
	page := ext.Pages[0]

	want := []string{
		"Foreword", "Hello world.",
		"• one", "• two", "• nested",
		"1. first", "2. second",
		"After", "break",
	}
	if got := pageTexts(page); !equalStrings(got, want) {
		t.Errorf("lines = %q\nwant    %q", got, want)
	}

	if page.Lines[0].Style != "Heading 1" {
		t.Errorf("heading style = %q, want %q", page.Lines[0].Style, "Heading 1")
	}

	if len(page.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(page.Tables))
	}
	table := page.Tables[0]
	if table.Anchor != 11 {
		t.Errorf("table anchor = %d, want 11", table.Anchor)
	}
	if page.Lines[table.Anchor].Text != "After" {
		t.Errorf("table should precede %q, got %q", "After", page.Lines[table.Anchor].Text)
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "A" || table.Rows[1][1] != "2\n3" {
		t.Errorf("table rows = %q", table.Rows)
	}
}

func TestHTMLDecoderNoConsecutiveBlankLines(t *testing.T) {
	ext, err := NewHTMLDecoder().DecodeReader(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("DecodeReader() error: %v", err)
	}
	lines := ext.Pages[0].Lines
	for i := 1; i < len(lines); i++ {
		if lines[i].IsBlank() && lines[i-1].IsBlank() {
			t.Errorf("consecutive blank lines at %d", i)
		}
	}
}

func TestHTMLDecoderBareText(t *testing.T) {
	ext, err := NewHTMLDecoder().DecodeReader(strings.NewReader("just some text"))
	if err != nil {
		t.Fatalf("DecodeReader() error: %v", err)
	}
	if got := pageTexts(ext.Pages[0]); !equalStrings(got, []string{"just some text"}) {
		t.Errorf("lines = %q", got)
	}
}

func TestHTMLDecoderFile(t *testing.T) {
	path := writeFile(t, "page.html", "<h2>GPA:</h2><p>3.8</p>")
	ext, err := NewHTMLDecoder().Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if ext.Pages[0].Lines[0].Style != "Heading 2" {
		t.Errorf("style = %q, want Heading 2", ext.Pages[0].Lines[0].Style)
	}
}

// ============================================================================
// Command Tests
// ============================================================================

func TestCommandDecoderArgs(t *testing.T) {
	tests := []struct {
		argv []string
		want []string
	}{
		{[]string{"pdftotext", "{path}", "-"}, []string{"pdftotext", "/in/a.pdf", "-"}},
		{[]string{"tool", "--input={path}"}, []string{"tool", "--input=/in/a.pdf"}},
		{[]string{"cat"}, []string{"cat", "/in/a.pdf"}},
		{nil, []string{}},
	}

	for _, tt := range tests {
		got := NewCommandDecoder(tt.argv...).Args("/in/a.pdf")
		if !equalStrings(got, tt.want) {
			t.Errorf("Args(%v) = %v, want %v", tt.argv, got, tt.want)
		}
	}
}

func TestCommandDecoder(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	path := writeFile(t, "doc.pdf", "Page one\fPage two\f")
	ext, err := NewCommandDecoder("cat", "{path}").Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(ext.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(ext.Pages))
	}
	if got := pageTexts(ext.Pages[1]); !equalStrings(got, []string{"Page two"}) {
		t.Errorf("page 1 = %v", got)
	}
}

func TestCommandDecoderFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	path := writeFile(t, "doc.pdf", "x")
	d := NewCommandDecoder("sh", "-c", "echo boom >&2; exit 3")
	_, err := d.Decode(context.Background(), path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should include stderr", err)
	}
}

func TestCommandDecoderTimeout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	path := writeFile(t, "doc.pdf", "x")
	d := NewCommandDecoder("sh", "-c", "exec sleep 5", "{path}").WithTimeout(50 * time.Millisecond)
	_, err := d.Decode(context.Background(), path)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestCommandDecoderMissingSource(t *testing.T) {
	d := NewCommandDecoder("cat")
	if _, err := d.Decode(context.Background(), filepath.Join(t.TempDir(), "none.pdf")); err == nil {
		t.Error("expected error for missing source")
	}
	if _, err := NewCommandDecoder().Decode(context.Background(), "x"); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("err = %v, want ErrEmptyCommand", err)
	}
}

// ============================================================================
// Registry Tests
// ============================================================================

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	kinds := r.Kinds()
	want := []format.Kind{format.TXT, format.Markdown, format.HTML}
	if len(kinds) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Kinds()[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}

	for _, k := range format.Binary() {
		if _, ok := r.Get(k); ok {
			t.Errorf("%v should have no default decoder", k)
		}
	}
}

func TestRegistryDecodeErrors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Decode(context.Background(), format.PDF, "a.pdf")
	var ue *UnreadableError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UnreadableError", err)
	}
	if !errors.Is(err, ErrNoDecoder) {
		t.Errorf("err = %v, want ErrNoDecoder", err)
	}
	if ue.Kind != format.PDF || ue.Path != "a.pdf" {
		t.Errorf("UnreadableError = %+v", ue)
	}

	boom := errors.New("boom")
	r.Register(format.PDF, DecoderFunc(func(ctx context.Context, path string) (*Extraction, error) {
		return nil, boom
	}))
	_, err = r.Decode(context.Background(), format.PDF, "a.pdf")
	if !errors.As(err, &ue) || !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "a.pdf") {
		t.Errorf("error %q should name the source", err)
	}
}

func TestRegistryDecodeNilExtraction(t *testing.T) {
	r := NewRegistry()
	r.Register(format.TXT, DecoderFunc(func(ctx context.Context, path string) (*Extraction, error) {
		return nil, nil
	}))
	ext, err := r.Decode(context.Background(), format.TXT, "a.txt")
	if err != nil || ext == nil {
		t.Errorf("Decode() = %v, %v; want empty extraction", ext, err)
	}
}

func TestRegistryClone(t *testing.T) {
	r := NewDefaultRegistry()
	c := r.Clone()
	c.Register(format.PDF, NewCommandDecoder("pdftotext", "{path}", "-"))

	if _, ok := r.Get(format.PDF); ok {
		t.Error("registering on a clone should not affect the original")
	}
	if _, ok := c.Get(format.PDF); !ok {
		t.Error("clone should have the new decoder")
	}
}
