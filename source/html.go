package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/docstruct/model"
)

// HTMLDecoder reads HTML documents. Headings carry a "Heading N" style
// hint, list items get a bullet or number marker, and tables become grids
// anchored at their position among the lines. The whole document is one
// page.
type HTMLDecoder struct{}

// NewHTMLDecoder creates an HTML decoder
func NewHTMLDecoder() *HTMLDecoder {
	return &HTMLDecoder{}
}

// Decode parses the HTML file at path
func (d *HTMLDecoder) Decode(ctx context.Context, path string) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return d.DecodeReader(f)
}

// DecodeReader parses HTML from an io.Reader
func (d *HTMLDecoder) DecodeReader(r io.Reader) (*Extraction, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}

	w := &htmlWalker{}
	w.traverse(body)

	return &Extraction{Pages: []model.Page{w.page}}, nil
}

// listContext tracks one open ul/ol element
type listContext struct {
	ordered bool
	counter int
}

// htmlWalker accumulates lines and tables while walking the DOM
type htmlWalker struct {
	page  model.Page
	lists []listContext
}

func (w *htmlWalker) emit(line model.Line) {
	line.Text = NormalizeText(line.Text)
	w.page.Lines = append(w.page.Lines, line)
}

func (w *htmlWalker) emitText(text, style string) {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			w.emit(model.Line{Text: l, Style: style})
		}
	}
}

// blank ends the current block unless the last line already is blank
func (w *htmlWalker) blank() {
	n := len(w.page.Lines)
	if n == 0 || w.page.Lines[n-1].IsBlank() {
		return
	}
	w.page.Lines = append(w.page.Lines, model.TextLine(""))
}

// traverse recursively processes DOM nodes
func (w *htmlWalker) traverse(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if len(w.lists) == 0 {
			w.emitText(collapseSpace(n.Data), "")
		}
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.traverse(c)
		}
		return
	}

	if shouldSkipElement(n.Data) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.blank()
		level := int(n.Data[1] - '0')
		text := strings.ReplaceAll(textContent(n), "\n", " ")
		w.emitText(text, "Heading "+strconv.Itoa(level))
		w.blank()

	case "p", "div", "blockquote":
		if isBlockContainer(n) {
			w.children(n)
			return
		}
		w.blank()
		w.emitText(textContent(n), "")
		w.blank()

	case "pre":
		w.blank()
		w.emitText(rawText(n), "")
		w.blank()

	case "ul", "ol":
		if len(w.lists) == 0 {
			w.blank()
		}
		w.lists = append(w.lists, listContext{ordered: n.Data == "ol"})
		w.children(n)
		w.lists = w.lists[:len(w.lists)-1]
		if len(w.lists) == 0 {
			w.blank()
		}

	case "li":
		w.listItem(n)

	case "table":
		w.blank()
		if rows := parseTable(n); len(rows) > 0 {
			w.page.Tables = append(w.page.Tables, model.TableGrid{
				Rows:   rows,
				Anchor: len(w.page.Lines),
			})
		}

	case "hr":
		w.blank()

	case "br":
		return

	default:
		w.children(n)
	}
}

func (w *htmlWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.traverse(c)
	}
}

// listItem emits the item's own text with a marker, then any nested lists
func (w *htmlWalker) listItem(n *html.Node) {
	if len(w.lists) == 0 {
		// stray li outside a list
		w.emitText(textContent(n), "")
		return
	}

	ctx := &w.lists[len(w.lists)-1]
	ctx.counter++

	text := strings.ReplaceAll(directTextContent(n), "\n", " ")
	if text = strings.TrimSpace(text); text != "" {
		marker := "• "
		if ctx.ordered {
			marker = strconv.Itoa(ctx.counter) + ". "
		}
		w.emit(model.TextLine(marker + text))
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			w.traverse(c)
		}
	}
}

// parseTable extracts the cell grid of a table element. Nested tables are
// flattened into their cell's text.
func parseTable(table *html.Node) [][]string {
	var rows [][]string
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.Data == "tr" {
					if row := parseTableRow(r); len(row) > 0 {
						rows = append(rows, row)
					}
				}
			}
		case "tr":
			if row := parseTableRow(c); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func parseTableRow(tr *html.Node) []string {
	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, NormalizeText(textContent(c)))
		}
	}
	return row
}

// shouldSkipElement returns true if the element carries no readable content
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

// isBlockContainer returns true if the element has block-level children
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

var spaceRun = regexp.MustCompile(`\s+`)

// collapseSpace folds runs of HTML whitespace, including source newlines,
// into single spaces
func collapseSpace(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

// textContent returns the text of a node and its descendants. Source
// whitespace collapses; <br> becomes a newline.
func textContent(n *html.Node) string {
	var b strings.Builder
	textContentRecursive(n, &b)
	return strings.TrimSpace(b.String())
}

func textContentRecursive(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContentRecursive(c, b)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "tr", "td", "th":
			b.WriteString(" ")
		}
	}
}

// directTextContent returns a node's text, excluding nested block elements
func directTextContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(collapseSpace(c.Data))
		case c.Type == html.ElementNode:
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				textContentRecursive(c, &b)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// rawText returns preformatted text with its line breaks intact
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
