package layout

import (
	"math/rand"
	"testing"

	"github.com/tsawler/docstruct/model"
)

func TestAssembleLines(t *testing.T) {
	lines := model.LinesFromText("前言\nHello\nworld.\n\nGPA:\n3.8/4.0\n• item one\n• item two\nAfter list.")

	got := NewAssembler().AssembleLines(lines)
	assertBlocks(t, got, []model.Block{
		model.Heading(1, "前言"),
		model.Blank(),
		model.Paragraph("Hello world."),
		model.Blank(),
		model.Heading(2, "GPA:"),
		model.Blank(),
		model.Paragraph("3.8/4.0"),
		model.Blank(),
		model.ListItem("item one"),
		model.ListItem("item two"),
		model.Blank(),
		model.Paragraph("After list."),
	})
}

func TestAssembleEmpty(t *testing.T) {
	a := NewAssembler()
	if got := a.Assemble(nil); len(got) != 0 {
		t.Errorf("Assemble(nil) = %v", describe(got))
	}
	if got := a.AssembleLines(model.LinesFromText("\n\n  \n")); len(got) != 0 {
		t.Errorf("blank lines produced %v", describe(got))
	}
}

func TestAssembleTables(t *testing.T) {
	rows := [][]string{{"A", "B"}, {"1", "2"}}
	table := model.Table([][]string{{"A", "B"}, {"---", "---"}, {"1", "2"}})

	tests := []struct {
		name   string
		anchor int
		want   []model.Block
	}{
		{
			name:   "between lines",
			anchor: 1,
			want: []model.Block{
				model.Paragraph("Intro text."), model.Blank(),
				table, model.Blank(),
				model.Paragraph("More."),
			},
		},
		{
			name:   "negative anchor",
			anchor: -3,
			want: []model.Block{
				table, model.Blank(),
				model.Paragraph("Intro text. More."),
			},
		},
		{
			name:   "past the end",
			anchor: 99,
			want: []model.Block{
				model.Paragraph("Intro text. More."), model.Blank(),
				table,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := model.Page{
				Lines:  model.LinesFromText("Intro text.\nMore."),
				Tables: []model.TableGrid{{Rows: rows, Anchor: tt.anchor}},
			}
			assertBlocks(t, NewAssembler().Assemble([]model.Page{page}), tt.want)
		})
	}
}

func TestAssembleTableClosesList(t *testing.T) {
	page := model.Page{
		Lines:  model.LinesFromText("• a\n• b\nafter"),
		Tables: []model.TableGrid{{Rows: [][]string{{"H"}}, Anchor: 2}},
	}
	assertBlocks(t, NewAssembler().Assemble([]model.Page{page}), []model.Block{
		model.ListItem("a"),
		model.ListItem("b"),
		model.Blank(),
		model.Table([][]string{{"H"}, {"---"}}),
		model.Blank(),
		model.Paragraph("after"),
	})
}

func TestAssemblePageBreaks(t *testing.T) {
	pages := []model.Page{
		{Lines: model.LinesFromText("Page one.")},
		{Lines: model.LinesFromText("\n  \n")},
		{Lines: model.LinesFromText("Page two.")},
	}

	assertBlocks(t, NewAssembler().Assemble(pages), []model.Block{
		model.Paragraph("Page one."),
		model.Blank(),
		model.PageBreak(),
		model.Blank(),
		model.Paragraph("Page two."),
	})

	config := DefaultAssemblerConfig()
	config.PageBreaks = false
	assertBlocks(t, NewAssemblerWithConfig(config).Assemble(pages), []model.Block{
		model.Paragraph("Page one."),
		model.Blank(),
		model.Paragraph("Page two."),
	})
}

func TestAssembleParagraphsDoNotSpanPages(t *testing.T) {
	config := DefaultAssemblerConfig()
	config.PageBreaks = false
	pages := []model.Page{
		{Lines: model.LinesFromText("first half")},
		{Lines: model.LinesFromText("second half")},
	}
	got := NewAssemblerWithConfig(config).Assemble(pages)
	if n := countKind(got, model.BlockParagraph); n != 2 {
		t.Errorf("got %d paragraphs, want 2: %v", n, describe(got))
	}
}

func TestAssembleVisualHeadings(t *testing.T) {
	page := model.Page{Lines: []model.Line{
		model.SizedLine("Big Title", 24),
		model.SizedLine("body text here that is long enough.", 10),
	}}

	assertBlocks(t, NewAssembler().Assemble([]model.Page{page}), []model.Block{
		model.Heading(2, "Big Title"),
		model.Blank(),
		model.Paragraph("body text here that is long enough."),
	})
}

func TestAssembleStyleHints(t *testing.T) {
	page := model.Page{Lines: []model.Line{
		{Text: "Report", Style: "Title"},
		{Text: "Body text.", Style: "Normal"},
	}}

	plain := NewAssembler().Assemble([]model.Page{page})
	if plain[0].Kind != model.BlockParagraph {
		t.Errorf("without hints: first block = %v, want Paragraph", plain[0].Kind)
	}

	config := DefaultAssemblerConfig()
	config.UseStyleHints = true
	assertBlocks(t, NewAssemblerWithConfig(config).Assemble([]model.Page{page}), []model.Block{
		model.Heading(1, "Report"),
		model.Blank(),
		model.Paragraph("Body text."),
	})
}

func TestTrace(t *testing.T) {
	pages := []model.Page{
		{Lines: model.LinesFromText("GPA:\ntext")},
		{Lines: model.LinesFromText("• item")},
	}

	traces := NewAssembler().Trace(pages)
	if len(traces) != 3 {
		t.Fatalf("got %d traces, want 3", len(traces))
	}

	want := []struct {
		page, line int
		kind       model.BlockKind
	}{
		{0, 0, model.BlockHeading},
		{0, 1, model.BlockParagraph},
		{1, 0, model.BlockListItem},
	}
	for i, w := range want {
		tr := traces[i]
		if tr.Page != w.page || tr.Line != w.line || tr.Classification.Kind != w.kind {
			t.Errorf("trace %d = page %d line %d %v, want page %d line %d %v",
				i, tr.Page, tr.Line, tr.Classification.Kind, w.page, w.line, w.kind)
		}
	}
	if !traces[0].Features.EndsWithColon {
		t.Error("trace features should be recorded")
	}
}

var sampleLines = []string{
	"", "", "前言", "Foreword", "GPA:", "雅思：7.0", "How should I prepare?",
	"• bullet", "- dash", "1. numbered", "一、 中文", "1.1 Scope", "Notes:",
	"plain prose", "more prose.", "句子，", "。", "---", "*",
}

func TestAssembleProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	a := NewAssembler()

	for i := 0; i < 300; i++ {
		var pages []model.Page
		for p := r.Intn(3) + 1; p > 0; p-- {
			var lines []model.Line
			for n := r.Intn(15); n > 0; n-- {
				size := 8 + r.Float64()*16
				if r.Intn(3) == 0 {
					lines = append(lines, model.TextLine(sampleLines[r.Intn(len(sampleLines))]))
				} else {
					lines = append(lines, model.SizedLine(sampleLines[r.Intn(len(sampleLines))], size))
				}
			}
			pages = append(pages, model.Page{Lines: lines})
		}

		got := a.Assemble(pages)
		if idx, problem := Validate(got); idx >= 0 {
			t.Fatalf("%s at %d in %v", problem, idx, describe(got))
		}

		again := PostPass(got)
		if len(again) != len(got) {
			t.Fatalf("post-pass not idempotent on assembled output %v", describe(got))
		}
		if len(got) > 0 && (got[0].IsBlank() || got[len(got)-1].IsBlank()) {
			t.Fatalf("leading or trailing blank in %v", describe(got))
		}
	}
}

func countKind(blocks []model.Block, kind model.BlockKind) int {
	n := 0
	for _, b := range blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}
