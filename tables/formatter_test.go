package tables

import (
	"testing"

	"github.com/tsawler/docstruct/model"
)

func TestFormat_HeaderSeparator(t *testing.T) {
	f := NewFormatter()
	block, ok := f.Format([][]string{{"A", "B"}, {"1", "2"}})
	if !ok {
		t.Fatal("Format() ok = false, want true")
	}
	if block.Kind != model.BlockTable {
		t.Fatalf("Kind = %v, want Table", block.Kind)
	}

	want := "| A | B |\n| --- | --- |\n| 1 | 2 |"
	if got := block.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestFormat_SeparatorMatchesHeader(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"header only", [][]string{{"a", "b", "c"}}},
		{"short data row", [][]string{{"a", "b", "c"}, {"1"}}},
		{"long data row", [][]string{{"a"}, {"1", "2", "3"}}},
		{"empty header", [][]string{{}, {"1", "2"}}},
	}

	f := NewFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, ok := f.Format(tt.rows)
			if !ok {
				t.Fatal("Format() ok = false")
			}
			if len(block.Rows) != len(tt.rows)+1 {
				t.Fatalf("got %d rows, want %d", len(block.Rows), len(tt.rows)+1)
			}

			sep := block.Rows[1]
			if len(sep) != len(tt.rows[0]) {
				t.Errorf("separator has %d cells, want %d", len(sep), len(tt.rows[0]))
			}
			for _, c := range sep {
				if c != SeparatorCell {
					t.Errorf("separator cell = %q, want %q", c, SeparatorCell)
				}
			}

			// exactly one separator row
			count := 0
			for _, row := range block.Rows {
				if len(row) > 0 && row[0] == SeparatorCell {
					count++
				}
			}
			if len(sep) > 0 && count != 1 {
				t.Errorf("found %d separator rows, want 1", count)
			}

			// data rows pass through unpadded
			for i, row := range tt.rows[1:] {
				if len(block.Rows[i+2]) != len(row) {
					t.Errorf("data row %d has %d cells, want %d", i, len(block.Rows[i+2]), len(row))
				}
			}
		})
	}
}

func TestFormat_Empty(t *testing.T) {
	if _, ok := NewFormatter().Format(nil); ok {
		t.Error("Format(nil) ok = true, want false")
	}
}

func TestFormat_DoesNotAliasInput(t *testing.T) {
	rows := [][]string{{"A"}, {"1"}}
	block, _ := NewFormatter().Format(rows)
	rows[1][0] = "changed"
	if block.Rows[2][0] != "1" {
		t.Errorf("block row changed with input: %q", block.Rows[2][0])
	}
}

func TestFormat_SkipBlankRows(t *testing.T) {
	rows := [][]string{{"A", "B"}, {" ", ""}, {"1", "2"}}

	block, _ := NewFormatter().Format(rows)
	if len(block.Rows) != 4 {
		t.Errorf("default config: got %d rows, want 4", len(block.Rows))
	}

	f := NewFormatterWithConfig(Config{SkipBlankRows: true})
	block, _ = f.Format(rows)
	if len(block.Rows) != 3 {
		t.Errorf("SkipBlankRows: got %d rows, want 3", len(block.Rows))
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"two\nlines", "two lines"},
		{"crlf \r\n  break", "crlf break"},
		{"many\n\n\nbreaks", "many breaks"},
		{"\n", ""},
		{"申请\n材料", "申请 材料"},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
