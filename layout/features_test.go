package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/docstruct/model"
)

func TestSizeClassString(t *testing.T) {
	tests := []struct {
		class    SizeClass
		expected string
	}{
		{SizeUnknown, "unknown"},
		{SizeSmall, "small"},
		{SizeNormal, "normal"},
		{SizeLarge, "large"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.expected {
			t.Errorf("SizeClass(%d).String() = %q, want %q", tt.class, got, tt.expected)
		}
	}
}

func TestSizeSignalClass(t *testing.T) {
	tests := []struct {
		signal   SizeSignal
		expected SizeClass
	}{
		{SizeSignal{}, SizeUnknown},
		{SizeSignal{Known: false, Ratio: 2}, SizeUnknown},
		{SizeSignal{Known: true, Ratio: 1.5}, SizeLarge},
		{SizeSignal{Known: true, Ratio: 1.2}, SizeNormal},
		{SizeSignal{Known: true, Ratio: 1.0}, SizeNormal},
		{SizeSignal{Known: true, Ratio: 0.8}, SizeNormal},
		{SizeSignal{Known: true, Ratio: 0.5}, SizeSmall},
	}

	for _, tt := range tests {
		if got := tt.signal.Class(LargeSizeRatio, SmallSizeRatio); got != tt.expected {
			t.Errorf("%+v.Class() = %v, want %v", tt.signal, got, tt.expected)
		}
	}
}

func TestThresholdsAreDistinct(t *testing.T) {
	if ShortLineLimit == ColonHeadingLimit {
		t.Error("ShortLineLimit and ColonHeadingLimit should be separate thresholds")
	}
	if ShortLineLimit != 50 || ColonHeadingLimit != 30 {
		t.Errorf("thresholds = %d/%d, want 50/30", ShortLineLimit, ColonHeadingLimit)
	}
}

func TestAnalyzePunctuation(t *testing.T) {
	tests := []struct {
		text     string
		colon    bool
		question bool
		terminal bool
	}{
		{"GPA:", true, false, false},
		{"雅思：", true, false, false},
		{"How should I prepare?", false, true, true},
		{"如何准备？", false, true, true},
		{"This is a sentence.", false, false, true},
		{"这是一句话。", false, false, true},
		{"Wow!", false, false, true},
		{"No punctuation", false, false, false},
		{"  trailing space:  ", true, false, false},
		{"", false, false, false},
	}

	a := NewFeatureAnalyzer()
	for _, tt := range tests {
		f := a.Analyze(model.TextLine(tt.text), VisualContext{})
		if f.EndsWithColon != tt.colon {
			t.Errorf("%q: EndsWithColon = %v, want %v", tt.text, f.EndsWithColon, tt.colon)
		}
		if f.IsQuestion != tt.question {
			t.Errorf("%q: IsQuestion = %v, want %v", tt.text, f.IsQuestion, tt.question)
		}
		if f.EndsWithTerminal != tt.terminal {
			t.Errorf("%q: EndsWithTerminal = %v, want %v", tt.text, f.EndsWithTerminal, tt.terminal)
		}
	}
}

func TestAnalyzeMarkers(t *testing.T) {
	tests := []struct {
		text   string
		number bool
		bullet string
	}{
		{"1. Install", true, ""},
		{"12) Twelve", true, ""},
		{"12 apples", false, ""},
		{"• item", false, "•"},
		{"· item", false, "·"},
		{"- item", false, "-"},
		{"* item", false, "*"},
		{"plain", false, ""},
	}

	a := NewFeatureAnalyzer()
	for _, tt := range tests {
		f := a.Analyze(model.TextLine(tt.text), VisualContext{})
		if f.StartsWithNumber != tt.number {
			t.Errorf("%q: StartsWithNumber = %v, want %v", tt.text, f.StartsWithNumber, tt.number)
		}
		if f.Bullet != tt.bullet {
			t.Errorf("%q: Bullet = %q, want %q", tt.text, f.Bullet, tt.bullet)
		}
		if f.StartsWithBullet != (tt.bullet != "") {
			t.Errorf("%q: StartsWithBullet = %v", tt.text, f.StartsWithBullet)
		}
	}
}

func TestAnalyzeLength(t *testing.T) {
	a := NewFeatureAnalyzer()

	f := a.Analyze(model.TextLine("  GPA:  "), VisualContext{})
	if f.Length != 4 {
		t.Errorf("Length = %d, want 4 (trimmed)", f.Length)
	}

	// length counts runes, not bytes
	f = a.Analyze(model.TextLine("个人情况"), VisualContext{})
	if f.Length != 4 {
		t.Errorf("Length = %d, want 4 runes", f.Length)
	}

	f = a.Analyze(model.TextLine(strings.Repeat("x", 49)), VisualContext{})
	if !f.IsShort {
		t.Error("49 runes should be short")
	}
	f = a.Analyze(model.TextLine(strings.Repeat("x", 50)), VisualContext{})
	if f.IsShort {
		t.Error("50 runes should not be short")
	}
}

func TestAnalyzeCustomShortLimit(t *testing.T) {
	a := NewFeatureAnalyzerWithConfig(FeatureConfig{ShortLineLimit: 10})
	if f := a.Analyze(model.TextLine("exactly 10"), VisualContext{}); f.IsShort {
		t.Error("10 runes should not be short with limit 10")
	}

	// zero limit falls back to the default
	a = NewFeatureAnalyzerWithConfig(FeatureConfig{})
	if f := a.Analyze(model.TextLine(strings.Repeat("x", 40)), VisualContext{}); !f.IsShort {
		t.Error("40 runes should be short with the default limit")
	}
}

func TestAnalyzeHasLetter(t *testing.T) {
	a := NewFeatureAnalyzer()
	for _, text := range []string{"abc", "前言", "2021"} {
		if !a.Analyze(model.TextLine(text), VisualContext{}).HasLetter {
			t.Errorf("%q should have letters", text)
		}
	}
	for _, text := range []string{"----", "***", "。。。"} {
		if a.Analyze(model.TextLine(text), VisualContext{}).HasLetter {
			t.Errorf("%q should not have letters", text)
		}
	}
}

func TestAnalyzeSize(t *testing.T) {
	a := NewFeatureAnalyzer()
	vc := VisualContext{MeanCharSize: 12, Known: true}

	f := a.Analyze(model.SizedLine("Title", 18), vc)
	if !f.Size.Known {
		t.Fatal("expected known size")
	}
	if f.Size.Ratio != 1.5 {
		t.Errorf("Ratio = %v, want 1.5", f.Size.Ratio)
	}

	t.Run("line without visual", func(t *testing.T) {
		if a.Analyze(model.TextLine("Title"), vc).Size.Known {
			t.Error("size should be unknown")
		}
	})

	t.Run("page without visual", func(t *testing.T) {
		if a.Analyze(model.SizedLine("Title", 18), VisualContext{}).Size.Known {
			t.Error("size should be unknown")
		}
	})

	t.Run("bold", func(t *testing.T) {
		line := model.Line{Text: "Title", Visual: &model.Visual{Bold: true}}
		f := a.Analyze(line, vc)
		if !f.Bold {
			t.Error("expected Bold")
		}
		if f.Size.Known {
			t.Error("zero character size should be unknown")
		}
	})
}

func TestNewVisualContext(t *testing.T) {
	vc := NewVisualContext([]model.Line{model.TextLine("plain")})
	if vc.Known {
		t.Error("plain lines should give an unknown context")
	}

	vc = NewVisualContext([]model.Line{model.SizedLine("ab", 10), model.SizedLine("cd", 14)})
	if !vc.Known || vc.MeanCharSize != 12 {
		t.Errorf("context = %+v, want known mean 12", vc)
	}
}
