package parser

import (
	"errors"
	"testing"

	"github.com/hejijunhao/dicelog/internal/model"
)

func block(fields ...[]string) model.Block {
	return model.NewStaticBlock(fields...)
}

func TestParseValidBlock(t *testing.T) {
	p := New(false)
	e, err := p.Parse(block(
		[]string{"  [メイン]\n"},
		[]string{"\n 探索者A "},
		[]string{"  CCB<=25 【目星】 (1D100<=25) ＞ 10 ＞ 成功\n", "", "  二行目 "},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Tab != "メイン" {
		t.Fatalf("expected tab %q, got %q", "メイン", e.Tab)
	}
	if e.Name != "探索者A" {
		t.Fatalf("expected name %q, got %q", "探索者A", e.Name)
	}
	want := []string{"CCB<=25 【目星】 (1D100<=25) ＞ 10 ＞ 成功", "", "二行目"}
	if len(e.Texts) != len(want) {
		t.Fatalf("expected %d texts, got %d: %q", len(want), len(e.Texts), e.Texts)
	}
	for i := range want {
		if e.Texts[i] != want[i] {
			t.Fatalf("text %d: expected %q, got %q", i, want[i], e.Texts[i])
		}
	}
}

func TestParseTabStripsBracketsOnce(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"[main]", "main"},
		{"[メイン]", "メイン"},
		{"[[nested]]", "[nested]"},
		{"[e\u0301]", "e\u0301"},
		{"[\U0001F468\u200D\U0001F469\u200D\U0001F467]", "\U0001F468\u200D\U0001F469\u200D\U0001F467"},
		{" [ 雑談 ] ", " 雑談 "},
		{"[a\nb]", "ab"},
	}
	p := New(false)
	for _, tt := range tests {
		e, err := p.Parse(block([]string{tt.raw}, []string{"GM"}, []string{"text"}))
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.raw, err)
		}
		if e.Tab != tt.want {
			t.Errorf("Parse(%q): tab = %q, want %q", tt.raw, e.Tab, tt.want)
		}
	}
}

func TestParseRejectsInvalidTab(t *testing.T) {
	tests := []struct {
		raw     string
		wantMsg string
	}{
		{"", `invalid tab "": first or last character missing`},
		{"   ", `invalid tab "": first or last character missing`},
		{"[", `invalid tab "[": not enclosed in [ ]`},
		{"]", `invalid tab "]": not enclosed in [ ]`},
		{"main]", `invalid tab "main]": not enclosed in [ ]`},
		{"[main", `invalid tab "[main": not enclosed in [ ]`},
		{"(main)", `invalid tab "(main)": not enclosed in [ ]`},
		{"［main］", `invalid tab "［main］": not enclosed in [ ]`},
		{"[]", `invalid tab "[]": empty tab name`},
	}
	p := New(false)
	for _, tt := range tests {
		_, err := p.Parse(block([]string{tt.raw}, []string{"GM"}, []string{"text"}))
		if err == nil {
			t.Fatalf("Parse(%q): expected error", tt.raw)
		}
		if !errors.Is(err, ErrInvalidTabFormat) {
			t.Fatalf("Parse(%q): expected ErrInvalidTabFormat, got %v", tt.raw, err)
		}
		if err.Error() != tt.wantMsg {
			t.Errorf("Parse(%q): message = %q, want %q", tt.raw, err.Error(), tt.wantMsg)
		}
	}
}

func TestParseTrailingCombiningMarkIsNotBracket(t *testing.T) {
	// "]" followed by a combining mark forms one cluster that is not "]".
	p := New(false)
	_, err := p.Parse(block([]string{"[main]\u0301"}, []string{"GM"}, []string{"x"}))
	if !errors.Is(err, ErrInvalidTabFormat) {
		t.Fatalf("expected ErrInvalidTabFormat, got %v", err)
	}
}

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  [][]string
		wantMsg string
	}{
		{"no fields", nil, "tab field missing"},
		{"no name", [][]string{{"[main]"}}, "name field missing"},
		{"no text", [][]string{{"[main]"}, {"GM"}}, "text field missing"},
	}
	p := New(false)
	for _, tt := range tests {
		_, err := p.Parse(block(tt.fields...))
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("%s: expected ErrMissingField, got %v", tt.name, err)
		}
		if err.Error() != tt.wantMsg {
			t.Errorf("%s: message = %q, want %q", tt.name, err.Error(), tt.wantMsg)
		}
	}
}

func TestParseWrongLineCount(t *testing.T) {
	tests := []struct {
		name    string
		fields  [][]string
		wantMsg string
		lines   int
	}{
		{"empty tab", [][]string{{}, {"GM"}, {"x"}}, "tab field has 0 lines, want 1", 0},
		{"split tab", [][]string{{"[a", "b", "]"}, {"GM"}, {"x"}}, "tab field has 3 lines, want 1", 3},
		{"split name", [][]string{{"[main]"}, {"G", "M"}, {"x"}}, "name field has 2 lines, want 1", 2},
		{"empty name", [][]string{{"[main]"}, {}, {"x"}}, "name field has 0 lines, want 1", 0},
	}
	p := New(false)
	for _, tt := range tests {
		_, err := p.Parse(block(tt.fields...))
		if !errors.Is(err, ErrWrongLineCount) {
			t.Fatalf("%s: expected ErrWrongLineCount, got %v", tt.name, err)
		}
		if err.Error() != tt.wantMsg {
			t.Errorf("%s: message = %q, want %q", tt.name, err.Error(), tt.wantMsg)
		}
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Lines != tt.lines {
			t.Errorf("%s: expected Lines=%d, got %+v", tt.name, tt.lines, perr)
		}
	}
}

func TestParseFirstFailureWins(t *testing.T) {
	p := New(false)
	// Both tab and name are broken; only the tab failure is reported.
	_, err := p.Parse(block([]string{"main"}, []string{}, []string{"x"}))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Field != "tab" {
		t.Fatalf("expected tab failure, got %q", perr.Field)
	}
}

func TestParseEmptyTextField(t *testing.T) {
	p := New(false)
	e, err := p.Parse(block([]string{"[main]"}, []string{""}, []string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "" {
		t.Fatalf("expected empty name, got %q", e.Name)
	}
	if len(e.Texts) != 0 {
		t.Fatalf("expected no texts, got %q", e.Texts)
	}
}

func TestParseNormalize(t *testing.T) {
	decomposed := "\u30b9\u30d8\u309a\u30b7\u30e3\u30eb" // ペ as ヘ + combining handakuten
	raw := block([]string{"[main]"}, []string{"PC1"}, []string{decomposed})

	e, err := New(false).Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Texts[0] != decomposed {
		t.Fatalf("expected text untouched without normalization, got %q", e.Texts[0])
	}

	e, err = New(true).Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Texts[0] != "スペシャル" {
		t.Fatalf("expected NFC text %q, got %q", "スペシャル", e.Texts[0])
	}
}

func TestParseBatchAbortsOnFirstFailure(t *testing.T) {
	blocks := []model.Block{
		block([]string{"[main]"}, []string{"A"}, []string{"one"}),
		block([]string{"main"}, []string{"B"}, []string{"two"}),
		block([]string{"[main]"}, []string{}, []string{"three"}),
	}
	entries, err := New(false).ParseBatch(blocks)
	if err == nil {
		t.Fatal("expected error")
	}
	if entries != nil {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
	var berr *BlockError
	if !errors.As(err, &berr) {
		t.Fatalf("expected *BlockError, got %T", err)
	}
	if berr.Index != 1 {
		t.Fatalf("expected failing index 1, got %d", berr.Index)
	}
	if !errors.Is(err, ErrInvalidTabFormat) {
		t.Fatalf("expected ErrInvalidTabFormat, got %v", err)
	}
	if err.Error() != `block 1: invalid tab "main": not enclosed in [ ]` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestParseBatchSuccess(t *testing.T) {
	blocks := []model.Block{
		block([]string{"[main]"}, []string{"A"}, []string{"one"}),
		block([]string{"[info]"}, []string{"B"}, []string{"two", "three"}),
	}
	entries, err := New(false).ParseBatch(blocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Tab != "info" || len(entries[1].Texts) != 2 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseEachKeepsGoing(t *testing.T) {
	blocks := []model.Block{
		block([]string{"[main]"}, []string{"A"}, []string{"one"}),
		block([]string{"main"}, []string{"B"}, []string{"two"}),
		block([]string{"[main]"}, []string{"C"}, []string{"three"}),
	}
	results := New(false).ParseEach(blocks)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Entry.Name != "A" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Err == nil || results[1].Entry != nil {
		t.Fatalf("expected failure for second block, got %+v", results[1])
	}
	if results[2].Err != nil || results[2].Entry.Name != "C" {
		t.Fatalf("unexpected third result: %+v", results[2])
	}
}
