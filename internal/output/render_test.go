package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hejijunhao/dicelog/internal/model"
)

func sampleReport() model.Report {
	a1 := model.NewEntry("メイン", "A", []string{"目星 ＞ 成功"})
	a2 := model.NewEntry("メイン", "A", []string{"CCB<=80 【聞き耳】 ＞ 決定的成功"})
	b1 := model.NewEntry("メイン", "B", []string{"回避 ＞ 失敗"})
	return model.Report{
		Entries: []*model.Entry{a1, a2, b1},
		Overall: model.Summary{
			Successes: []*model.Entry{a1},
			Failures:  []*model.Entry{b1},
			Criticals: []*model.Entry{a2},
		},
		Characters: map[string]model.Summary{
			"A": {Successes: []*model.Entry{a1}, Criticals: []*model.Entry{a2}},
			"B": {Failures: []*model.Entry{b1}},
		},
	}
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in   string
		want Verbosity
	}{
		{"minimal", Minimal},
		{"FULL", Full},
		{"standard", Standard},
		{"", Standard},
		{"loud", Standard},
	}
	for _, tt := range tests {
		if got := ParseVerbosity(tt.in); got != tt.want {
			t.Errorf("ParseVerbosity(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderTextMinimal(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), Options{Verbosity: Minimal, Outcome: model.NoOutcome}, ex)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "===== 総計 =====\n通常成功：1\n通常失敗：1\nクリティカル：1\nファンブル：0\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderTextStandard(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), Options{Verbosity: Standard, Outcome: model.Success}, ex)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "===== 総計 =====\n通常成功：1\n通常失敗：1\nクリティカル：1\nファンブル：0\n通常成功した技能: 目星（1回）\n" +
		"===== A =====\n通常成功：1\n通常失敗：0\nクリティカル：1\nファンブル：0\n通常成功した技能: 目星（1回）\n" +
		"===== B =====\n通常成功：0\n通常失敗：1\nクリティカル：0\nファンブル：0\n通常成功した技能: なし\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderTextFullIncludesEntries(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Verbosity: Full, Outcome: model.NoOutcome, SingleCharacter: true, Character: "B"}
	if err := Render(&buf, sampleReport(), opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "===== B =====\n") {
		t.Fatalf("expected B section first, got:\n%s", out)
	}
	if strings.Contains(out, OverallHeading) {
		t.Fatal("character view should not include the overall section")
	}
	if !strings.Contains(out, "tab:メイン\nname:B\n0:回避 ＞ 失敗\n") {
		t.Fatalf("entry listing missing:\n%s", out)
	}
}

func TestRenderEmptyNamedCharacter(t *testing.T) {
	r := sampleReport()
	f := model.NewEntry("メイン", "", []string{"回避 ＞ 致命的失敗"})
	r.Entries = append(r.Entries, f)
	r.Overall.Fumbles = []*model.Entry{f}
	r.Characters[""] = model.Summary{Fumbles: []*model.Entry{f}}

	var buf bytes.Buffer
	opts := Options{Verbosity: Standard, Outcome: model.NoOutcome, SingleCharacter: true, Character: ""}
	if err := Render(&buf, r, opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "=====  =====\n通常成功：0\n通常失敗：0\nクリティカル：0\nファンブル：1\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	opts.SingleCharacter = false
	if err := Render(&buf, r, opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "===== 総計 =====\n通常成功：1\n通常失敗：1\nクリティカル：1\nファンブル：1\n") {
		t.Fatalf("expected the overall section first, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "=====  =====\n通常成功：0\n") {
		t.Fatalf("empty-named section missing:\n%s", buf.String())
	}
}

func TestRenderTextSkipped(t *testing.T) {
	r := sampleReport()
	r.Skipped = 2
	var buf bytes.Buffer
	if err := Render(&buf, r, Options{Verbosity: Minimal}, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "(skipped 2 malformed blocks)\n") {
		t.Fatalf("missing skipped note:\n%s", buf.String())
	}
}

func TestRenderUnknownCharacter(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), Options{SingleCharacter: true, Character: "C"}, ex)
	if !errors.Is(err, ErrUnknownCharacter) {
		t.Fatalf("expected ErrUnknownCharacter, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: FormatJSON, Verbosity: Standard, Outcome: model.Critical}
	if err := Render(&buf, sampleReport(), opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got struct {
		Outcome string `json:"outcome"`
		Overall struct {
			Counts map[string]int `json:"counts"`
			Skills map[string]int `json:"skills"`
		} `json:"overall"`
		Characters map[string]struct {
			Counts map[string]int `json:"counts"`
			Skills map[string]int `json:"skills"`
		} `json:"characters"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.Outcome != "critical" {
		t.Errorf("outcome = %q, want critical", got.Outcome)
	}
	if got.Overall.Counts["success"] != 1 || got.Overall.Counts["fumble"] != 0 {
		t.Errorf("overall counts = %v", got.Overall.Counts)
	}
	if got.Overall.Skills["CCB<=80 【聞き耳】"] != 1 {
		t.Errorf("overall skills = %v", got.Overall.Skills)
	}
	if len(got.Characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(got.Characters))
	}
	if got.Characters["B"].Counts["failure"] != 1 {
		t.Errorf("B counts = %v", got.Characters["B"].Counts)
	}
	if strings.Contains(buf.String(), `"entries"`) {
		t.Error("standard verbosity should not include entries")
	}
	if strings.Contains(buf.String(), `\u003c`) {
		t.Error("HTML escaping should be disabled")
	}
}

func TestRenderJSONMinimalOmitsCharacters(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: FormatJSON, Verbosity: Minimal, Outcome: model.NoOutcome}
	if err := Render(&buf, sampleReport(), opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, `"characters"`) || strings.Contains(out, `"outcome"`) {
		t.Fatalf("unexpected fields in minimal output: %s", out)
	}
	if !strings.Contains(out, `"overall"`) {
		t.Fatalf("overall missing: %s", out)
	}
}

func TestRenderJSONCharacterNamedLikeOverall(t *testing.T) {
	r := sampleReport()
	r.Characters[OverallHeading] = r.Characters["B"]
	var buf bytes.Buffer
	if err := Render(&buf, r, Options{Format: FormatJSON}, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	var got struct {
		Overall    map[string]any `json:"overall"`
		Characters map[string]any `json:"characters"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Overall == nil || len(got.Characters) != 3 {
		t.Fatalf("overall=%v characters=%d", got.Overall, len(got.Characters))
	}
}

func TestRenderJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: FormatJSON, Verbosity: Minimal, Pretty: true}
	if err := Render(&buf, sampleReport(), opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"overall\"") {
		t.Fatalf("expected indented output:\n%s", buf.String())
	}
}

func TestRenderTextSkillsOnly(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Verbosity: Standard, Outcome: model.Critical, SkillsOnly: true}
	if err := Render(&buf, sampleReport(), opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "総計: 《CCB<=80 【聞き耳】》（1回）\n" +
		"A: 《CCB<=80 【聞き耳】》（1回）\n" +
		"B: なし\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderTextSkillsOnlyInvalidSelection(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Verbosity: Minimal, Outcome: model.NoOutcome, SkillsOnly: true}
	if err := Render(&buf, sampleReport(), opts, ex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "総計: \n" {
		t.Fatalf("got %q", buf.String())
	}
}
