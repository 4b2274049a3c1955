package render

import (
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/parse"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"no wrap", "hello", 0, []string{"hello"}},
		{"fits", "hello", 10, []string{"hello"}},
		{"split", "abcdef", 4, []string{"abcd", "ef"}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}},
		{"ansi not counted", "\033[1mab\033[0mcd", 4, []string{"\033[1mab\033[0mcd"}},
		{"empty", "", 5, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.line, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapLine(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
			}
		})
	}
}

func TestHighlightKeywords(t *testing.T) {
	got := highlightKeywords("Lunch and lunch", "lunch")
	want := colorBoldRed + "Lunch" + colorReset + " and " + colorBoldRed + "lunch" + colorReset
	if got != want {
		t.Errorf("highlightKeywords = %q, want %q", got, want)
	}
	if got := highlightKeywords("text", ""); got != "text" {
		t.Errorf("empty query changed text: %q", got)
	}
}

func TestRenderConversation(t *testing.T) {
	text := `01/01/24, 10:00 - Alice joined
01/01/24, 10:01 - Alice: first
01/01/24, 10:02 - Bob: lunch?
01/01/24, 10:03 - Alice: third
01/01/24, 10:04 - Bob: fourth
`
	records := parse.NewParser(parse.Options{}, nil).Parse(text).Records()
	db, _, err := index.Build(records, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	out, hitLine, err := RenderConversation(db, Options{HitIdx: 2, Context: 1, Query: "lunch"})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if hitLine < 0 || !strings.Contains(lines[hitLine], ">> #2 Bob") {
		t.Errorf("hit line %d = %q", hitLine, lines[hitLine])
	}
	if !strings.Contains(out, "(1 messages before)") || !strings.Contains(out, "(1 messages after)") {
		t.Errorf("missing skip markers:\n%s", out)
	}
	if !strings.Contains(out, colorBoldRed+"lunch"+colorReset) {
		t.Error("query not highlighted")
	}

	full, _, err := RenderConversation(db, Options{HitIdx: -1, Context: -1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(full, "NOTICE") {
		t.Error("notification not labelled")
	}

	if _, _, err := RenderConversation(db, Options{HitIdx: 40}); err == nil {
		t.Error("out of range hit did not fail")
	}
}
