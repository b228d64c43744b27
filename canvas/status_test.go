package canvas

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/paint2d/constants"
	"github.com/lixenwraith/paint2d/terminal"
)

func TestFitSegmentsTruncatesByDisplayWidth(t *testing.T) {
	segs := []segment{
		{text: "abc"},
		{text: "日本語"}, // width 6
		{text: "tail"},
	}

	tests := []struct {
		width int
		want  []string
	}{
		{0, nil},
		{2, []string{"ab"}},
		{3, []string{"abc"}},
		{6, []string{"abc", "日"}},
		{8, []string{"abc", "日本"}},
		{9, []string{"abc", "日本語"}},
		{11, []string{"abc", "日本語", "ta"}},
		{40, []string{"abc", "日本語", "tail"}},
	}

	for _, tt := range tests {
		got := fitSegments(segs, tt.width)
		var texts []string
		total := 0
		for _, s := range got {
			texts = append(texts, s.text)
			total += runewidth.StringWidth(s.text)
		}
		if strings.Join(texts, "|") != strings.Join(tt.want, "|") {
			t.Errorf("width %d: expected %q, got %q", tt.width, tt.want, texts)
		}
		if total > tt.width {
			t.Errorf("width %d: segments occupy %d columns", tt.width, total)
		}
	}
}

func TestStatusBarDrawnBelowCanvas(t *testing.T) {
	e, term := newTestEngineWithConfig(t, 120, 6, DefaultConfig())
	e.ProcessInput([]terminal.Event{runeKey('l'), runeKey('j'), runeKey('2')})

	if err := e.Redraw(); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	row := term.rowText(5)
	if !strings.HasPrefix(row, constants.ModeText) {
		t.Errorf("Expected status row to start with mode text, got %q", row)
	}
	if !strings.Contains(row, " 1,1  120x5 ") {
		t.Errorf("Expected cursor position and canvas size in status, got %q", row)
	}
	if !strings.Contains(row, "2/9 "+e.CurrentColor().Hex()) {
		t.Errorf("Expected palette slot and hex in status, got %q", row)
	}

	// The swatch cell carries the current color as background
	swatch := len(constants.ModeText) + len(" 1,1  120x5  ")
	if c := term.at(swatch, 5); c.bg != e.CurrentColor() {
		t.Errorf("Expected swatch background %v, got %v", e.CurrentColor(), c.bg)
	}

	// Full-row background even past the text
	if c := term.at(119, 5); !c.hasBg || c.bg != constants.StatusBg {
		t.Errorf("Expected status background at row end, got %+v", c)
	}
}

func TestStatusBarTruncatedToNarrowViewport(t *testing.T) {
	e, term := newTestEngineWithConfig(t, 10, 4, DefaultConfig())
	if err := e.Redraw(); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	row := term.rowText(3)
	if len([]rune(row)) != 10 {
		t.Fatalf("Expected 10 columns, got %q", row)
	}
	if !strings.HasPrefix(row, constants.ModeText) {
		t.Errorf("Expected mode text first, got %q", row)
	}
}

func TestStatusSkippedWithoutRoom(t *testing.T) {
	e, term := newTestEngineWithConfig(t, 10, 1, DefaultConfig())

	if w, h := e.CanvasSize(); w != 10 || h != 1 {
		t.Fatalf("Expected 10x1 canvas in a one-row viewport, got %dx%d", w, h)
	}
	if err := e.Redraw(); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}
	if strings.Contains(term.rowText(0), strings.TrimSpace(constants.ModeText)) {
		t.Error("Expected no status bar when the viewport has a single row")
	}
}
