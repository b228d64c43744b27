package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/paint2d/core"
)

func newSimTerminal(t *testing.T, width, height int) (*Tcell, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTcellWithScreen(screen)
	if err := term.EnterExclusiveMode(); err != nil {
		t.Fatalf("EnterExclusiveMode failed: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(func() { term.LeaveExclusiveMode() })
	return term, screen
}

// pollKeys polls until n key events arrived, skipping resize events the screen may emit
func pollKeys(t *testing.T, term *Tcell, n int) []Event {
	t.Helper()
	var keys []Event
	deadline := time.Now().Add(2 * time.Second)
	for len(keys) < n && time.Now().Before(deadline) {
		evs, err := term.PollEvents(20 * time.Millisecond)
		if err != nil {
			t.Fatalf("PollEvents failed: %v", err)
		}
		for _, ev := range evs {
			if ev.Type == EventKey {
				keys = append(keys, ev)
			}
		}
	}
	return keys
}

func TestTcellWritesStyledCells(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 4)

	red := core.RGB{R: 255}
	term.ClearScreen()
	term.MoveCursor(2, 1)
	term.SetBackground(red)
	term.WriteText("  ")
	term.ResetStyle()
	term.MoveCursor(0, 3)
	term.WriteText("ok")
	term.Flush()

	cells, width, _ := screen.GetContents()

	cell := cells[1*width+2]
	_, bg, _ := cell.Style.Decompose()
	if bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Expected red background at (2,1), got %v", bg)
	}
	_, bg, _ = cells[1*width+3].Style.Decompose()
	if bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Expected write cursor to advance to (3,1), got background %v", bg)
	}

	row := cells[3*width : 3*width+2]
	if len(row[0].Runes) == 0 || row[0].Runes[0] != 'o' || len(row[1].Runes) == 0 || row[1].Runes[0] != 'k' {
		t.Errorf("Expected \"ok\" on row 3, got %v %v", row[0].Runes, row[1].Runes)
	}
}

func TestTcellPollConvertsKeys(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 4)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyRight, 0, tcell.ModShift)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	got := pollKeys(t, term, 3)
	if len(got) != 3 {
		t.Fatalf("Expected 3 key events, got %v", got)
	}
	if got[0].Key != KeyRune || got[0].Rune != 'q' {
		t.Errorf("Expected rune q, got %v", got[0])
	}
	if got[1].Key != KeyRight || got[1].Modifiers&ModShift == 0 {
		t.Errorf("Expected shift+right, got %v", got[1])
	}
	if got[2].Key != KeyEscape {
		t.Errorf("Expected escape, got %v", got[2])
	}
}

func TestTcellInterruptEvent(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 4)

	if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		evs, err := term.PollEvents(20 * time.Millisecond)
		if err != nil {
			t.Fatalf("PollEvents failed: %v", err)
		}
		for _, ev := range evs {
			if ev.Type == EventInterrupt {
				return
			}
		}
	}
	t.Fatal("Expected an interrupt event")
}

func TestTcellRawInputFollowsExclusiveMode(t *testing.T) {
	term := NewTcellWithScreen(tcell.NewSimulationScreen("UTF-8"))
	if err := term.SetRawInput(true); err == nil {
		t.Error("Expected raw input before exclusive mode to fail")
	}
	if err := term.EnterExclusiveMode(); err != nil {
		t.Fatalf("EnterExclusiveMode failed: %v", err)
	}
	if err := term.SetRawInput(true); err != nil {
		t.Errorf("Expected raw input to succeed, got %v", err)
	}
	if err := term.LeaveExclusiveMode(); err != nil {
		t.Errorf("LeaveExclusiveMode failed: %v", err)
	}
	if err := term.LeaveExclusiveMode(); err != nil {
		t.Errorf("Expected second LeaveExclusiveMode to be a no-op, got %v", err)
	}
}

func TestConvertKeyCtrlRune(t *testing.T) {
	ev := convertKey(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl))
	if ev.Key != KeyCtrlC {
		t.Errorf("Expected ctrl+c from rune form, got %v", ev)
	}
	ev = convertKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if ev.Key != KeyCtrlC {
		t.Errorf("Expected ctrl+c, got %v", ev)
	}
}
