package surface

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, cols, rows int) (tcell.SimulationScreen, *Terminal) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	term := NewTerminal(screen, 8, 16)
	term.Resize(term.PixelSize(cols, rows))
	return screen, term
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func TestTerminalDiscLandsInContainingCell(t *testing.T) {
	screen, term := newSimTerminal(t, 10, 5)

	term.DrawDisc(20, 20, 2, Accent)  // cell (2,1)
	term.DrawDisc(70, 70, 1, Accent)  // cell (8,4)
	term.DrawDisc(-5, 20, 2, Accent)  // off surface
	term.DrawDisc(500, 20, 2, Accent) // off surface
	term.Present()

	if got := runeAt(screen, 2, 1); got != '●' {
		t.Errorf("cell (2,1) = %q, want large disc", got)
	}
	if got := runeAt(screen, 8, 4); got != '•' {
		t.Errorf("cell (8,4) = %q, want small disc", got)
	}
	_, _, style, _ := screen.GetContent(2, 1)
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(99, 102, 241) {
		t.Errorf("disc foreground = %v, want the accent colour", fg)
	}
}

func TestTerminalLineAndDiscPrecedence(t *testing.T) {
	screen, term := newSimTerminal(t, 10, 5)

	term.DrawDisc(20, 8, 2, Accent)
	term.DrawLine(4, 8, 76, 8, Accent.WithAlpha(0.5), 0.8)
	term.Present()

	for col := 0; col < 10; col++ {
		want := '-'
		if col == 2 {
			want = '●'
		}
		if got := runeAt(screen, col, 0); got != want {
			t.Errorf("cell (%d,0) = %q, want %q", col, got, want)
		}
	}
	if got := runeAt(screen, 0, 1); got != ' ' {
		t.Errorf("cell (0,1) = %q, want blank", got)
	}

	// a dimmer line does not replace a brighter one
	term.DrawLine(4, 8, 4, 70, Accent.WithAlpha(0.1), 0.8)
	term.Present()
	if got := runeAt(screen, 0, 0); got != '-' {
		t.Errorf("cell (0,0) = %q, want the brighter line kept", got)
	}
	if got := runeAt(screen, 0, 3); got != '|' {
		t.Errorf("cell (0,3) = %q, want vertical line", got)
	}
}

func TestTerminalClear(t *testing.T) {
	screen, term := newSimTerminal(t, 4, 4)
	term.DrawDisc(4, 8, 2, Accent)
	term.Clear()
	term.Present()
	if got := runeAt(screen, 0, 0); got != ' ' {
		t.Errorf("cell (0,0) = %q after Clear", got)
	}
}

func TestLineRune(t *testing.T) {
	tests := []struct {
		dc, dr int
		want   rune
	}{
		{0, 0, '·'},
		{5, 0, '-'},
		{-5, 1, '-'},
		{0, 4, '|'},
		{1, -6, '|'},
		{3, 3, '\\'},
		{-3, -3, '\\'},
		{3, -3, '/'},
	}
	for _, tt := range tests {
		if got := lineRune(tt.dc, tt.dr); got != tt.want {
			t.Errorf("lineRune(%d,%d) = %q, want %q", tt.dc, tt.dr, got, tt.want)
		}
	}
}

func TestTerminalCellGeometry(t *testing.T) {
	term := NewTerminal(nil, 0, 0)
	if w, h := term.PixelSize(80, 24); w != 640 || h != 384 {
		t.Errorf("PixelSize = %dx%d, want 640x384", w, h)
	}
	if x, y := term.CellCenter(2, 1); x != 20 || y != 24 {
		t.Errorf("CellCenter = (%g,%g), want (20,24)", x, y)
	}
}
