package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-field-go/sim"
	"github.com/olivierh59500/particle-field-go/surface"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPumpTranslatesTerminalEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(20, 10)
	term := surface.NewTerminal(screen, 8, 16)

	var events sim.Events
	var quits atomic.Int32
	done := make(chan struct{})
	go func() {
		pump(screen, term, &events, "ambient", func() { quits.Add(1) })
		close(done)
	}()

	var got []sim.Event
	collect := func(n int) func() bool {
		return func() bool {
			for _, ev := range events.Drain(nil) {
				if _, resize := ev.(sim.Resize); !resize {
					got = append(got, ev)
				}
			}
			return len(got) >= n
		}
	}

	screen.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	waitFor(t, "pointer events", collect(2))
	if got[0] != (sim.PointerMove{X: 28, Y: 40}) {
		t.Errorf("first event = %#v, want a move to the cell centre", got[0])
	}
	if got[1] != (sim.PointerPress{}) {
		t.Errorf("second event = %#v, want a press", got[1])
	}

	// still held: moves only
	screen.InjectMouse(4, 2, tcell.Button1, tcell.ModNone)
	waitFor(t, "drag move", collect(3))
	if len(got) != 3 {
		t.Errorf("held button produced %d events, want 3 in total", len(got))
	}

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	waitFor(t, "profile swap", collect(4))
	swap, ok := got[3].(sim.SwapProfile)
	if !ok || swap.Profile.Name != "drift" {
		t.Errorf("fourth event = %#v, want a swap to drift", got[3])
	}

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitFor(t, "quit", func() bool { return quits.Load() == 1 })

	screen.Fini()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pump did not return after Fini")
	}
}

func TestStartReportsFailureThroughLogFile(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})
	path := filepath.Join(t.TempDir(), "term.log")

	code := start(options{profile: "ambient", fps: 0, logPath: path})
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fps must be positive") {
		t.Errorf("log file = %q, want the run error", data)
	}
}

func TestStartFailsOnUnwritableLog(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})
	path := filepath.Join(t.TempDir(), "missing", "term.log")
	if code := start(options{profile: "ambient", fps: 30, logPath: path}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
