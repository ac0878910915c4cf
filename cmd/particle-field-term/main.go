// Command particle-field-term renders the particle field in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-field-go/sim"
	"github.com/olivierh59500/particle-field-go/surface"
)

type options struct {
	profile string
	config  string
	fps     int
	seed    int64
	cellW   float64
	cellH   float64
	logPath string
}

func main() {
	var opts options
	flag.StringVar(&opts.profile, "profile", "ambient", "built-in profile: ambient, drift, swarm")
	flag.StringVar(&opts.config, "config", "", "JSON profile file (overrides -profile)")
	flag.IntVar(&opts.fps, "fps", 30, "frames per second")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed (0 = time based)")
	flag.Float64Var(&opts.cellW, "cell-width", surface.DefaultCellWidth, "surface pixels per cell, horizontally")
	flag.Float64Var(&opts.cellH, "cell-height", surface.DefaultCellHeight, "surface pixels per cell, vertically")
	flag.StringVar(&opts.logPath, "log", "", "write log output to this file")
	flag.Parse()

	os.Exit(start(opts))
}

// start routes logging, runs the terminal host and returns the process exit
// code. Deferred cleanup runs before main exits.
func start(opts options) int {
	// The terminal belongs to tcell; log elsewhere or nowhere.
	log.SetPrefix("particle-field-term: ")
	log.SetOutput(io.Discard)
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(opts); err != nil {
		log.Print(err)
		fmt.Fprintf(os.Stderr, "particle-field-term: %v\n", err)
		return 1
	}
	return 0
}

func run(opts options) error {
	profile, err := sim.ResolveProfile(opts.profile, opts.config)
	if err != nil {
		return err
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	term := surface.NewTerminal(screen, opts.cellW, opts.cellH)
	w, h := term.PixelSize(screen.Size())
	field, err := sim.NewField(profile, float64(w), float64(h),
		r2.Vec{X: float64(w) / 2, Y: float64(h) / 2},
		sim.WithRand(rand.New(rand.NewSource(opts.seed))),
		sim.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	driver := sim.NewDriver(field, term)
	driver.SetFollower(sim.NewFollower(opts.fps, profile.Color))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go pump(screen, term, driver.Events(), profile.Name, cancel)

	ticker := time.NewTicker(time.Second / time.Duration(opts.fps))
	defer ticker.Stop()

	err = driver.Run(ctx, ticker.C, term.Present)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump turns tcell events into driver events until the screen is finalised.
func pump(screen tcell.Screen, term *surface.Terminal, events *sim.Events, profile string, quit func()) {
	names := sim.BuiltinNames()
	idx := 0
	for i, name := range names {
		if name == profile {
			idx = i
		}
	}

	pressed := false
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := term.PixelSize(ev.Size())
			events.Push(sim.Resize{Width: w, Height: h})
			screen.Sync()
		case *tcell.EventMouse:
			col, row := ev.Position()
			x, y := term.CellCenter(col, row)
			events.Push(sim.PointerMove{X: x, Y: y})
			down := ev.Buttons()&tcell.Button1 != 0
			if down && !pressed {
				events.Push(sim.PointerPress{})
			}
			pressed = down
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				quit()
			case ev.Rune() == ' ':
				events.Push(sim.TogglePause{})
			case ev.Rune() == 'p':
				idx = (idx + 1) % len(names)
				p, _ := sim.Builtin(names[idx])
				events.Push(sim.SwapProfile{Profile: p})
			}
		}
	}
}
