package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-field-go/sim"
	"github.com/olivierh59500/particle-field-go/surface"
)

func main() {
	profileName := flag.String("profile", "ambient", "built-in profile: ambient, drift, swarm")
	configPath := flag.String("config", "", "JSON profile file (overrides -profile)")
	width := flag.Int("width", 1280, "initial window width")
	height := flag.Int("height", 720, "initial window height")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	hud := flag.Bool("hud", false, "show the stats overlay")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	background := flag.String("bg", "#0b0b14", "background colour")
	flag.Parse()

	log.SetPrefix("particle-field: ")

	profile, err := sim.ResolveProfile(*profileName, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	bg, err := surface.ParseHex(*background)
	if err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game, err := NewGame(ctx, GameConfig{
		Profile:    profile,
		ConfigPath: *configPath,
		Width:      *width,
		Height:     *height,
		TPS:        *tps,
		HUD:        *hud,
		Background: bg,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Particle Field")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(*tps)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	// Run the game loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
