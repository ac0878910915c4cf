package main

import (
	"context"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-field-go/sim"
	"github.com/olivierh59500/particle-field-go/surface"
)

// GameConfig holds the startup parameters of the ebiten host.
type GameConfig struct {
	Profile       sim.Profile
	ConfigPath    string
	Width, Height int
	TPS           int
	HUD           bool
	Background    surface.Color
	Seed          int64
}

// Game binds the particle field to Ebitengine: input becomes driver events,
// Update steps the driver and Draw renders it onto the screen image.
type Game struct {
	ctx        context.Context
	driver     *sim.Driver
	surface    *ebitenSurface
	configPath string
	profiles   []string
	profileIdx int
	showHUD    bool

	width, height    int
	cursorX, cursorY int
	touchIDs         []ebiten.TouchID
}

// NewGame creates the field and its driver. The game ends when ctx is done.
func NewGame(ctx context.Context, cfg GameConfig) (*Game, error) {
	w, h := float64(cfg.Width), float64(cfg.Height)
	field, err := sim.NewField(cfg.Profile, w, h, r2.Vec{X: w / 2, Y: h / 2},
		sim.WithRand(rand.New(rand.NewSource(cfg.Seed))),
		sim.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	s := &ebitenSurface{background: cfg.Background}
	driver := sim.NewDriver(field, s)
	driver.SetFollower(sim.NewFollower(cfg.TPS, cfg.Profile.Color))

	g := &Game{
		ctx:        ctx,
		driver:     driver,
		surface:    s,
		configPath: cfg.ConfigPath,
		profiles:   sim.BuiltinNames(),
		showHUD:    cfg.HUD,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	for i, name := range g.profiles {
		if name == cfg.Profile.Name {
			g.profileIdx = i
		}
	}
	return g, nil
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if err := g.handleInput(); err != nil {
		return err
	}
	g.driver.Step()
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.target = screen
	g.driver.Render()
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// Layout follows the outside size so the field always covers the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.driver.Events().Push(sim.Resize{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard, mouse and touch input
func (g *Game) handleInput() error {
	events := g.driver.Events()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		events.Push(sim.TogglePause{})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.profileIdx = (g.profileIdx + 1) % len(g.profiles)
		p, _ := sim.Builtin(g.profiles[g.profileIdx])
		events.Push(sim.SwapProfile{Profile: p})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.reloadConfig()
	}

	mx, my := ebiten.CursorPosition()
	if mx != g.cursorX || my != g.cursorY {
		g.cursorX, g.cursorY = mx, my
		events.Push(sim.PointerMove{X: float64(mx), Y: float64(my)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events.Push(sim.PointerPress{})
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		events.Push(sim.PointerMove{X: float64(tx), Y: float64(ty)})
		events.Push(sim.PointerPress{})
	}
	return nil
}

// reloadConfig re-reads the -config file and swaps it in.
func (g *Game) reloadConfig() {
	if g.configPath == "" {
		log.Print("no -config file to reload")
		return
	}
	p, err := sim.LoadProfile(g.configPath)
	if err != nil {
		log.Printf("reload %s: %v", g.configPath, err)
		return
	}
	g.driver.Events().Push(sim.SwapProfile{Profile: p})
	log.Printf("reloaded profile %q from %s", p.Name, g.configPath)
}
