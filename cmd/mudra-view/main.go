package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
)

const (
	windowWidth  = 1024
	windowHeight = 768

	// Camera parameters for projecting the particle cloud.
	cameraDistance = 620.0
	focalLength    = 560.0
	orbitSpeed     = 0.15

	// Cap on circles drawn per frame; larger clouds are strided.
	maxDrawn = 20000
)

// game drives the pipeline from the render loop and projects the particle
// cloud into the window.
type game struct {
	app     *app.App
	time    float64
	angle   float64
	prevKey map[ebiten.Key]bool
}

func newGame(a *app.App) *game {
	return &game{
		app:     a,
		prevKey: make(map[ebiten.Key]bool),
	}
}

func (g *game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeySpace) {
		g.app.SetEnabled(!g.app.IsEnabled())
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.time += 1.0 / 60.0 // Assuming 60 FPS
	g.angle = g.time * orbitSpeed
	g.app.Tick(g.time)

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 16, A: 255})

	engine := g.app.Engine()
	if engine == nil {
		ebitenutil.DebugPrintAt(screen, "starting...", 12, 12)
		return
	}

	positions := engine.Positions()
	colors := engine.Colors()
	count := engine.Count()

	stride := 1
	if count > maxDrawn {
		stride = count/maxDrawn + 1
	}

	sinA, cosA := math.Sincos(g.angle)
	cx, cy := float64(windowWidth)/2, float64(windowHeight)/2

	for i := 0; i < count; i += stride {
		x := float64(positions[i*3])
		y := float64(positions[i*3+1])
		z := float64(positions[i*3+2])

		// Orbit the camera around the vertical axis.
		rx := x*cosA + z*sinA
		rz := -x*sinA + z*cosA

		depth := cameraDistance + rz
		if depth < 1 {
			continue
		}
		scale := focalLength / depth

		sx := cx + rx*scale
		sy := cy - y*scale
		if sx < 0 || sx >= windowWidth || sy < 0 || sy >= windowHeight {
			continue
		}

		c := color.RGBA{
			R: uint8(colors[i*3] * 255),
			G: uint8(colors[i*3+1] * 255),
			B: uint8(colors[i*3+2] * 255),
			A: 255,
		}
		radius := float32(1.6 * scale)
		if radius < 0.7 {
			radius = 0.7
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, c, false)
	}

	snap := g.app.Snapshot()
	status := fmt.Sprintf("state: %s  gesture: %s  particles: %d", snap.State, snap.Gesture, count)
	if !g.app.IsEnabled() {
		status += "  [detection paused - Space to resume]"
	}
	if snap.Err != "" {
		status += "  error: " + snap.Err
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a := app.New(cfg, nil)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Mudra - Space: Pause Detection, Esc/Q: Quit")

	g := newGame(a)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
