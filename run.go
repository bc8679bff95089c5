package garland

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig controls the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowOverlay   bool
	// OnUpdate, if set, runs once per tick before the scene updates.
	// Returning an error stops the game loop.
	OnUpdate func() error
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene    *Scene
	w, h     int
	onUpdate func() error
}

func (g *game) Update() error {
	if g.onUpdate != nil {
		if err := g.onUpdate(); err != nil {
			return err
		}
	}
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

// Run opens a window and drives the scene until the window closes or
// OnUpdate returns an error. For full control, implement ebiten.Game
// yourself and call Scene.Update and Scene.Draw directly.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 960
	}
	if h <= 0 {
		h = 720
	}
	title := cfg.Title
	if title == "" {
		title = "Garland"
	}

	scene.cam.Width = w
	scene.cam.Height = h
	scene.SetOverlayVisible(cfg.ShowOverlay)

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(&game{scene: scene, w: w, h: h, onUpdate: cfg.OnUpdate})
}
