package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/softdraw"
)

// game implements ebiten.Game, uploading the software-rendered frame to the
// screen each Draw.
type game struct {
	app  *app
	rgba []byte
	down bool
}

// Update implements ebiten.Game.Update.
func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	g.app.pointer(float64(x), float64(y))

	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down != g.down {
		g.app.button(down)
		g.down = down
	}
	if g.app.closeRequested() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.Draw.
func (g *game) Draw(screen *ebiten.Image) {
	buf, err := g.app.render()
	if err != nil {
		softdraw.Logger().Debug("view: frame error", "err", err)
	}
	softdraw.ToRGBA(g.rgba, buf)
	screen.WritePixels(g.rgba)
}

// Layout implements ebiten.Game.Layout. The logical screen is always the
// surface size; ebiten scales it to the window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.app.width, g.app.height
}

func runEbiten(a *app, title string, scale int) error {
	ebiten.SetWindowSize(a.width*scale, a.height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(&game{app: a, rgba: make([]byte, len(a.buf))})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
