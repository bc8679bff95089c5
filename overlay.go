package garland

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawOverlay prints the status lines in the top-left corner. Debug-quality
// text on purpose; the greeting itself has no chrome.
func (s *Scene) drawOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"FPS: %.1f  particles: %d\nmode: %s\n%s",
		ebiten.ActualFPS(),
		s.ParticleCount(),
		s.mode.Mode(),
		s.GestureStatus(),
	), 8, 8)
}
