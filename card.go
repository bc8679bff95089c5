package garland

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// defaultCardDir is where greeting cards are written when CardDir is unset.
const defaultCardDir = "cards"

// SaveCard queues the current view to be captured at the end of this
// frame's Draw call and written as a PNG greeting card. Safe to call from
// Update or Draw.
func (s *Scene) SaveCard() {
	s.cardQueued = true
}

// flushCard captures the rendered frame if a card was requested this frame.
// Called at the end of Scene.Draw. Failures are logged, never fatal.
func (s *Scene) flushCard(screen *ebiten.Image) {
	if !s.cardQueued {
		return
	}
	s.cardQueued = false

	dir := s.CardDir
	if dir == "" {
		dir = defaultCardDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Warn("could not create card directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA for encoding.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}

	path := filepath.Join(dir, fmt.Sprintf("greeting_%s.png", time.Now().Format("20060102_150405")))
	if err := writeCardPNG(path, img); err != nil {
		s.log.Warn("could not save card", zap.Error(err))
		return
	}
	s.log.Info("card saved", zap.String("path", path))
}

func writeCardPNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
