package garland

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// dotSize is the pixel size of the prerendered soft dot billboard.
const dotSize = 16

// dotWorldSize is the world-space diameter of a scale-1 particle.
const dotWorldSize = 0.22

// renderCommand is one billboard to draw: a soft dot (img == nil) or a
// photo ornament image. Commands are collected during traversal and
// submitted back-to-front.
type renderCommand struct {
	img      *ebiten.Image
	x, y     float64 // screen center
	size     float64 // on-screen diameter (dot) or width (image)
	depth    float64
	color    Color
	additive bool
}

// renderer collects, depth-sorts, and submits billboards. The command
// buffer, draw options, and dot texture are all reused across frames, so
// steady-state drawing performs no allocation.
type renderer struct {
	cmds []renderCommand
	dot  *ebiten.Image
	opts ebiten.DrawImageOptions
}

// begin resets the command buffer for a new frame.
func (r *renderer) begin() {
	r.cmds = r.cmds[:0]
}

// submit appends one command.
func (r *renderer) submit(cmd renderCommand) {
	r.cmds = append(r.cmds, cmd)
}

// flush sorts commands far-to-near and draws them. The painter's ordering
// is what makes the additive dots layer correctly with the opaque photos.
func (r *renderer) flush(screen *ebiten.Image) {
	if r.dot == nil {
		r.dot = newDotImage()
	}

	slices.SortFunc(r.cmds, func(a, b renderCommand) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	for i := range r.cmds {
		cmd := &r.cmds[i]
		img := cmd.img
		if img == nil {
			img = r.dot
		}
		w := img.Bounds().Dx()
		h := img.Bounds().Dy()

		o := &r.opts
		o.GeoM.Reset()
		s := cmd.size / float64(w)
		o.GeoM.Scale(s, s)
		o.GeoM.Translate(cmd.x-cmd.size/2, cmd.y-s*float64(h)/2)

		o.ColorScale.Reset()
		o.ColorScale.Scale(
			float32(cmd.color.R*cmd.color.A),
			float32(cmd.color.G*cmd.color.A),
			float32(cmd.color.B*cmd.color.A),
			float32(cmd.color.A),
		)

		if cmd.additive {
			o.Blend = ebiten.BlendLighter
		} else {
			o.Blend = ebiten.BlendSourceOver
		}

		screen.DrawImage(img, o)
	}
}

// newDotImage builds the shared soft-dot texture: a radial falloff from an
// opaque center to a transparent rim, premultiplied white.
func newDotImage() *ebiten.Image {
	pix := make([]byte, dotSize*dotSize*4)
	center := float64(dotSize-1) / 2
	for y := 0; y < dotSize; y++ {
		for x := 0; x < dotSize; x++ {
			dx := (float64(x) - center) / center
			dy := (float64(y) - center) / center
			d := math.Sqrt(dx*dx + dy*dy)
			a := clamp(1-d, 0, 1)
			a *= a // quadratic falloff reads as a glow under additive blending
			v := byte(a * 255)
			i := (y*dotSize + x) * 4
			pix[i] = v
			pix[i+1] = v
			pix[i+2] = v
			pix[i+3] = v
		}
	}
	img := ebiten.NewImage(dotSize, dotSize)
	img.WritePixels(pix)
	return img
}

// Palette. Leaves cycle through green shades by index; decor lights twinkle
// and rotate through a small set of classic bulb colors.
var (
	leafShades = []Color{
		{0.10, 0.45, 0.16, 1},
		{0.13, 0.55, 0.20, 1},
		{0.18, 0.65, 0.24, 1},
		{0.08, 0.38, 0.14, 1},
	}
	ribbonColor = Color{0.85, 0.12, 0.15, 1}
	bulbColors  = []Color{
		{1.00, 0.85, 0.35, 1},
		{0.95, 0.30, 0.30, 1},
		{0.35, 0.65, 1.00, 1},
		{1.00, 0.55, 0.85, 1},
	}
	starColor = Color{0.9, 0.92, 1.0, 1}
)

// kindColor returns the display color of particle i of the given kind at
// elapsed seconds. Decor bulbs and stars twinkle by modulating alpha.
func kindColor(kind ParticleKind, i int, elapsed float64) Color {
	switch kind {
	case KindRibbon:
		return ribbonColor
	case KindDecor:
		c := bulbColors[i%len(bulbColors)]
		c.A = 0.6 + 0.4*math.Sin(elapsed*3+float64(i)*1.3)
		if c.A < 0 {
			c.A = 0
		}
		return c
	case KindStar:
		c := starColor
		c.A = 0.5 + 0.5*math.Sin(elapsed*0.8+float64(i)*2.1)
		if c.A < 0.15 {
			c.A = 0.15
		}
		return c
	default:
		return leafShades[i%len(leafShades)]
	}
}
