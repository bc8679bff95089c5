package garland

import (
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ornament placement and display tuning.
var ornamentScatter = Range{20, 35}

const (
	ornamentWorldSize    = 2.4
	ornamentIntroSeconds = 0.8
)

// Ornament is an uploaded photo hanging on the tree. Both anchor positions
// are sampled once at creation and frozen for the ornament's lifetime; only
// the current position changes, easing toward the anchor selected by the
// active mode with the same first-order smoothing the particle fields use.
type Ornament struct {
	ID  uuid.UUID
	img *ebiten.Image

	treePos  Vec3
	burstPos Vec3
	// Yaw is the fixed orientation facing the tree's vertical axis.
	Yaw float64

	cur   Vec3
	scale *gween.Tween
	alpha *gween.Tween
	popS  float64
	popA  float64
}

// NewOrnament hangs a photo on the tree. The tree anchor lies inside the
// cone volume; the exploded anchor is a random direction at a fixed
// distance band from the origin. img may be nil, in which case the ornament
// renders as a plain dot.
func NewOrnament(img *ebiten.Image, s *Sampler) *Ornament {
	tree := s.OrnamentAnchor()
	o := &Ornament{
		ID:       uuid.New(),
		img:      img,
		treePos:  tree,
		burstPos: s.ScatterAnchor(ornamentScatter),
		Yaw:      math.Atan2(tree.X, tree.Z),
		cur:      tree,
		// Pop-in: scale overshoots slightly then settles, alpha fades up.
		scale: gween.New(0, 1, ornamentIntroSeconds, ease.OutBack),
		alpha: gween.New(0, 1, ornamentIntroSeconds*0.6, ease.OutQuad),
	}
	return o
}

// LoadOrnamentImage reads and decodes an image file for use as an ornament.
func LoadOrnamentImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ornament image: %w", err)
	}
	defer f.Close()
	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode ornament image %s: %w", path, err)
	}
	return img, nil
}

// Update eases the ornament toward its active anchor and advances the
// intro tween.
func (o *Ornament) Update(dt float64, mode Mode) {
	target := o.treePos
	if mode == ModeExplode {
		target = o.burstPos
	}
	o.cur = o.cur.LerpTowards(target, dt*smoothingRate)

	s, _ := o.scale.Update(float32(dt))
	a, _ := o.alpha.Update(float32(dt))
	o.popS = float64(s)
	o.popA = float64(a)
}

// Position returns the ornament's current (smoothed) position.
func (o *Ornament) Position() Vec3 { return o.cur }

// TreeAnchor returns the frozen tree-mode anchor.
func (o *Ornament) TreeAnchor() Vec3 { return o.treePos }

// ScatterTarget returns the frozen explode-mode anchor.
func (o *Ornament) ScatterTarget() Vec3 { return o.burstPos }

// render submits the ornament billboard to the renderer.
func (o *Ornament) render(r *renderer, cam *Camera, rigYaw float64) {
	world := o.cur.RotateY(rigYaw)
	sx, sy, factor, ok := cam.Project(world)
	if !ok {
		return
	}
	r.submit(renderCommand{
		img:   o.img,
		x:     sx,
		y:     sy,
		size:  ornamentWorldSize * factor * o.popS,
		depth: cam.Depth(world),
		color: Color{1, 1, 1, o.popA},
	})
}
