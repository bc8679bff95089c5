package garland

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Scene owns the whole greeting: the particle fields, the rotating rig, the
// mode state machine, the ornaments, and the camera. One Update call per
// tick drives every component synchronously; gesture detection runs
// elsewhere and is only read here.
type Scene struct {
	cfg     Config
	log     *zap.Logger
	sampler *Sampler

	mode ModeController
	rig  Rig

	fields    []*Field
	stars     []ParticlePoint
	ornaments []*Ornament

	gestures    GestureSource
	lastSample  GestureSample
	gestureLive bool

	cam *Camera
	r   renderer

	elapsed       float64
	rotationInput float64
	showOverlay   bool

	scratch  Transform
	touchBuf []ebiten.TouchID

	injectedClicks   int
	injectedGestures []GestureSample

	// CardDir is where SaveCard writes greeting cards ("cards" if empty).
	CardDir    string
	cardQueued bool
}

// NewScene builds a greeting from cfg. All layouts are sampled up front
// from cfg.Seed; the scene allocates nothing per tick after construction.
// log may be nil.
func NewScene(cfg Config, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	smp := NewSampler(cfg.Seed, cfg.Tree.Height, cfg.Tree.BaseRadius)
	radius := cfg.Tree.ExplosionRadius

	s := &Scene{
		cfg:     cfg,
		log:     log,
		sampler: smp,
		fields: []*Field{
			NewField(KindLeaf, smp.TreeLeaves(cfg.Tree.Leaves), smp.Explosion(cfg.Tree.Leaves, radius)),
			NewField(KindRibbon, smp.Ribbon(cfg.Tree.Ribbon), smp.Explosion(cfg.Tree.Ribbon, radius)),
			NewField(KindDecor, smp.Decor(cfg.Tree.Decor), smp.Explosion(cfg.Tree.Decor, radius)),
		},
		stars:         smp.Stars(cfg.Tree.Stars, Range{radius, radius * 2}),
		cam:           NewCamera(cfg.Window.Width, cfg.Window.Height),
		rotationInput: 0.5,
	}

	log.Info("scene built",
		zap.Int("particles", s.ParticleCount()),
		zap.Int("stars", len(s.stars)),
		zap.Uint64("seed", cfg.Seed))
	return s
}

// SetGestureSource attaches a gesture input source (typically a
// *LandmarkFeed). Passing nil reverts to click-only control.
func (s *Scene) SetGestureSource(src GestureSource) {
	s.gestures = src
}

// SetOverlayVisible toggles the status overlay.
func (s *Scene) SetOverlayVisible(v bool) {
	s.showOverlay = v
}

// Mode returns the current mode.
func (s *Scene) Mode() Mode { return s.mode.Mode() }

// ToggleMode flips between tree and explode, exactly as a click would.
func (s *Scene) ToggleMode() { s.mode.Toggle() }

// Yaw returns the rig's accumulated rotation in radians.
func (s *Scene) Yaw() float64 { return s.rig.Yaw() }

// Elapsed returns total scene time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// RotationInput returns the normalized rotation signal used this tick.
func (s *Scene) RotationInput() float64 { return s.rotationInput }

// Camera returns the scene camera for reframing.
func (s *Scene) Camera() *Camera { return s.cam }

// Field returns the field of the given kind, or nil for KindStar (stars are
// static and have no field).
func (s *Scene) Field(kind ParticleKind) *Field {
	for _, f := range s.fields {
		if f.Kind() == kind {
			return f
		}
	}
	return nil
}

// ParticleCount returns the number of animated particles (excluding stars).
func (s *Scene) ParticleCount() int {
	n := 0
	for _, f := range s.fields {
		n += f.Len()
	}
	return n
}

// AddOrnament hangs a photo on the tree and returns it.
func (s *Scene) AddOrnament(img *ebiten.Image) *Ornament {
	o := NewOrnament(img, s.sampler)
	s.ornaments = append(s.ornaments, o)
	s.log.Info("ornament added", zap.String("id", o.ID.String()))
	return o
}

// AddPhoto loads an image file and hangs it as an ornament.
func (s *Scene) AddPhoto(path string) (*Ornament, error) {
	img, err := LoadOrnamentImage(path)
	if err != nil {
		return nil, err
	}
	return s.AddOrnament(img), nil
}

// RemoveOrnament takes an ornament off the tree.
func (s *Scene) RemoveOrnament(o *Ornament) {
	for i, cur := range s.ornaments {
		if cur == o {
			copy(s.ornaments[i:], s.ornaments[i+1:])
			s.ornaments[len(s.ornaments)-1] = nil
			s.ornaments = s.ornaments[:len(s.ornaments)-1]
			return
		}
	}
}

// Ornaments returns the current ornaments. The slice MUST NOT be mutated.
func (s *Scene) Ornaments() []*Ornament { return s.ornaments }

// Update reads real input and advances the greeting by one fixed tick.
// Implements the update half of [ebiten.Game] via [Run].
func (s *Scene) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	if len(s.touchBuf) > 0 {
		clicked = true
	}

	s.advance(dt, clicked)
	return nil
}

// Advance steps the simulation by dt seconds using only injected input.
// It is the deterministic entry point: no ebiten input state is consulted.
func (s *Scene) Advance(dt float64) {
	s.advance(dt, false)
}

// advance is the per-tick driver: input, mode, rig, fields, ornaments.
func (s *Scene) advance(dt float64, clicked bool) {
	s.elapsed += dt

	if s.injectedClicks > 0 {
		s.injectedClicks--
		clicked = true
	}
	if clicked {
		s.mode.Toggle()
	}

	sample := NeutralGesture
	live := false
	if len(s.injectedGestures) > 0 {
		sample = s.injectedGestures[0]
		copy(s.injectedGestures, s.injectedGestures[1:])
		s.injectedGestures = s.injectedGestures[:len(s.injectedGestures)-1]
		live = true
	} else if s.gestures != nil && s.gestures.Available() {
		sample = s.gestures.Sample()
		live = true
	}
	if live {
		s.mode.Apply(sample)
	}
	s.lastSample = sample
	s.gestureLive = live

	// No hand (or no feed) resolves to the neutral rotation input.
	rot := 0.5
	if sample.HandPresent {
		rot = sample.PalmX
	}
	s.rotationInput = rot
	s.rig.Update(dt, rot)

	mode := s.mode.Mode()
	for _, f := range s.fields {
		f.Update(dt, mode)
	}
	for _, o := range s.ornaments {
		o.Update(dt, mode)
	}
}

var backdropColor = color.RGBA{R: 5, G: 8, B: 20, A: 255}

// Draw projects the whole scene and submits it back-to-front.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor)
	s.r.begin()

	// Stars sit outside the rig: they don't turn with the tree, which is
	// what sells the rig rotation as parallax.
	for i := range s.stars {
		st := &s.stars[i]
		sx, sy, factor, ok := s.cam.Project(st.Position)
		if !ok {
			continue
		}
		s.r.submit(renderCommand{
			x:        sx,
			y:        sy,
			size:     st.Scale * dotWorldSize * factor,
			depth:    s.cam.Depth(st.Position),
			color:    kindColor(KindStar, i, s.elapsed),
			additive: true,
		})
	}

	mode := s.mode.Mode()
	yaw := s.rig.Yaw()
	for _, f := range s.fields {
		for i := 0; i < f.Len(); i++ {
			f.At(i, s.elapsed, mode, &s.scratch)
			world := s.scratch.Position.RotateY(yaw)
			sx, sy, factor, ok := s.cam.Project(world)
			if !ok {
				continue
			}
			// The particle's own spin reads as a glint: the dot size
			// pulses with the Z rotation.
			size := s.scratch.Scale * dotWorldSize * factor
			size *= 0.85 + 0.15*math.Cos(s.scratch.Rotation.Z)
			s.r.submit(renderCommand{
				x:        sx,
				y:        sy,
				size:     size,
				depth:    s.cam.Depth(world),
				color:    kindColor(f.Kind(), i, s.elapsed),
				additive: true,
			})
		}
	}

	for _, o := range s.ornaments {
		o.render(&s.r, s.cam, yaw)
	}

	s.r.flush(screen)
	s.flushCard(screen)

	if s.showOverlay {
		s.drawOverlay(screen)
	}
}

// GestureStatus describes the gesture channel for the overlay.
func (s *Scene) GestureStatus() string {
	if !s.gestureLive {
		return "gestures off (click to toggle)"
	}
	if !s.lastSample.HandPresent {
		return "no hand in view"
	}
	if s.lastSample.Pinching {
		return "pinch: forming tree"
	}
	return fmt.Sprintf("open hand: scattered (x=%.2f)", s.lastSample.PalmX)
}
