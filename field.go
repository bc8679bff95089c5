package garland

import "math"

// Transform is the per-particle output of a Field: the world-space pose the
// renderer consumes. Callers pass one Transform as a reusable scratch value;
// nothing in the per-particle path allocates.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
}

// Per-axis spin rates in radians per second, applied on top of each
// particle's fixed base rotation.
const (
	spinRateX = 0.4
	spinRateY = 0.6
	spinRateZ = 0.3
)

// hover oscillation tuning. Phase is spread by index so particles don't
// bob in lockstep.
const (
	hoverFreq  = 1.5
	hoverPhase = 0.37
)

// Field owns the runtime state of one particle population. It holds the two
// precomputed layouts (tree and exploded) plus the mutable current position
// of every particle, and eases positions toward the layout selected by the
// current Mode each tick.
//
// The three slices are index-aligned: index i always denotes the same
// logical particle in both layouts and in the runtime state.
type Field struct {
	kind  ParticleKind
	tree  []ParticlePoint
	burst []Vec3
	cur   []Vec3
}

// NewField creates a Field from a tree layout and an exploded layout.
// Particles start at their tree positions.
// Panics if the layouts differ in length.
func NewField(kind ParticleKind, tree []ParticlePoint, burst []Vec3) *Field {
	if len(tree) != len(burst) {
		panic("garland: tree and explosion layouts must have equal length")
	}
	cur := make([]Vec3, len(tree))
	for i, p := range tree {
		cur[i] = p.Position
	}
	return &Field{kind: kind, tree: tree, burst: burst, cur: cur}
}

// Kind returns the particle kind of this field.
func (f *Field) Kind() ParticleKind { return f.kind }

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.tree) }

// Update eases every particle toward the layout selected by mode. The
// smoothing is exponential: each tick covers clamp(dt*2.5, 0, 1) of the
// remaining distance, so convergence is asymptotic and never overshoots.
func (f *Field) Update(dt float64, mode Mode) {
	t := clamp(dt*smoothingRate, 0, 1)
	if mode == ModeExplode {
		for i := range f.cur {
			c := &f.cur[i]
			b := f.burst[i]
			c.X += (b.X - c.X) * t
			c.Y += (b.Y - c.Y) * t
			c.Z += (b.Z - c.Z) * t
		}
		return
	}
	for i := range f.cur {
		c := &f.cur[i]
		p := f.tree[i].Position
		c.X += (p.X - c.X) * t
		c.Y += (p.Y - c.Y) * t
		c.Z += (p.Z - c.Z) * t
	}
}

// At writes particle i's current pose into out: the smoothed position plus
// the hover offset, the accumulated spin on top of the base rotation, and
// the mode-adjusted scale. elapsed is total scene time in seconds.
func (f *Field) At(i int, elapsed float64, mode Mode, out *Transform) {
	out.Position = f.cur[i]
	if f.kind == KindLeaf {
		amp := hoverAmpTree
		if mode == ModeExplode {
			amp = hoverAmpExplode
		}
		out.Position.Y += amp * math.Sin(elapsed*hoverFreq+float64(i)*hoverPhase)
	}

	base := f.tree[i].Rotation
	out.Rotation.X = base.X + elapsed*spinRateX
	out.Rotation.Y = base.Y + elapsed*spinRateY
	out.Rotation.Z = base.Z + elapsed*spinRateZ

	out.Scale = f.tree[i].Scale
	if mode == ModeExplode {
		out.Scale *= explodeScale
	}
}

// CurrentPosition returns particle i's smoothed position (without hover).
func (f *Field) CurrentPosition(i int) Vec3 { return f.cur[i] }

// TreeTarget returns particle i's tree layout position.
func (f *Field) TreeTarget(i int) Vec3 { return f.tree[i].Position }

// ExplodeTarget returns particle i's exploded layout position.
func (f *Field) ExplodeTarget(i int) Vec3 { return f.burst[i] }
