package garland

import (
	"math"
	"math/rand/v2"
)

const (
	// ribbonRevolutions is how many times the ribbon winds around the cone
	// from base to tip.
	ribbonRevolutions = 3.5
	// ribbonOffset pushes the ribbon outside the foliage shell.
	ribbonOffset = 0.5
	// decorSurface places lights on (just inside) the cone surface.
	decorSurface = 0.95
	// decorTopBias is the power-law exponent biasing lights toward the tip.
	decorTopBias = 0.4
	// ornamentInset pulls photo ornaments toward the trunk so they read as
	// hanging inside the foliage rather than floating on it.
	ornamentInset = 0.8
)

// Sampler generates particle layouts for the greeting. All sampling goes
// through a single seeded PCG source, so two Samplers built with the same
// seed and geometry produce identical layouts.
type Sampler struct {
	rng        *rand.Rand
	height     float64
	baseRadius float64
}

// NewSampler creates a Sampler for a cone of the given height and base
// radius, seeded with seed.
func NewSampler(seed uint64, height, baseRadius float64) *Sampler {
	return &Sampler{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		height:     height,
		baseRadius: baseRadius,
	}
}

// random returns a uniform value in [r.Min, r.Max).
func (s *Sampler) random(r Range) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// coneRadius returns the tree radius at normalized height t in [0, 1],
// where t=0 is the base and t=1 the tip.
func (s *Sampler) coneRadius(t float64) float64 {
	return s.baseRadius * (1 - t)
}

// Height returns the tree height the sampler was built with.
func (s *Sampler) Height() float64 { return s.height }

// BaseRadius returns the cone base radius the sampler was built with.
func (s *Sampler) BaseRadius() float64 { return s.baseRadius }

// baseRotation returns a uniformly random orientation for a fresh particle.
func (s *Sampler) baseRotation() Vec3 {
	return Vec3{
		X: s.rng.Float64() * 2 * math.Pi,
		Y: s.rng.Float64() * 2 * math.Pi,
		Z: s.rng.Float64() * 2 * math.Pi,
	}
}

// TreeLeaves samples count foliage particles filling the cone volume.
// The sqrt radial bias concentrates density toward the shell so the
// silhouette reads as solid from any angle.
func (s *Sampler) TreeLeaves(count int) []ParticlePoint {
	pts := make([]ParticlePoint, 0, count)
	for i := 0; i < count; i++ {
		y := s.random(Range{-s.height / 2, s.height / 2})
		t := (y + s.height/2) / s.height
		r := math.Sqrt(s.random(Range{0.2, 1})) * s.coneRadius(t)
		angle := s.rng.Float64() * 2 * math.Pi
		sin, cos := math.Sincos(angle)
		pts = append(pts, ParticlePoint{
			Position: Vec3{X: cos * r, Y: y, Z: sin * r},
			Scale:    s.random(Range{0.5, 1.2}),
			Rotation: s.baseRotation(),
		})
	}
	return pts
}

// Ribbon samples count particles along a spiral wrapped around the cone,
// offset outward so it sits on top of the foliage.
func (s *Sampler) Ribbon(count int) []ParticlePoint {
	pts := make([]ParticlePoint, 0, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count)
		y := -s.height/2 + t*s.height
		angle := t * 2 * math.Pi * ribbonRevolutions
		r := s.coneRadius(t) + ribbonOffset
		sin, cos := math.Sincos(angle)
		pts = append(pts, ParticlePoint{
			Position: Vec3{X: cos * r, Y: y, Z: sin * r},
			Scale:    s.random(Range{0.7, 0.9}),
			Rotation: s.baseRotation(),
		})
	}
	return pts
}

// Decor samples count ornament lights on the cone surface. Height follows a
// power law toward the tip, where lights are traditionally densest.
func (s *Sampler) Decor(count int) []ParticlePoint {
	pts := make([]ParticlePoint, 0, count)
	for i := 0; i < count; i++ {
		t := math.Pow(s.rng.Float64(), decorTopBias)
		y := -s.height/2 + t*s.height
		r := decorSurface * s.coneRadius(t)
		angle := s.rng.Float64() * 2 * math.Pi
		sin, cos := math.Sincos(angle)
		pts = append(pts, ParticlePoint{
			Position: Vec3{X: cos * r, Y: y, Z: sin * r},
			Scale:    s.random(Range{0.6, 1.1}),
			Rotation: s.baseRotation(),
		})
	}
	return pts
}

// Explosion samples count positions uniformly inside a sphere of the given
// radius. The cube-root radial distribution yields uniform volumetric
// density rather than clustering at the center.
func (s *Sampler) Explosion(count int, radius float64) []Vec3 {
	pts := make([]Vec3, 0, count)
	for i := 0; i < count; i++ {
		pts = append(pts, s.sphericalPoint(radius*math.Cbrt(s.rng.Float64())))
	}
	return pts
}

// Stars samples count background star positions on a spherical shell whose
// radius is uniform in band. Unlike Explosion this is deliberately not
// volume-uniform; the shell keeps stars behind the action.
func (s *Sampler) Stars(count int, band Range) []ParticlePoint {
	pts := make([]ParticlePoint, 0, count)
	for i := 0; i < count; i++ {
		pts = append(pts, ParticlePoint{
			Position: s.sphericalPoint(s.random(band)),
			Scale:    s.random(Range{0.5, 1.5}),
		})
	}
	return pts
}

// sphericalPoint returns a uniformly distributed direction scaled to r.
func (s *Sampler) sphericalPoint(r float64) Vec3 {
	theta := 2 * math.Pi * s.rng.Float64()
	phi := math.Acos(2*s.rng.Float64() - 1)
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: r * sinPhi * cosTheta,
		Y: r * cosPhi,
		Z: r * sinPhi * sinTheta,
	}
}

// OrnamentAnchor returns a position inside the cone volume for hanging a
// photo ornament, pulled inward so the photo nests in the foliage.
func (s *Sampler) OrnamentAnchor() Vec3 {
	y := s.random(Range{-s.height / 2, s.height / 2})
	t := (y + s.height/2) / s.height
	r := math.Sqrt(s.rng.Float64()) * s.coneRadius(t) * ornamentInset
	angle := s.rng.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	return Vec3{X: cos * r, Y: y, Z: sin * r}
}

// ScatterAnchor returns a position in a random direction from the origin at
// a distance uniform in dist. Used for the exploded ornament placement.
func (s *Sampler) ScatterAnchor(dist Range) Vec3 {
	return s.sphericalPoint(s.random(dist))
}
