package garland

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// Range is a general-purpose min/max range used for randomized parameters.
type Range struct {
	Min, Max float64
}

// Mode is the two-state toggle governing which particle layout is active.
type Mode uint8

const (
	ModeTree    Mode = iota // particles form the tree silhouette
	ModeExplode             // particles scatter into a spherical cloud
)

// String returns "tree" or "explode".
func (m Mode) String() string {
	if m == ModeExplode {
		return "explode"
	}
	return "tree"
}

// ParticleKind distinguishes the particle populations of the greeting.
// The hover amplitude and palette depend on the kind.
type ParticleKind uint8

const (
	KindLeaf   ParticleKind = iota // foliage filling the cone volume
	KindRibbon                     // spiral ribbon wrapped around the cone
	KindDecor                      // ornament lights on the cone surface
	KindStar                       // static background stars
)

// String returns the lowercase kind name.
func (k ParticleKind) String() string {
	switch k {
	case KindRibbon:
		return "ribbon"
	case KindDecor:
		return "decor"
	case KindStar:
		return "star"
	default:
		return "leaf"
	}
}

// ParticlePoint is one particle of a generated layout: a position, a render
// scale, and a fixed base rotation. Layouts are immutable once sampled; the
// runtime state lives in Field.
type ParticlePoint struct {
	Position Vec3
	Scale    float64
	Rotation Vec3
}

// Animation constants shared by the particle fields and the ornaments.
const (
	// smoothingRate is the exponential smoothing gain: each tick a particle
	// covers clamp(dt*smoothingRate, 0, 1) of its remaining distance to the
	// active target.
	smoothingRate = 2.5

	// hoverAmpTree and hoverAmpExplode are the leaf hover amplitudes per mode.
	hoverAmpTree    = 0.05
	hoverAmpExplode = 0.2

	// explodeScale is the factor applied to particle scale while exploded.
	explodeScale = 0.5

	// driftRate is the ambient yaw drift of the rig in radians per second.
	driftRate = 0.1
)

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp limits v to the range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
