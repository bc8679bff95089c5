package garland

// nearPlane culls points that get too close to (or behind) the viewer while
// flying outward during an explosion.
const nearPlane = 1.0

// Camera projects world-space points onto the screen with a simple
// perspective divide: screen = world * FOV / (Distance + z). The camera sits
// on the +Z axis looking at the origin, tilted slightly downward so the
// tree base is visible.
type Camera struct {
	// FOV is the projection factor in pixels.
	FOV float64
	// Distance is the viewer distance from the world origin.
	Distance float64
	// Tilt is the downward pitch in radians applied before projection.
	Tilt float64

	// Viewport size in pixels.
	Width, Height int
}

// NewCamera creates a camera framing the default tree at the given viewport
// size.
func NewCamera(width, height int) *Camera {
	return &Camera{
		FOV:      1000,
		Distance: 40,
		Tilt:     0.15,
		Width:    width,
		Height:   height,
	}
}

// Project maps a world-space point to screen coordinates. It returns the
// screen position, the perspective factor (pixels per world unit at that
// depth, used to size billboards), and whether the point is in front of the
// near plane. World +Y maps to screen up.
func (c *Camera) Project(world Vec3) (sx, sy, factor float64, ok bool) {
	v := world.RotateX(c.Tilt)
	depth := c.Distance + v.Z
	if depth < nearPlane {
		return 0, 0, 0, false
	}
	factor = c.FOV / depth
	sx = v.X*factor + float64(c.Width)/2
	sy = -v.Y*factor + float64(c.Height)/2
	return sx, sy, factor, true
}

// Depth returns the view-space depth of a world point, used for back-to-
// front ordering. Larger is farther away.
func (c *Camera) Depth(world Vec3) float64 {
	return c.Distance + world.RotateX(c.Tilt).Z
}
