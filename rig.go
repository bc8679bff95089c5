package garland

// ModeController is the two-state machine gating target selection. There is
// no transition queue: the last writer in a tick wins, and every particle
// system reads the same value on the next update.
type ModeController struct {
	mode Mode
}

// Mode returns the current mode.
func (c *ModeController) Mode() Mode { return c.mode }

// Toggle flips the mode unconditionally. Bound to click/tap input.
func (c *ModeController) Toggle() {
	if c.mode == ModeTree {
		c.mode = ModeExplode
	} else {
		c.mode = ModeTree
	}
}

// Apply drives the mode from a gesture sample: a pinch forms the tree, an
// open hand scatters it. Samples without a hand leave the mode unchanged.
func (c *ModeController) Apply(s GestureSample) {
	if !s.HandPresent {
		return
	}
	if s.Pinching {
		c.mode = ModeTree
	} else {
		c.mode = ModeExplode
	}
}

// Rig is the rotating parent group of the whole particle scene. Its yaw
// accumulates from a normalized rotation input plus a constant ambient
// drift, so the tree keeps turning slowly even with no hand in view.
type Rig struct {
	yaw float64
}

// Yaw returns the accumulated yaw in radians.
func (r *Rig) Yaw() float64 { return r.yaw }

// Update advances the yaw by one tick. input is the normalized rotation
// signal in [0, 1]; 0.5 is neutral, the ends spin the rig at up to
// ±1 rad/s on top of the ambient drift.
func (r *Rig) Update(dt, input float64) {
	torque := (input - 0.5) * 2
	r.yaw += torque*dt + driftRate*dt
}
