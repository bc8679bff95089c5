package garland

import (
	"math"
	"sync/atomic"
)

// Hand landmark indices, matching the 21-point hand topology used by common
// hand-tracking models. Only three of the 21 points are consulted.
const (
	// LandmarkCount is the number of points in a complete hand frame.
	LandmarkCount = 21

	landmarkWrist    = 0
	landmarkThumbTip = 4
	landmarkIndexTip = 8
)

// DefaultPinchThreshold is the normalized thumb-to-index distance below
// which a hand counts as pinching. Empirically tuned; distances exactly at
// the threshold do NOT count as a pinch.
const DefaultPinchThreshold = 0.08

// Landmark is a single tracked point on a detected hand, normalized to
// [0, 1] in image space. Z is relative depth and currently unused by the
// classifier.
type Landmark struct {
	X, Y, Z float64
}

// HandFrame is one detector output: the capture timestamp and either zero
// landmarks (no hand) or exactly LandmarkCount landmarks.
type HandFrame struct {
	TimestampMS int64
	Landmarks   []Landmark
}

// GestureSample is the discrete gesture signal derived from one frame.
// It is latest-value-wins: consumers only ever care about the newest sample.
type GestureSample struct {
	HandPresent bool
	Pinching    bool
	// PalmX is the wrist x-coordinate in [0, 1], used as the rotation
	// input. 0.5 when no hand is present.
	PalmX float64
}

// NeutralGesture is the sample emitted when no hand is in view.
var NeutralGesture = GestureSample{PalmX: 0.5}

// Classifier turns raw hand frames into gesture samples. It keeps the
// last-processed timestamp so a stale frame (same capture time as the
// previous one) is skipped instead of reclassified.
type Classifier struct {
	// PinchThreshold overrides DefaultPinchThreshold when > 0.
	PinchThreshold float64

	lastTS int64
	seen   bool
}

// Classify classifies one frame. The second return value is false when the
// frame was skipped: either its timestamp matches the last processed frame,
// or it carries a malformed landmark set (neither empty nor complete).
func (c *Classifier) Classify(f HandFrame) (GestureSample, bool) {
	if c.seen && f.TimestampMS == c.lastTS {
		return GestureSample{}, false
	}
	if len(f.Landmarks) != 0 && len(f.Landmarks) != LandmarkCount {
		return GestureSample{}, false
	}
	c.lastTS = f.TimestampMS
	c.seen = true

	if len(f.Landmarks) == 0 {
		return NeutralGesture, true
	}

	threshold := c.PinchThreshold
	if threshold <= 0 {
		threshold = DefaultPinchThreshold
	}

	thumb := f.Landmarks[landmarkThumbTip]
	index := f.Landmarks[landmarkIndexTip]
	dx := thumb.X - index.X
	dy := thumb.Y - index.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	return GestureSample{
		HandPresent: true,
		Pinching:    dist < threshold,
		PalmX:       f.Landmarks[landmarkWrist].X,
	}, true
}

// GestureSource is anything that can supply the latest gesture sample. The
// scene polls it once per tick. Available reports whether gesture input is
// live; when false the scene shows the fallback status and samples are
// ignored.
type GestureSource interface {
	Sample() GestureSample
	Available() bool
}

// latestCell is a lock-free single-writer/any-reader latest-value cell.
// The detection loop stores into it out-of-band; the render tick loads
// whatever is newest. Wrapping in a struct keeps the concrete type stored
// in the atomic.Value consistent.
type latestCell[T any] struct {
	v atomic.Value
}

type cellBox[T any] struct {
	val T
}

// Store publishes v as the latest value.
func (c *latestCell[T]) Store(v T) {
	c.v.Store(cellBox[T]{val: v})
}

// Load returns the latest value, or def if nothing was ever stored.
func (c *latestCell[T]) Load(def T) T {
	if b, ok := c.v.Load().(cellBox[T]); ok {
		return b.val
	}
	return def
}
