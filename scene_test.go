package garland

import (
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	// Small populations keep the tests fast; the semantics don't depend
	// on the counts.
	cfg.Tree.Leaves = 50
	cfg.Tree.Ribbon = 20
	cfg.Tree.Decor = 20
	cfg.Tree.Stars = 10
	return cfg
}

func TestSceneBuildsAllFields(t *testing.T) {
	s := NewScene(testConfig(), nil)
	if s.ParticleCount() != 90 {
		t.Errorf("ParticleCount = %d, want 90", s.ParticleCount())
	}
	for _, kind := range []ParticleKind{KindLeaf, KindRibbon, KindDecor} {
		if s.Field(kind) == nil {
			t.Errorf("missing %v field", kind)
		}
	}
	if s.Field(KindStar) != nil {
		t.Error("stars should not have a field")
	}
	if s.Mode() != ModeTree {
		t.Errorf("initial mode = %v, want tree", s.Mode())
	}
}

func TestSceneClickTogglesMode(t *testing.T) {
	s := NewScene(testConfig(), nil)

	s.InjectClick()
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeExplode {
		t.Errorf("after click mode = %v, want explode", s.Mode())
	}

	s.InjectClick()
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeTree {
		t.Errorf("after second click mode = %v, want tree", s.Mode())
	}
}

func TestSceneOneInjectedClickPerTick(t *testing.T) {
	s := NewScene(testConfig(), nil)
	s.InjectClick()
	s.InjectClick()
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeExplode {
		t.Errorf("first tick consumed both clicks; mode = %v, want explode", s.Mode())
	}
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeTree {
		t.Errorf("second click not consumed on second tick; mode = %v", s.Mode())
	}
}

func TestSceneGestureDrivesModeAndRotation(t *testing.T) {
	s := NewScene(testConfig(), nil)

	s.InjectOpenHand(0.9)
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeExplode {
		t.Errorf("open hand: mode = %v, want explode", s.Mode())
	}
	assertNear(t, "rotation input", s.RotationInput(), 0.9)

	s.InjectPinch(0.1)
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeTree {
		t.Errorf("pinch: mode = %v, want tree", s.Mode())
	}
	assertNear(t, "rotation input", s.RotationInput(), 0.1)
}

func TestSceneNoHandNeutralRotation(t *testing.T) {
	s := NewScene(testConfig(), nil)

	// Steer hard right, then lose the hand: rotation must snap back to
	// neutral, and the mode must stay where it was.
	s.InjectOpenHand(1.0)
	s.Advance(1.0 / 60.0)
	s.InjectGesture(NeutralGesture)
	s.Advance(1.0 / 60.0)

	assertNear(t, "neutral rotation", s.RotationInput(), 0.5)
	if s.Mode() != ModeExplode {
		t.Errorf("no-hand sample changed mode to %v", s.Mode())
	}
}

func TestSceneYawAccumulatesWithoutInput(t *testing.T) {
	s := NewScene(testConfig(), nil)
	prev := s.Yaw()
	for i := 0; i < 60; i++ {
		s.Advance(1.0 / 60.0)
		if s.Yaw() <= prev {
			t.Fatalf("tick %d: yaw %v did not increase from %v", i, s.Yaw(), prev)
		}
		prev = s.Yaw()
	}
}

func TestSceneParticlesScatterAndReturn(t *testing.T) {
	s := NewScene(testConfig(), nil)
	leaves := s.Field(KindLeaf)

	s.InjectClick()
	for i := 0; i < 300; i++ {
		s.Advance(1.0 / 60.0)
	}
	spread := 0.0
	for i := 0; i < leaves.Len(); i++ {
		spread += leaves.CurrentPosition(i).DistanceTo(leaves.TreeTarget(i))
	}
	if spread/float64(leaves.Len()) < 5 {
		t.Fatalf("average scatter distance %v too small after 5s exploded", spread/float64(leaves.Len()))
	}

	s.InjectClick()
	for i := 0; i < 600; i++ {
		s.Advance(1.0 / 60.0)
	}
	for i := 0; i < leaves.Len(); i++ {
		if d := leaves.CurrentPosition(i).DistanceTo(leaves.TreeTarget(i)); d > 1e-3 {
			t.Fatalf("leaf %d still %v from its tree position after returning", i, d)
		}
	}
}

// fakeGestureSource is a scriptable GestureSource for wiring tests.
type fakeGestureSource struct {
	sample    GestureSample
	available bool
}

func (f *fakeGestureSource) Sample() GestureSample { return f.sample }
func (f *fakeGestureSource) Available() bool       { return f.available }

func TestSceneReadsGestureSource(t *testing.T) {
	s := NewScene(testConfig(), nil)
	src := &fakeGestureSource{
		sample:    GestureSample{HandPresent: true, Pinching: false, PalmX: 0.7},
		available: true,
	}
	s.SetGestureSource(src)

	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeExplode {
		t.Errorf("live open hand: mode = %v, want explode", s.Mode())
	}
	assertNear(t, "live rotation", s.RotationInput(), 0.7)

	// An unavailable source behaves like no source at all.
	src.available = false
	src.sample = GestureSample{HandPresent: true, Pinching: true, PalmX: 0.1}
	s.Advance(1.0 / 60.0)
	if s.Mode() != ModeExplode {
		t.Errorf("unavailable source changed mode to %v", s.Mode())
	}
	assertNear(t, "fallback rotation", s.RotationInput(), 0.5)
}

func TestSceneGestureStatus(t *testing.T) {
	s := NewScene(testConfig(), nil)
	s.Advance(1.0 / 60.0)
	if got := s.GestureStatus(); got != "gestures off (click to toggle)" {
		t.Errorf("status without feed = %q", got)
	}

	s.InjectGesture(NeutralGesture)
	s.Advance(1.0 / 60.0)
	if got := s.GestureStatus(); got != "no hand in view" {
		t.Errorf("status with neutral sample = %q", got)
	}

	s.InjectPinch(0.5)
	s.Advance(1.0 / 60.0)
	if got := s.GestureStatus(); got != "pinch: forming tree" {
		t.Errorf("status while pinching = %q", got)
	}
}

func TestSceneOrnamentLifecycle(t *testing.T) {
	s := NewScene(testConfig(), nil)
	o := s.AddOrnament(nil)
	if len(s.Ornaments()) != 1 {
		t.Fatalf("ornament count = %d, want 1", len(s.Ornaments()))
	}

	// Scatter: the ornament must head to its frozen scatter target.
	s.InjectClick()
	for i := 0; i < 600; i++ {
		s.Advance(1.0 / 60.0)
	}
	if d := o.Position().DistanceTo(o.ScatterTarget()); d > 1e-3 {
		t.Errorf("ornament %v from scatter target after 10s", d)
	}

	s.RemoveOrnament(o)
	if len(s.Ornaments()) != 0 {
		t.Errorf("ornament count after removal = %d, want 0", len(s.Ornaments()))
	}
}

func TestSceneAdvanceDoesNotAllocate(t *testing.T) {
	s := NewScene(testConfig(), nil)
	s.Advance(1.0 / 60.0) // warm up
	allocs := testing.AllocsPerRun(50, func() {
		s.Advance(1.0 / 60.0)
	})
	if allocs != 0 {
		t.Errorf("Advance allocates %v times per tick, want 0", allocs)
	}
}

func BenchmarkSceneAdvanceFullPopulation(b *testing.B) {
	s := NewScene(DefaultConfig(), nil)
	for b.Loop() {
		s.Advance(1.0 / 60.0)
	}
}
