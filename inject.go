package garland

// Synthetic input injection. Injected events flow through the same advance
// path as real mouse clicks and live gesture samples, one event per tick,
// so scripted sequences and tests behave exactly like a user.

// InjectClick queues a synthetic click. It is consumed by the next tick and
// toggles the mode exactly as a real click would.
func (s *Scene) InjectClick() {
	s.injectedClicks++
}

// InjectGesture queues a synthetic gesture sample. Each queued sample is
// consumed by one tick, taking priority over the live gesture source for
// that tick.
func (s *Scene) InjectGesture(sample GestureSample) {
	s.injectedGestures = append(s.injectedGestures, sample)
}

// InjectPinch queues a pinch gesture at the given wrist position.
func (s *Scene) InjectPinch(palmX float64) {
	s.InjectGesture(GestureSample{HandPresent: true, Pinching: true, PalmX: palmX})
}

// InjectOpenHand queues an open-hand gesture at the given wrist position.
func (s *Scene) InjectOpenHand(palmX float64) {
	s.InjectGesture(GestureSample{HandPresent: true, PalmX: palmX})
}
