// Package garland is an interactive particle holiday greeting for [Ebitengine].
//
// Garland renders a procedural Christmas tree built from a few thousand
// particles and lets the viewer blow it apart into a drifting cloud and pull
// it back together, either by clicking or by hand gestures streamed from an
// external vision model. Uploaded photos hang on the tree as ornaments, and a
// music track can play underneath.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg := garland.DefaultConfig()
//	scene := garland.NewScene(cfg, nil)
//	garland.Run(scene, garland.RunConfig{
//		Title: "Season's Greetings", Width: 960, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Layout and animation
//
// Particle layouts are produced by a seedable [Sampler]: a cone-volume
// distribution for the foliage, a spiral for the ribbon, a top-biased surface
// distribution for the lights, and volumetric sphere sampling for the
// exploded cloud and the background stars. A [Field] owns the per-particle
// runtime state and eases every particle toward the layout selected by the
// current [Mode] each tick.
//
// # Gestures
//
// Hand tracking is an out-of-process collaborator: any detector that can push
// 21 normalized hand landmarks per frame over a WebSocket (see
// [LandmarkFeed]) drives the greeting. A pinch collapses the cloud back into
// a tree, an open hand scatters it, and the wrist position steers the
// rotation. Without a feed the greeting falls back to click control.
//
// [Ebitengine]: https://ebitengine.org
package garland
