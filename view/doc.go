// Package view shows an arbor scene in an ebiten window.
//
// [Viewer] draws the scene as projected wireframe through an orbit [Camera]
// and turns ebiten's mouse state into arbor input: each wheel step and
// button press is picked against the scene and dispatched to the object
// under the cursor. Wheel steps that nothing handles zoom the camera, and
// dragging with the right button orbits it.
//
//	scene := arbor.NewScene()
//	cube := arbor.NewCube("cube", 1, arbor.ColorWhite)
//	scene.Root().Add(cube)
//	scene.NewAxis(cube)
//	err := view.NewViewer(scene, view.DefaultConfig()).Run(ctx)
//
// For automated runs, input can be queued with the Inject methods or scripted
// with [LoadTestScript] and [Viewer.SetTestRunner].
package view
