// Package arbor is a retained-mode 3D scene graph with pick-identifier input
// routing.
//
// Arbor keeps a tree of nodes, each with a local transform relative to its
// parent, renders it by accumulating transforms on a matrix stack, and maps
// the small integer identifiers struck during a pick pass back to the live
// object (and sub-part) that drew them, so mouse and wheel input reaches the
// right node.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children compose their parent's transform and are skipped, with their whole
// subtree, when Visible is false.
//
//	scene := arbor.NewScene()
//	box := arbor.NewCube("box", 1, arbor.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.SetPosition(2, 0, 0)
//	scene.Root().Add(box)
//
// # Picking
//
// Interactive objects register with an [InteractiveIndex] and receive a
// [Token] per clickable part. During a pick pass each part pushes its token's
// identifier on the name stack before drawing. [Picker] turns a cursor
// position into the ordered list of identifiers struck, and [Dispatcher]
// resolves them back to the object:
//
//	axis := scene.NewAxis(box)        // three tokens: x, y and z lines
//	scene.HandleMouse(proj, x, y, arbor.MouseEvent{
//		Button:    arbor.MouseWheelUp,
//		Modifiers: arbor.ModCtrl,
//	})
//	axis.Release()                    // or box.Dispose()
//
// # Threading
//
// Nothing in arbor locks. Rendering, picking, dispatch and every index
// operation must run on one goroutine.
//
// The ebiten window in arbor/view draws scenes and feeds input; arbor/ecs
// forwards delivered events into a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package arbor
