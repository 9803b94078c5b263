// Package bramble resolves which entities are under each pointer every frame
// and turns the result into a stream of bubbling interaction events.
//
// Bramble does not hit-test anything itself. Any number of [Backend]s (a 2D
// layout walker, a raycaster, a tilemap lookup) report ranked hit candidates
// for each pointer, and bramble merges them, applies per-entity [Pickable]
// rules, tracks hover and press state across frames, and emits Over/Out,
// Down/Up/Click, Move, Scroll, and the full drag lifecycle
// (DragStart/Drag/DragEnd, DragEnter/DragOver/DragLeave, Drop).
//
// # Quick start
//
// Create a [Pipeline], register at least one backend, and call
// [Pipeline.Tick] once per frame after feeding pointer input:
//
//	pipe := bramble.NewPipeline()
//	pipe.AddBackend(myBackend)
//
//	pipe.On(box, bramble.EventClick, func(e *bramble.EventContext) {
//		fmt.Println("clicked", e.Target)
//	})
//
//	// each frame:
//	pipe.Pointers().SetLocation(bramble.PointerMouse, loc)
//	pipe.Tick()
//
// Mouse and touch input can be fed automatically from [Ebitengine] with
// [NewEbitenInput]; custom pointers (gamepad cursors, replays, tests) are
// registered explicitly on the [Registry].
//
// # Hover resolution
//
// Hits from all backends are merged by source priority (see
// [Pipeline.SetSourceOrder]) and depth, then walked nearest to farthest.
// An entity's [Pickable] decides whether it joins the hover set and whether
// it occludes entities beneath it; [PickableIgnore] makes an entity fully
// transparent to picking. Entities without an override both hover and block.
//
// # Events
//
// Events bubble from the target entity up the parent chain supplied by a
// [Hierarchy], until a listener calls [EventContext.StopPropagation].
// Within one pointer and frame, events always arrive in a fixed order:
// Out, Over, Move, Down, Up, Click, Scroll, then drag events.
//
// ECS integration (via [Donburi] adapter in bramble/ecs) forwards every
// emitted event into a donburi world as a typed event.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package bramble
