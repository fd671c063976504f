// Package meistercharts is the rendering core of a chart library for
// [Ebitengine]: a paced, dirty-driven render loop, a bounded transform
// stack, pixel-snap math and a layer stack that paints back to front and
// routes input front to back.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// drives a [Chart] from ebiten's game loop:
//
//	meistercharts.Run(meistercharts.RunConfig{
//		Title: "My Chart", Width: 800, Height: 600,
//		Background: meistercharts.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
//	}, func(c *meistercharts.Chart) {
//		c.AddLayer(&myLayer{})
//	})
//
// For full control, create a [Chart] on any [Surface] and call
// [Chart.ProcessInput] and [Chart.Tick] from your own frame source.
//
// # Render loop
//
// [RenderLoop.Tick] is called once per host frame. A tick is dropped when it
// arrives before the pacing gate opens ([Config.TargetRefreshRate]). Ticks
// that pass the gate run the render-loop listeners and then paint, but only
// if something called [RenderLoop.MarkDirty] since the last paint and the
// surface has a non-zero size. Painting happens inside one save/restore
// scope of the [TransformStack]; the stack is restored even when a paint
// listener panics.
//
// # Layers
//
// A [Layer] only has to paint. Optional interfaces add layout
// ([Layouter]), content coordinates ([TypedLayer]), hiding ([Hideable]) and
// event handling ([MouseHandler], [KeyHandler], [PointerHandler],
// [TouchHandler], [PinchHandler]). [NavigationLayer] turns wheel, drag and
// pinch input into zoom and pan. Events go to the topmost layer first; the first layer
// that returns [Consumed] stops propagation.
//
// # Zoom and translation
//
// [ZoomAndTranslation] supplies the [ChartState] read once per paint. Its
// [ZoomAndTranslation.AnimateTo] tweens zoom and pan via [gween].
//
// # Logging
//
// Nothing is logged by default; see [SetLogger].
//
// ECS integration is available through the [Donburi] adapter in
// meistercharts/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package meistercharts
