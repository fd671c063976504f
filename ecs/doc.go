// Package ecs provides ECS adapters for meistercharts input routing.
//
// [NewDonburiSink] bridges every event dispatched through a chart's layer
// stack into a [Donburi] world as a typed event, together with whether a
// layer consumed it. Subscribe to [InputEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	chart.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
