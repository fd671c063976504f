package ecs

import (
	"github.com/phanxgames/meistercharts"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for routed chart input.
var InputEventType = events.NewEventType[meistercharts.InputRecord]()

type donburiSink struct {
	world donburi.World
	mask  uint8
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Records
// are published to InputEventType and delivered by ProcessEvents. When
// categories are given, only records of those categories are published.
func NewDonburiSink(world donburi.World, categories ...meistercharts.EventCategory) meistercharts.EventSink {
	s := &donburiSink{world: world}
	for _, c := range categories {
		s.mask |= 1 << c
	}
	return s
}

func (s *donburiSink) EmitEvent(rec meistercharts.InputRecord) {
	if s.mask != 0 && s.mask&(1<<rec.Category) == 0 {
		return
	}
	InputEventType.Publish(s.world, rec)
}
