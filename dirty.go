package meistercharts

import (
	"math"
	"math/bits"
	"strings"
)

// DirtyReason tags why a repaint was requested. Reasons are only used for
// diagnostics; any pending reason triggers the same repaint.
type DirtyReason uint32

const (
	DirtyInitial              DirtyReason = 1 << iota // first frame
	DirtyResize                                       // window or content area resized
	DirtyChartState                                   // zoom, translation or margins changed
	DirtyConfigurationChanged                         // a layer's configuration changed
	DirtyDataUpdated                                  // the chart's model changed
	DirtyUIStateChanged                               // hover, selection, focus
	DirtyTooltip                                      // tooltip content or position
	DirtyAnimation                                    // an animation advanced
	DirtyUserInteraction                              // a handler consumed input
	DirtyVisibility                                   // painting re-enabled or layer shown/hidden
	DirtyLayersChanged                                // layers added or removed
	DirtyUnknown                                      // anything else
)

var dirtyReasonNames = [...]string{
	"initial",
	"resize",
	"chart-state",
	"configuration",
	"data",
	"ui-state",
	"tooltip",
	"animation",
	"user-interaction",
	"visibility",
	"layers",
	"unknown",
}

// DirtyReasons is a set of DirtyReason values.
type DirtyReasons uint32

// Has reports whether r is in the set.
func (rs DirtyReasons) Has(r DirtyReason) bool {
	return uint32(rs)&uint32(r) != 0
}

// Len returns the number of reasons in the set.
func (rs DirtyReasons) Len() int {
	return bits.OnesCount32(uint32(rs))
}

// String lists the reasons, e.g. "resize|tooltip".
func (rs DirtyReasons) String() string {
	if rs == 0 {
		return "none"
	}
	var b strings.Builder
	for i, name := range dirtyReasonNames {
		if uint32(rs)&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
	}
	return b.String()
}

// DirtyMarker is implemented by anything that accepts repaint requests.
type DirtyMarker interface {
	MarkDirty(reason DirtyReason)
}

// DirtyTracker records that a repaint is pending and why. Producers call
// MarkDirty any number of times; the render loop consumes the state exactly
// once per tick.
type DirtyTracker struct {
	dirty   bool
	reasons DirtyReasons
}

// MarkDirty requests a repaint.
func (t *DirtyTracker) MarkDirty(reason DirtyReason) {
	t.dirty = true
	t.reasons |= DirtyReasons(reason)
}

// IsDirty reports whether a repaint is pending.
func (t *DirtyTracker) IsDirty() bool { return t.dirty }

// Reasons returns the pending reasons without clearing them.
func (t *DirtyTracker) Reasons() DirtyReasons { return t.reasons }

// Consume returns the pending reasons and clears the tracker.
func (t *DirtyTracker) Consume() DirtyReasons {
	rs := t.reasons
	t.dirty = false
	t.reasons = 0
	return rs
}

// PaintingLoopIndex identifies a paint pass. Components that cache layout
// compare indices to detect that a new paint happened.
//
// The index wraps from math.MaxInt back to 0, so "newer than" comparisons
// are not meaningful across the wrap.
type PaintingLoopIndex int

// Next returns the following index, wrapping to 0 instead of overflowing.
func (i PaintingLoopIndex) Next() PaintingLoopIndex {
	if i >= math.MaxInt || i < 0 {
		return 0
	}
	return i + 1
}
