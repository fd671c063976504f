package meistercharts

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Char   string  `json:"char,omitempty"`
	Zoom   float64 `json:"zoom,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"click": true, "drag": true, "key": true, "wait": true,
	"dirty": true, "zoom": true, "screenshot": true,
}

// TestRunner plays a scripted sequence of injected input, repaints and
// screenshots across frames. Attach it with Chart.SetTestRunner.
//
// Script actions: click {x,y}, drag {fromX,fromY,toX,toY,frames},
// key {key,char}, wait {frames}, dirty, zoom {zoom,x,y} and
// screenshot {label}.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. It advances one step per ProcessInput
// call, before input is read.
func (c *Chart) SetTestRunner(r *TestRunner) {
	c.testRunner = r
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(c *Chart) {
	if r.done {
		return
	}
	if c.pendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if s, ok := c.loop.Surface().(Screenshotter); ok {
			s.Screenshot(st.Label)
		}
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		var ch rune
		if chars := []rune(st.Char); len(chars) > 0 {
			ch = chars[0]
		}
		c.InjectKey(st.Key, ch)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "dirty":
		c.loop.MarkDirty(DirtyUserInteraction)
	case "zoom":
		if st.Zoom > 0 {
			c.zoom.ZoomAt(st.Zoom, st.X, st.Y)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.pendingInjections() == 0 {
		r.done = true
	}
}
