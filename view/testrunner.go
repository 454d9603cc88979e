package view

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/phanxgames/arbor"
	"github.com/segmentio/encoding/json"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string   `json:"action"`
	Label     string   `json:"label,omitempty"`
	X         float64  `json:"x,omitempty"`
	Y         float64  `json:"y,omitempty"`
	Button    string   `json:"button,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Count     int      `json:"count,omitempty"`
	Frames    int      `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var scriptButtons = map[string]arbor.MouseButton{
	"left":   arbor.MouseButtonLeft,
	"middle": arbor.MouseButtonMiddle,
	"right":  arbor.MouseButtonRight,
	"up":     arbor.MouseWheelUp,
	"down":   arbor.MouseWheelDown,
}

var scriptModifiers = map[string]arbor.KeyModifiers{
	"shift": arbor.ModShift,
	"ctrl":  arbor.ModCtrl,
	"alt":   arbor.ModAlt,
	"meta":  arbor.ModMeta,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Viewer via SetTestRunner.
//
// Script actions:
//
//	{"action": "wheel", "x": 250, "y": 200, "button": "up", "modifiers": ["ctrl"], "count": 3}
//	{"action": "click", "x": 250, "y": 200, "button": "left"}
//	{"action": "move", "x": 300, "y": 220}
//	{"action": "wait", "frames": 10}
//	{"action": "screenshot", "label": "rotated"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Viewer via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, errors.New("parsing test script failed").Wrap(err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("test script has no steps")
	}
	for i, st := range script.Steps {
		if err := validateStep(st); err != nil {
			return nil, errors.New("invalid test script step").
				WithTag("step", i).
				WithTag("action", st.Action).
				Wrap(err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func validateStep(st testStep) error {
	switch st.Action {
	case "wheel", "click":
		b, ok := stepButton(st)
		if !ok {
			return errors.Newf("unknown button %q", st.Button)
		}
		if st.Action == "wheel" && !b.IsWheel() {
			return errors.Newf("button %q is not a wheel direction", st.Button)
		}
		if st.Action == "click" && b.IsWheel() {
			return errors.Newf("button %q cannot be clicked", st.Button)
		}
	case "move", "wait", "screenshot":
	default:
		return errors.Newf("unknown action %q", st.Action)
	}
	for _, m := range st.Modifiers {
		if _, ok := scriptModifiers[strings.ToLower(m)]; !ok {
			return errors.Newf("unknown modifier %q", m)
		}
	}
	return nil
}

// stepButton resolves the step's button. Wheel steps default to "up", clicks
// to "left".
func stepButton(st testStep) (arbor.MouseButton, bool) {
	name := strings.ToLower(st.Button)
	if name == "" {
		name = "left"
		if st.Action == "wheel" {
			name = "up"
		}
	}
	b, ok := scriptButtons[name]
	return b, ok
}

func stepModifiers(st testStep) arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	for _, m := range st.Modifiers {
		mods |= scriptModifiers[strings.ToLower(m)]
	}
	return mods
}

// SetTestRunner attaches a TestRunner to the viewer. The runner advances once
// per Update, before injected input is consumed.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(v.injectQueue) > 0 {
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

	mods := stepModifiers(st)
	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "wheel":
		b, _ := stepButton(st)
		for i := 0; i < max(st.Count, 1); i++ {
			v.InjectWheel(st.X, st.Y, b, mods)
		}
	case "click":
		b, _ := stepButton(st)
		v.InjectClick(st.X, st.Y, b, mods)
	case "move":
		v.InjectMove(st.X, st.Y, mods)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 {
		r.done = true
	}
}
