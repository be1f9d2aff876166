package tickshell

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string      `json:"action"`
	Label  string      `json:"label,omitempty"`
	Key    Key         `json:"key,omitempty"`
	Button MouseButton `json:"button,omitempty"`
	Delta  int         `json:"delta,omitempty"`
	Frames int         `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// knownActions lists the actions a script may use.
var knownActions = map[string]bool{
	"keydown": true, "keyup": true, "tap": true,
	"press": true, "release": true, "click": true,
	"wheel": true, "wait": true, "screenshot": true, "stop": true,
}

// ScriptRunner plays back scripted input across frames, for demos and
// automated visual checks. Attach to a Shell via SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      atomic.Bool
}

// LoadScript parses a JSON input script:
//
//	{"steps": [
//		{"action": "tap", "key": 65, "frames": 10},
//		{"action": "click", "button": 1},
//		{"action": "wheel", "delta": 3},
//		{"action": "wait", "frames": 30},
//		{"action": "screenshot", "label": "after-input"},
//		{"action": "stop"}
//	]}
//
// Mouse actions default to the left button.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a runner to the shell, replacing any previous one. The
// runner is stepped at the start of every frame. Pass nil to detach.
func (s *Shell) SetScript(r *ScriptRunner) {
	s.script.Store(r)
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done.Load()
}

// step advances the runner by one frame. Called from the loop goroutine.
func (r *ScriptRunner) step(s *Shell) {
	if r.done.Load() {
		return
	}
	// Wait for pending injections to drain before advancing.
	if s.pendingInjected() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done.Store(true)
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	button := st.Button
	if button == MouseButtonNone {
		button = MouseButtonLeft
	}

	switch st.Action {
	case "keydown":
		s.InjectKeyPress(st.Key)
	case "keyup":
		s.InjectKeyRelease(st.Key)
	case "tap":
		s.InjectKeyTap(st.Key, st.Frames)
	case "press":
		s.InjectPress(button)
	case "release":
		s.InjectRelease(button)
	case "click":
		s.InjectClick(button)
	case "wheel":
		s.InjectWheel(st.Delta)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "stop":
		s.Stop()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && s.pendingInjected() == 0 {
		r.done.Store(true)
	}
}
