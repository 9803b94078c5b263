package bramble

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action  string  `json:"action"`
	Pointer string  `json:"pointer,omitempty"` // "mouse" (default), "touch:N", "custom:name"
	Button  string  `json:"button,omitempty"`  // "primary" (default), "secondary", "middle"
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Target  string  `json:"target,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// parsedStep is a scriptStep with identity fields resolved at load time.
type parsedStep struct {
	scriptStep
	pointer PointerID
	button  PointerButton
}

// Script replays a sequence of pointer actions against a pipeline, one
// frame at a time. Scripts drive automated interaction tests and input
// replays without a real device:
//
//	{"steps": [
//	  {"action": "move", "x": 10, "y": 10},
//	  {"action": "down"},
//	  {"action": "wait", "frames": 2},
//	  {"action": "move", "x": 40, "y": 10},
//	  {"action": "up"}
//	]}
//
// Call [Script.Step] once per frame before [Pipeline.Tick]; actions apply
// until a "wait" step pauses the script for the given number of frames.
type Script struct {
	steps     []parsedStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	parsed := make([]parsedStep, len(script.Steps))
	for i, st := range script.Steps {
		p := parsedStep{scriptStep: st}
		switch st.Action {
		case "move", "leave", "down", "up", "scroll", "cancel", "register", "deregister", "wait":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		var err error
		if p.pointer, err = parsePointer(st.Pointer); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
		if p.button, err = parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
		parsed[i] = p
	}
	return &Script{steps: parsed}, nil
}

func parsePointer(s string) (PointerID, error) {
	switch {
	case s == "" || s == "mouse":
		return PointerMouse, nil
	case strings.HasPrefix(s, "touch:"):
		n, err := strconv.ParseInt(strings.TrimPrefix(s, "touch:"), 10, 64)
		if err != nil {
			return PointerID{}, fmt.Errorf("bad touch pointer %q", s)
		}
		return TouchPointer(n), nil
	case strings.HasPrefix(s, "custom:"):
		return CustomPointer(strings.TrimPrefix(s, "custom:")), nil
	default:
		return PointerID{}, fmt.Errorf("bad pointer %q", s)
	}
}

func parseButton(s string) (PointerButton, error) {
	switch s {
	case "", "primary":
		return ButtonPrimary, nil
	case "secondary":
		return ButtonSecondary, nil
	case "middle":
		return ButtonMiddle, nil
	default:
		return 0, fmt.Errorf("bad button %q", s)
	}
}

// Done reports whether all steps have been executed.
func (r *Script) Done() bool {
	return r.done
}

// Step advances the script by one frame, applying actions to the
// pipeline's registry until a wait step (or the end) is reached.
// Custom pointers named by a step are registered on first use.
func (r *Script) Step(pipe *Pipeline) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	reg := pipe.Pointers()
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++
		if st.pointer.Kind == KindCustom && st.Action != "deregister" {
			reg.Register(st.pointer)
		}
		switch st.Action {
		case "move":
			reg.SetLocation(st.pointer, Location{
				Target:   st.Target,
				Position: Vec2{X: st.X, Y: st.Y},
			})
		case "leave":
			reg.ClearLocation(st.pointer)
		case "down":
			reg.Press(st.pointer, st.button)
		case "up":
			reg.Release(st.pointer, st.button)
		case "scroll":
			reg.ScrollBy(st.pointer, Vec2{X: st.DX, Y: st.DY})
		case "cancel":
			reg.Cancel(st.pointer)
		case "register":
			reg.Register(st.pointer)
		case "deregister":
			reg.Deregister(st.pointer)
		case "wait":
			if st.Frames > 1 {
				r.waitCount = st.Frames - 1
			}
			return
		}
	}
	r.done = true
}
