package screens

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("screens: script has no steps")

// scriptStep represents a single action in a navigation script.
type scriptStep struct {
	Action      string `json:"action"`
	Screen      string `json:"screen,omitempty"`
	Transparent bool   `json:"transparent,omitempty"`
	Frames      int    `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a navigation script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner applies a scripted sequence of stack operations across
// frames, for demos and automated checks. Attach to a Stage via
// SetScriptRunner.
type ScriptRunner struct {
	// OnScreen is called for every screen the script creates, before it is
	// pushed. Use it to size and color the screen's view.
	OnScreen func(s *Screen)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	byName    map[string]*Screen
}

// LoadScript parses a JSON script such as
//
//	{"steps":[{"action":"push","screen":"home"},{"action":"wait","frames":30},{"action":"pop"}]}
//
// Supported actions are push, pop, dismiss and wait.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "push", "dismiss":
			if st.Screen == "" {
				return nil, fmt.Errorf("parse script: step %d: %s needs a screen", i, st.Action)
			}
		case "pop", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps, byName: make(map[string]*Screen)}, nil
}

// SetScriptRunner attaches runner to the stage, driving target. The
// runner's step is called at the start of each Advance.
func (s *Stage) SetScriptRunner(runner *ScriptRunner, target *Stack) {
	s.runner = runner
	s.runnerStack = target
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Screen returns the screen the script created under name, or nil.
func (r *ScriptRunner) Screen(name string) *Screen {
	return r.byName[name]
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(target *Stack) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "push":
		scr := NewScreen(st.Screen)
		scr.Transparent = st.Transparent
		if r.OnScreen != nil {
			r.OnScreen(scr)
		}
		r.byName[st.Screen] = scr
		target.Push(scr)
	case "pop":
		target.Pop()
	case "dismiss":
		scr := r.byName[st.Screen]
		if scr == nil {
			return fmt.Errorf("script step %d: dismiss unknown screen %q", r.cursor-1, st.Screen)
		}
		if err := target.Dismiss(scr); err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}
