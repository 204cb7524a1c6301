package libled

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action of a playback script.
type scriptStep struct {
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
	Label  string `json:"label,omitempty"`
	Key    string `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences scene changes, key presses and screenshots across frames
// for automated visual checks. Attach it with Player.SetScript.
type Script struct {
	steps     []scriptStep
	keys      []Key
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON playback script.
//
//	{"steps": [
//	  {"action": "scene", "name": "plasma"},
//	  {"action": "wait", "frames": 40},
//	  {"action": "screenshot", "label": "plasma-1s"},
//	  {"action": "key", "key": "right"}
//	]}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	keys := make([]Key, len(f.Steps))
	for i, st := range f.Steps {
		switch st.Action {
		case "scene", "wait", "screenshot":
		case "key":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
			keys[i] = k
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps, keys: keys}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool { return s.done }

// Step advances the script by one frame. Player.Step calls it before
// rendering.
func (s *Script) Step(p *Player) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.done = s.waitCount == 0 && s.cursor >= len(s.steps)
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	k := s.keys[s.cursor]
	s.cursor++

	switch st.Action {
	case "scene":
		if !p.SelectScene(st.Name) {
			warnf("script: no scene %q", st.Name)
		}
	case "screenshot":
		p.Screenshot(st.Label)
	case "key":
		p.InjectKey(k)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
