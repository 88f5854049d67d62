package blochsphere

import "math"

// Preset is a named fixed point on the sphere.
type Preset struct {
	ID    string
	Label string
	Angles
}

var presets = []Preset{
	{ID: "ground", Label: "|0⟩", Angles: Angles{Theta: 0, Phi: 0}},
	{ID: "excited", Label: "|1⟩", Angles: Angles{Theta: math.Pi, Phi: 0}},
	{ID: "plus", Label: "|+⟩", Angles: Angles{Theta: math.Pi / 2, Phi: 0}},
	{ID: "minus", Label: "|−⟩", Angles: Angles{Theta: math.Pi / 2, Phi: math.Pi}},
	{ID: "right", Label: "|+i⟩", Angles: Angles{Theta: math.Pi / 2, Phi: math.Pi / 2}},
	{ID: "left", Label: "|−i⟩", Angles: Angles{Theta: math.Pi / 2, Phi: 3 * math.Pi / 2}},
}

// LookupPreset resolves a preset identifier. Unknown ids report false.
func LookupPreset(id string) (Preset, bool) {
	id = normalizeID(id)
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Presets returns the table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
