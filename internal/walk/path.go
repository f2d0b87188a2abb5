package walk

// Jump is a level shift applied to a path in log-space. Level is the
// cumulative size of every jump up to and including this one.
type Jump struct {
	Time  float64 `json:"time"`
	Level float64 `json:"level"`
}

// Path is a generated sample path. Times and Values always have the same
// length.
type Path struct {
	Times  []float64 `json:"t"`
	Values []float64 `json:"s"`
	Jumps  []Jump    `json:"jumps,omitempty"`
}

func (p *Path) Len() int {
	return len(p.Values)
}

// Terminal returns the value at the last time step.
func (p *Path) Terminal() float64 {
	if len(p.Values) == 0 {
		return 0
	}
	return p.Values[len(p.Values)-1]
}

// At returns the value at step i, clamped to the path bounds.
func (p *Path) At(i int) float64 {
	switch {
	case len(p.Values) == 0:
		return 0
	case i < 0:
		return p.Values[0]
	case i >= len(p.Values):
		return p.Values[len(p.Values)-1]
	}
	return p.Values[i]
}
