package bowl

import (
	"errors"
	"fmt"
	"math"

	"Resonator/internal/calc/ratio"
)

var ErrInvalidFrequency = errors.New("selected frequency must be positive and finite")

// Input is the request shape shared by every surface of the calculator.
// Ratio takes precedence over ThicknessRatio; both empty means the
// Pythagorean comma.
type Input struct {
	Metal          string   `json:"metal"`
	ThicknessRatio *float64 `json:"thickness_ratio,omitempty"`
	Ratio          string   `json:"ratio,omitempty"`
	SelectedHz     *float64 `json:"selected_hz,omitempty"`
}

func (in Input) Resolve() (Metal, float64, error) {
	metal := Iron
	if in.Metal != "" {
		m, err := ParseMetal(in.Metal)
		if err != nil {
			return "", 0, err
		}
		metal = m
	}
	r := PythagoreanComma
	switch {
	case in.Ratio != "":
		v, err := ratio.ParseFraction(in.Ratio)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %v", ErrInvalidRatio, err)
		}
		r = v
	case in.ThicknessRatio != nil:
		r = *in.ThicknessRatio
	}
	if !ValidRatio(r) {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidRatio, r)
	}
	return metal, r, nil
}

// Calculate builds a fresh Calculator for in and computes its parameters.
// A selection within OctaveTolerance of an octave selects that octave; any
// other falls back to the normalized frequency, the same way a metal switch
// resets the selection.
func Calculate(in Input) (Params, error) {
	metal, r, err := in.Resolve()
	if err != nil {
		return Params{}, err
	}
	c, err := New(metal, r)
	if err != nil {
		return Params{}, err
	}
	params := c.Params(Selection{})
	if in.SelectedHz == nil {
		return params, nil
	}
	hz := *in.SelectedHz
	if hz < 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidFrequency, hz)
	}
	o, ok := params.Octave(hz)
	if hz == 0 || !ok {
		return params, nil
	}
	return c.Params(Select(o)), nil
}
