package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"Resonator/internal/calc/bowl"
)

var ErrInvalidTarget = errors.New("target pitch out of the audible band")

type PitchInput struct {
	TargetHz float64 `json:"target_hz"`
	Ratio    string  `json:"ratio,omitempty"`
}

type Candidate struct {
	Metal  bowl.Metal  `json:"metal"`
	Cents  float64     `json:"cents"`
	Params bowl.Params `json:"params"`
}

type PitchResult struct {
	Candidates []Candidate `json:"candidates"`
	Notes      string      `json:"notes"`
}

// Pitch ranks every metal by how close its nearest octave lands to the
// target, in cents.
func Pitch(in PitchInput) (PitchResult, error) {
	if !(in.TargetHz >= bowl.MinAudibleHz && in.TargetHz <= bowl.MaxAudibleHz) {
		return PitchResult{}, fmt.Errorf("%w: %v not within %v-%v Hz", ErrInvalidTarget, in.TargetHz, bowl.MinAudibleHz, bowl.MaxAudibleHz)
	}
	out := PitchResult{Notes: "Metals ranked by distance of their closest octave to the target pitch."}
	for _, m := range bowl.Metals() {
		_, r, err := bowl.Input{Metal: string(m), Ratio: in.Ratio}.Resolve()
		if err != nil {
			return PitchResult{}, err
		}
		c, err := bowl.New(m, r)
		if err != nil {
			return PitchResult{}, err
		}
		best := Candidate{Metal: m, Cents: math.Inf(1)}
		for _, hz := range c.Params(bowl.Selection{}).AvailableOctaves {
			cents := 1200 * math.Log2(hz/in.TargetHz)
			if math.Abs(cents) < math.Abs(best.Cents) {
				best.Cents = cents
				best.Params = c.Params(bowl.Select(hz))
			}
		}
		out.Candidates = append(out.Candidates, best)
	}
	sort.SliceStable(out.Candidates, func(i, j int) bool {
		return math.Abs(out.Candidates[i].Cents) < math.Abs(out.Candidates[j].Cents)
	})
	return out, nil
}
