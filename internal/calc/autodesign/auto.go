package autodesign

import (
	"errors"
	"fmt"
	"math"

	"Resonator/internal/calc/bowl"
)

var ErrInvalidTarget = errors.New("target diameter must be positive and finite")

type FitInput struct {
	Bowl                 bowl.Input `json:"bowl"`
	TargetInnerDiameterM float64    `json:"target_inner_diameter_m"`
}

type FitResult struct {
	Params     bowl.Params `json:"params"`
	DeviationM float64     `json:"deviation_m"`
	Notes      string      `json:"notes"`
}

// Fit picks the available octave whose inner diameter is closest to the
// target, measured on a log scale so one octave up or down weighs the same.
func Fit(in FitInput) (FitResult, error) {
	if !(in.TargetInnerDiameterM > 0) || math.IsInf(in.TargetInnerDiameterM, 0) {
		return FitResult{}, fmt.Errorf("%w: %v", ErrInvalidTarget, in.TargetInnerDiameterM)
	}
	metal, r, err := in.Bowl.Resolve()
	if err != nil {
		return FitResult{}, err
	}
	c, err := bowl.New(metal, r)
	if err != nil {
		return FitResult{}, err
	}
	best := 0.0
	bestDist := math.Inf(1)
	for _, hz := range c.Params(bowl.Selection{}).AvailableOctaves {
		d := math.Abs(math.Log2(c.Dimensions(hz).InnerDiameterM / in.TargetInnerDiameterM))
		if d < bestDist {
			best, bestDist = hz, d
		}
	}
	params := c.Params(bowl.Select(best))
	return FitResult{
		Params:     params,
		DeviationM: params.Dimensions.InnerDiameterM - in.TargetInnerDiameterM,
		Notes:      "Octave chosen to match the target inner diameter.",
	}, nil
}
