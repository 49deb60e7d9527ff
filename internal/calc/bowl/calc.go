// Package bowl derives singing bowl geometry from a metal's theoretical
// fundamental frequency folded into the audible band.
package bowl

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	AirSoundSpeed = 343.0 // m/s
	MinAudibleHz  = 20.0
	MaxAudibleHz  = 20000.0

	// DescentOctaves is how far the folded fundamental is transposed down
	// for the default frequency, floor permitting.
	DescentOctaves = 4

	PythagoreanComma = 531441.0 / 524288.0
)

var (
	ErrUnknownMetal = errors.New("unknown metal")
	ErrInvalidRatio = errors.New("thickness ratio must be positive and finite")
)

type Dimensions struct {
	InnerDiameterM float64 `json:"inner_diameter_m"`
	OuterDiameterM float64 `json:"outer_diameter_m"`
	ThicknessM     float64 `json:"thickness_m"`
}

type Params struct {
	Metal                  string     `json:"metal"`
	ThicknessRatio         float64    `json:"thickness_ratio"`
	AveragedRadiusM        float64    `json:"averaged_radius_m"`
	FundamentalWavelengthM float64    `json:"fundamental_wavelength_m"`
	FundamentalHz          float64    `json:"fundamental_hz"`
	NormalizedHz           float64    `json:"normalized_hz"`
	AvailableOctaves       []float64  `json:"available_octaves"`
	SelectedHz             float64    `json:"selected_hz"`
	Dimensions             Dimensions `json:"dimensions"`
	WavelengthInMetalM     float64    `json:"wavelength_in_metal_m"`
	WavelengthInAirM       float64    `json:"wavelength_in_air_m"`
}

// OctaveTolerance is how far a selection may sit from an octave and still
// select it. Half a unit in the last displayed decimal of FormatFrequency.
const OctaveTolerance = 0.005

// Octave returns the available octave that hz refers to, so a value read
// off a two-decimal display selects the exact list entry.
func (p Params) Octave(hz float64) (float64, bool) {
	for _, o := range p.AvailableOctaves {
		if math.Abs(o-hz) <= math.Max(OctaveTolerance, 1e-9*o) {
			return o, true
		}
	}
	return 0, false
}

func (p Params) HasOctave(hz float64) bool {
	_, ok := p.Octave(hz)
	return ok
}

// Selection is an optional selected frequency. The zero value is absent.
type Selection struct {
	Hz    float64
	Valid bool
}

func Select(hz float64) Selection {
	return Selection{Hz: hz, Valid: true}
}

type Calculator struct {
	material       Material
	thicknessRatio float64
	averagedRadius float64
}

func New(metal Metal, thicknessRatio float64) (*Calculator, error) {
	mat, ok := metal.Material()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetal, metal)
	}
	if !ValidRatio(thicknessRatio) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, thicknessRatio)
	}
	return &Calculator{
		material:       mat,
		thicknessRatio: thicknessRatio,
		averagedRadius: (mat.AtomicRadiusM + mat.InteratomicSpacingM/2) / 2,
	}, nil
}

func ValidRatio(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

func (c *Calculator) Material() Material      { return c.material }
func (c *Calculator) ThicknessRatio() float64 { return c.thicknessRatio }
func (c *Calculator) AveragedRadius() float64 { return c.averagedRadius }

// FundamentalFrequency is the half-wavelength resonance across the averaged
// radius: v / (2r).
func (c *Calculator) FundamentalFrequency() float64 {
	return c.material.SoundSpeedMS / (2 * c.averagedRadius)
}

func (c *Calculator) NormalizedFrequency() float64 {
	return NormalizeToAudible(c.FundamentalFrequency())
}

// NormalizeToAudible folds raw into [MinAudibleHz, MaxAudibleHz] by octaves,
// then descends up to DescentOctaves more, stopping at the first halving that
// would fall below MinAudibleHz. Non-positive or non-finite input is returned
// unchanged.
func NormalizeToAudible(raw float64) float64 {
	if !positiveFinite(raw) {
		return raw
	}
	f := raw
	for f > MaxAudibleHz {
		f /= 2
	}
	for f < MinAudibleHz {
		f *= 2
	}
	for i := 0; i < DescentOctaves; i++ {
		next := f / 2
		if next < MinAudibleHz {
			break
		}
		f = next
	}
	return f
}

// EnumerateOctaves returns base and its audible octaves, ascending.
func EnumerateOctaves(base float64) []float64 {
	if !positiveFinite(base) {
		return []float64{base}
	}
	out := []float64{base}
	for f := base / 2; f >= MinAudibleHz; f /= 2 {
		out = append(out, f)
	}
	for f := base * 2; f <= MaxAudibleHz; f *= 2 {
		out = append(out, f)
	}
	sort.Float64s(out)
	return out
}

// Dimensions sizes the inner diameter to one wavelength in air at hz.
func (c *Calculator) Dimensions(hz float64) Dimensions {
	inner := AirSoundSpeed / hz
	outer := inner * c.thicknessRatio
	return Dimensions{
		InnerDiameterM: inner,
		OuterDiameterM: outer,
		ThicknessM:     (outer - inner) / 2,
	}
}

// Params computes the full parameter set. An absent selection, or one of
// exactly 0 Hz, resolves to the normalized frequency; anything else is used
// as given.
func (c *Calculator) Params(sel Selection) Params {
	normalized := c.NormalizedFrequency()
	hz := normalized
	if sel.Valid && sel.Hz != 0 {
		hz = sel.Hz
	}
	return Params{
		Metal:                  c.material.Name,
		ThicknessRatio:         c.thicknessRatio,
		AveragedRadiusM:        c.averagedRadius,
		FundamentalWavelengthM: 2 * c.averagedRadius,
		FundamentalHz:          c.FundamentalFrequency(),
		NormalizedHz:           normalized,
		AvailableOctaves:       EnumerateOctaves(normalized),
		SelectedHz:             hz,
		Dimensions:             c.Dimensions(hz),
		WavelengthInMetalM:     c.material.SoundSpeedMS / hz,
		WavelengthInAirM:       AirSoundSpeed / hz,
	}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
