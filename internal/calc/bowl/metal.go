package bowl

import (
	"fmt"
	"strings"
)

type Metal string

const (
	Iron     Metal = "iron"
	Copper   Metal = "copper"
	Titanium Metal = "titanium"
	Brass    Metal = "brass"
)

type Structure string

const (
	BCC Structure = "BCC"
	FCC Structure = "FCC"
	HCP Structure = "HCP"
)

type Material struct {
	Name                string    `json:"name"`
	AtomicRadiusM       float64   `json:"atomic_radius_m"`
	InteratomicSpacingM float64   `json:"interatomic_spacing_m"`
	SoundSpeedMS        float64   `json:"sound_speed_m_s"`
	Structure           Structure `json:"crystal_structure"`
}

var metals = []Metal{Iron, Copper, Titanium, Brass}

var catalog = map[Metal]Material{
	Iron: {
		Name:                "Iron",
		AtomicRadiusM:       140e-12,
		InteratomicSpacingM: 286.65e-12,
		SoundSpeedMS:        5120,
		Structure:           BCC,
	},
	Copper: {
		Name:                "Copper",
		AtomicRadiusM:       128e-12,
		InteratomicSpacingM: 361.49e-12,
		SoundSpeedMS:        3810,
		Structure:           FCC,
	},
	Titanium: {
		Name:                "Titanium",
		AtomicRadiusM:       147e-12,
		InteratomicSpacingM: 295.08e-12,
		SoundSpeedMS:        4140,
		Structure:           HCP,
	},
	Brass: {
		Name:                "Brass",
		AtomicRadiusM:       135e-12,
		InteratomicSpacingM: 330e-12,
		SoundSpeedMS:        3475,
		Structure:           FCC,
	},
}

// Metals returns the catalog keys in display order.
func Metals() []Metal {
	out := make([]Metal, len(metals))
	copy(out, metals)
	return out
}

// Catalog returns a copy of the material table.
func Catalog() map[Metal]Material {
	out := make(map[Metal]Material, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}

func (m Metal) Material() (Material, bool) {
	mat, ok := catalog[m]
	return mat, ok
}

// ParseMetal accepts catalog keys case-insensitively ("Iron", " brass ").
func ParseMetal(s string) (Metal, error) {
	m := Metal(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalog[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetal, s)
	}
	return m, nil
}
