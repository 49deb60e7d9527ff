// Package profile builds the half cross-section of a bowl that a renderer
// rotates around the vertical axis. Coordinates are in meters, rim at y=0,
// bottom at y=-depth.
package profile

import (
	"errors"
	"fmt"
	"math"

	"Resonator/internal/calc/bowl"
)

type Shape string

const (
	Hemisphere Shape = "hemisphere"
	Parabolic  Shape = "parabolic"
)

const (
	DepthRatio   = 0.75
	DefaultSteps = 50
	MaxSteps     = 1000
)

var ErrUnknownShape = errors.New("unknown shape")

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Result struct {
	Shape Shape   `json:"shape"`
	Inner []Point `json:"inner"`
	Outer []Point `json:"outer"`
}

func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", Hemisphere:
		return Hemisphere, nil
	case Parabolic:
		return Parabolic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Lathe returns steps+1 points per wall, ordered from the bottom centre to
// the rim.
func Lathe(d bowl.Dimensions, shape Shape, steps int) (Result, error) {
	if steps <= 0 {
		steps = DefaultSteps
	}
	if steps > MaxSteps {
		steps = MaxSteps
	}
	var curve func(t, r float64) Point
	switch shape {
	case Hemisphere:
		curve = hemisphere
	case Parabolic:
		curve = parabolic
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	return Result{
		Shape: shape,
		Inner: trace(curve, d.InnerDiameterM/2, steps),
		Outer: trace(curve, d.OuterDiameterM/2, steps),
	}, nil
}

func trace(curve func(t, r float64) Point, r float64, steps int) []Point {
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		pts = append(pts, curve(float64(i)/float64(steps), r))
	}
	return pts
}

func hemisphere(t, r float64) Point {
	a := t * math.Pi / 2
	return Point{X: math.Abs(math.Sin(a) * r), Y: -math.Cos(a) * r * DepthRatio}
}

func parabolic(t, r float64) Point {
	x := t * r
	return Point{X: x, Y: -r * DepthRatio * (1 - t*t)}
}
