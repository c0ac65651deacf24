// Package motion computes the per-frame transforms applied around cached
// surface output. Every function is pure: the same progress always yields
// the same transform, so progress may move back and forth freely.
package motion

import (
	"math"

	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
)

// parallax is the fraction of the travel distance an underlying surface moves.
const parallax = 0.3

// Transform positions a surface without touching its rendered output.
type Transform struct {
	TranslateX float64
	Scale      float64
	Opacity    float64
}

// Identity leaves a surface as rendered.
var Identity = Transform{Scale: 1, Opacity: 1}

// Hidden is not drawn.
var Hidden = Transform{Scale: 1, Opacity: 0}

// Edge is the screen edge a back gesture started from.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

func (e Edge) String() string {
	if e == EdgeRight {
		return "right"
	}
	return "left"
}

// direction is the sign of horizontal travel for a swipe from e.
func (e Edge) direction() float64 {
	if e == EdgeRight {
		return -1
	}
	return 1
}

// BackConfig shapes the predictive back transform.
type BackConfig struct {
	Width    float64 // horizontal travel at progress 1
	MinScale float64 // scale of the exiting surface at progress 1
	Edge     Edge
}

// Clamp01 limits p to [0,1]. NaN maps to 0.
func Clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate returns the transforms of the incoming (current) and outgoing
// (previous) surface of an animation pair at progress p.
func Interpolate(t flatten.TransitionType, p, width float64) (current, previous Transform) {
	p = Clamp01(p)

	switch t {
	case flatten.TransitionPush:
		current = Transform{TranslateX: (1 - p) * width, Scale: 1, Opacity: 1}
		previous = Transform{TranslateX: -p * width * parallax, Scale: 1, Opacity: 1}
	case flatten.TransitionPop:
		current = Transform{TranslateX: -(1 - p) * width * parallax, Scale: 1, Opacity: 1}
		previous = Transform{TranslateX: p * width, Scale: 1, Opacity: 1}
	case flatten.TransitionTabSwitch:
		current = Transform{Scale: 1, Opacity: p}
		previous = Transform{Scale: 1, Opacity: 1 - p}
	case flatten.TransitionCrossFade:
		current = Transform{Scale: lerp(0.95, 1, p), Opacity: p}
		previous = Transform{Scale: 1, Opacity: 1 - p}
	default:
		return Identity, Hidden
	}
	return current, previous
}

// PredictiveBack returns the transforms of the exiting (current) surface and
// the surface being revealed (previous) at back progress p.
func PredictiveBack(p float64, cfg BackConfig) (current, previous Transform) {
	p = Clamp01(p)
	dir := cfg.Edge.direction()

	current = Transform{
		TranslateX: dir * p * cfg.Width,
		Scale:      lerp(1, cfg.MinScale, p),
		Opacity:    1,
	}
	previous = Transform{
		TranslateX: -dir * (1 - p) * cfg.Width * parallax,
		Scale:      1,
		Opacity:    1,
	}
	return current, previous
}
