package wiretube

import (
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Shape constants of the modulated tube. The shape is fixed, only the sampling
// density of each line family can be changed at runtime.
const (
	// AngularRange is the swept angle of θ in degrees. The tube is swept twice around its axis.
	AngularRange = 720
	// LongitudinalSamples is the number of t intervals along the tube axis, t=j/LongitudinalSamples.
	LongitudinalSamples = 100
	// VLineAngleStep is the fixed θ increment in degrees used by V-lines regardless of granularity.
	VLineAngleStep = 10

	Radius    = 1.2
	Height    = 5
	Frequency = 5

	// DefaultUGranularity yields a U-line every 10°.
	DefaultUGranularity = 72
	// DefaultVGranularity yields a V-line every 5 longitudinal samples.
	DefaultVGranularity = 20
)

// epstol is used to check for badly conditioned denominators
// such as lengths used for normalization.
const epstol = 6e-7

// Polyline is an ordered sequence of sample points that share a fixed
// surface parameter. It is drawn as a single line strip.
type Polyline []ms3.Vec

// Step maps a granularity to a sampling step over total units as max(1, floor(total/granularity)).
// Non-positive, NaN and infinite granularities yield a step of 1. Steps are capped at total+1,
// the smallest step that samples only the first point of an inclusive range [0, total].
func Step(total int, granularity float64) int {
	if !(granularity > 0) || math.IsInf(granularity, 0) {
		return 1
	}
	q := math.Floor(float64(total) / granularity)
	if q < 1 {
		return 1
	} else if q > float64(total) {
		return total + 1
	}
	return int(q)
}

// ParseGranularity parses slider text into a granularity. Malformed text
// returns NaN which [Step] clamps to the maximum sampling density.
func ParseGranularity(s string) float64 {
	g, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return g
}

// surfaceRadius returns the tube radius and height at longitudinal parameter t ∈ [0,1].
func surfaceRadius(t float32) (r, y float32) {
	return Radius * math32.Sin(Frequency*math32.Pi*t), Height * t
}

func deg2rad(deg int) float32 {
	return float32(deg) * math32.Pi / 180
}
