package wiretube

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// SampleULines returns the U-lines of the tube: one polyline of constant θ for every
// [Step](AngularRange, granularity) degrees, each sampled at LongitudinalSamples+1 points
// along the tube axis.
func SampleULines(granularity float64) []Polyline {
	step := Step(AngularRange, granularity)
	lines := make([]Polyline, 0, (AngularRange+step-1)/step)
	for i := 0; i < AngularRange; i += step {
		sin, cos := math32.Sincos(deg2rad(i))
		line := make(Polyline, 0, LongitudinalSamples+1)
		for j := 0; j <= LongitudinalSamples; j++ {
			r, y := surfaceRadius(float32(j) / LongitudinalSamples)
			line = append(line, ms3.Vec{X: r * cos, Y: y, Z: r * sin})
		}
		lines = append(lines, line)
	}
	return lines
}

// SampleVLines returns the V-lines of the tube: one polyline of constant t for every
// [Step](LongitudinalSamples, granularity) longitudinal samples, j=0..LongitudinalSamples inclusive.
// Granularity only affects the t axis, θ is always sampled every VLineAngleStep degrees.
func SampleVLines(granularity float64) []Polyline {
	const perLine = AngularRange / VLineAngleStep
	step := Step(LongitudinalSamples, granularity)
	lines := make([]Polyline, 0, LongitudinalSamples/step+1)
	for j := 0; j <= LongitudinalSamples; j += step {
		r, y := surfaceRadius(float32(j) / LongitudinalSamples)
		line := make(Polyline, 0, perLine)
		for i := 0; i < AngularRange; i += VLineAngleStep {
			sin, cos := math32.Sincos(deg2rad(i))
			line = append(line, ms3.Vec{X: r * cos, Y: y, Z: r * sin})
		}
		lines = append(lines, line)
	}
	return lines
}

// DefaultULines returns U-lines sampled at DefaultUGranularity.
func DefaultULines() []Polyline { return SampleULines(DefaultUGranularity) }

// DefaultVLines returns V-lines sampled at DefaultVGranularity.
func DefaultVLines() []Polyline { return SampleVLines(DefaultVGranularity) }

// EstimateNormal approximates the surface normal at p as the normalized position vector.
// This is not the differential surface normal: the tube is a deformed surface of revolution
// so the position vector points roughly outward and is cheap to compute.
// Points at the origin have no direction and return the tube axis (+Y).
func EstimateNormal(p ms3.Vec) ms3.Vec {
	n := ms3.Norm(p)
	if n < epstol || math32.IsNaN(n) || math32.IsInf(n, 0) {
		return ms3.Vec{Y: 1}
	}
	return ms3.Scale(1/n, p)
}

// EstimateNormals appends the estimated normal of every point of line to dst and returns the result.
func EstimateNormals(dst []ms3.Vec, line Polyline) []ms3.Vec {
	for _, p := range line {
		dst = append(dst, EstimateNormal(p))
	}
	return dst
}
