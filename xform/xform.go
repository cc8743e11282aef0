package xform

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera and model placement constants.
const (
	FovY   = math32.Pi / 8
	Aspect = 1
	Near   = 2
	Far    = 10

	ModelScale = 0.4
	// ModelDepth is the translation along Z applied before scaling.
	ModelDepth = -25
	// TiltAngle is the fixed rotation in radians about the (0.6, 0.6, 0) axis applied after the user rotation.
	TiltAngle = 0.7
)

// tiltAxis is the fixed rotation axis. It is normalized before use.
var tiltAxis = mgl32.Vec3{0.6, 0.6, 0}

// epstol is used to check for badly conditioned transformation matrix determinants.
const epstol = 6e-7

// FrameMatrices holds the matrices uploaded to the line shader every frame.
// All matrices are column major as expected by OpenGL.
type FrameMatrices struct {
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
	// Normal is the transpose of the inverse of ModelView.
	Normal mgl32.Mat4
}

var (
	projection = mgl32.Perspective(FovY, Aspect, Near, Far)
	// placement is scale·translate·tilt, the fixed part of the model-view matrix.
	placement = mgl32.Scale3D(ModelScale, ModelScale, ModelScale).
			Mul4(mgl32.Translate3D(0, 0, ModelDepth)).
			Mul4(mgl32.HomogRotate3D(TiltAngle, tiltAxis.Normalize()))
)

// ComputeFrameMatrices composes the frame matrices from the interactive rotation.
// The rotation is applied first, followed by the fixed tilt, translation and scaling:
//
//	modelView = scale · translate · tilt · rotation
func ComputeFrameMatrices(rotation mgl32.Mat4) FrameMatrices {
	mv := placement.Mul4(rotation)
	return FrameMatrices{
		Projection: projection,
		ModelView:  mv,
		Normal:     NormalMatrix(mv),
	}
}

// NormalMatrix returns the transpose of the inverse of modelView. Singular
// or non-finite matrices return the identity.
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat4 {
	det := modelView.Det()
	if math32.Abs(det) < epstol || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return mgl32.Ident4()
	}
	return modelView.Inv().Transpose()
}

// Light orbit constants. The light orbits the Y axis at LightRadius with angular
// speed LightSpeed radians per millisecond at a fixed height.
const (
	LightRadius = 10.0
	LightHeight = 5.0
	LightSpeed  = 0.001
)

// LightPeriod is the orbit period of the light in milliseconds.
const LightPeriod = 2 * math.Pi / LightSpeed

// LightDirection returns the light direction at timestampMs milliseconds.
func LightDirection(timestampMs float64) mgl32.Vec3 {
	sin, cos := math.Sincos(timestampMs * LightSpeed)
	return mgl32.Vec3{
		float32(LightRadius * cos),
		LightHeight,
		float32(LightRadius * sin),
	}
}
