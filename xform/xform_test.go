package xform

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const tol = 1e-4

func TestComputeFrameMatricesIdentity(t *testing.T) {
	got := ComputeFrameMatrices(mgl32.Ident4())
	wantProj := mgl32.Mat4{
		5.027339, 0, 0, 0,
		0, 5.027339, 0, 0,
		0, 0, -1.5, -1,
		0, 0, -5, 0,
	}
	wantMV := mgl32.Mat4{
		0.352968, 0.047032, -0.182212, 0,
		0.047032, 0.352968, 0.182212, 0,
		0.182212, -0.182212, 0.305937, 0,
		0, 0, -10, 1,
	}
	wantNormal := mgl32.Mat4{
		2.206053, 0.293947, -1.138827, -11.388267,
		0.293947, 2.206053, 1.138827, 11.388267,
		1.138827, -1.138827, 1.912105, 19.121055,
		0, 0, 0, 1,
	}
	for _, test := range []struct {
		name      string
		got, want mgl32.Mat4
	}{
		{name: "projection", got: got.Projection, want: wantProj},
		{name: "modelview", got: got.ModelView, want: wantMV},
		{name: "normal", got: got.Normal, want: wantNormal},
	} {
		if !approxEqual(test.got[:], test.want[:]) {
			t.Errorf("%s mismatch:\ngot  %v\nwant %v", test.name, test.got, test.want)
		}
	}
}

func TestComputeFrameMatricesOrder(t *testing.T) {
	rot := mgl32.HomogRotate3D(1.1, mgl32.Vec3{0, 1, 0})
	got := ComputeFrameMatrices(rot)
	// A point is rotated first, then tilted, then translated, then scaled.
	p := mgl32.Vec4{1, 2, 3, 1}
	want := rot.Mul4x1(p)
	want = mgl32.HomogRotate3D(TiltAngle, tiltAxis.Normalize()).Mul4x1(want)
	want = mgl32.Translate3D(0, 0, ModelDepth).Mul4x1(want)
	want = mgl32.Scale3D(ModelScale, ModelScale, ModelScale).Mul4x1(want)
	if gotp := got.ModelView.Mul4x1(p); !approxEqual(gotp[:], want[:]) {
		t.Errorf("composition order mismatch: got %v, want %v", gotp, want)
	}
	inv := got.ModelView.Inv().Transpose()
	if !approxEqual(got.Normal[:], inv[:]) {
		t.Error("normal matrix is not the inverse transpose of the model-view")
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	var zero mgl32.Mat4
	if got := NormalMatrix(zero); got != mgl32.Ident4() {
		t.Error("singular model-view should yield identity, got", got)
	}
	nan := mgl32.Ident4()
	nan[5] = math32.NaN()
	if got := NormalMatrix(nan); got != mgl32.Ident4() {
		t.Error("NaN model-view should yield identity, got", got)
	}
}

func TestLightDirection(t *testing.T) {
	got := LightDirection(0)
	if !approxEqual(got[:], []float32{10, 5, 0}) {
		t.Error("light at t=0: want (10,5,0), got", got)
	}
	quarter := LightDirection(LightPeriod / 4)
	if !approxEqual(quarter[:], []float32{0, 5, 10}) {
		t.Error("light at quarter period: want (0,5,10), got", quarter)
	}
	for _, start := range []float64{0, 1234.5, 1e6} {
		a := LightDirection(start)
		b := LightDirection(start + LightPeriod)
		if !approxEqual(a[:], b[:]) {
			t.Errorf("light should return after one period from %g: %v != %v", start, a, b)
		}
		if r := math.Hypot(float64(a[0]), float64(a[2])); math.Abs(r-LightRadius) > tol {
			t.Error("light left its orbit, radius", r)
		}
	}
}

func TestTrackball(t *testing.T) {
	tb := NewTrackball(400, 400)
	if tb.Rotation() != mgl32.Ident4() {
		t.Fatal("new trackball should have identity rotation")
	}
	// Moving without pressing does nothing.
	tb.Drag(300, 200)
	if tb.Rotation() != mgl32.Ident4() {
		t.Fatal("drag without press rotated the trackball")
	}
	tb.Press(200, 200)
	tb.Drag(260, 200)
	tb.Release()
	if tb.Dragging() {
		t.Error("trackball still dragging after release")
	}
	// Dragging right rotates the front of the model to the right, about +Y.
	front := tb.Rotation().Mul4x1(mgl32.Vec4{0, 0, 1, 0})
	if front[0] <= 0 || math32.Abs(front[1]) > tol {
		t.Error("expected rotation about +Y towards +X, got", front)
	}
	r := tb.Rotation()
	if det := r.Det(); math32.Abs(det-1) > tol {
		t.Error("rotation is not orthonormal, det", det)
	}
	tb.Reset()
	if tb.Rotation() != mgl32.Ident4() {
		t.Error("reset should restore identity")
	}
}

func TestTrackballZeroValue(t *testing.T) {
	var tb Trackball
	if tb.Rotation() != mgl32.Ident4() {
		t.Fatal("zero value trackball should have identity rotation, got", tb.Rotation())
	}
	tb.Resize(400, 400)
	tb.Press(200, 200)
	tb.Drag(260, 200)
	r := tb.Rotation()
	if det := r.Det(); math32.Abs(det-1) > tol {
		t.Error("zero value trackball produced a degenerate rotation, det", det)
	}
	if r == mgl32.Ident4() {
		t.Error("zero value trackball did not rotate on drag")
	}
}

func TestTrackballOutsideSphere(t *testing.T) {
	tb := NewTrackball(100, 50)
	p := tb.project(-1000, 25)
	if !approxEqual(p[:], []float32{-1, 0, 0}) {
		t.Error("far pointer should map to the sphere rim, got", p)
	}
	tb.Resize(0, 0)
	p = tb.project(0, 0)
	if math32.IsNaN(p[0]) || math32.IsNaN(p[1]) || math32.IsNaN(p[2]) {
		t.Error("zero viewport produced NaN")
	}
}

// approxEqual compares element-wise with a tolerance relative to the expected magnitude.
func approxEqual(got, want []float32) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math32.Abs(got[i]-want[i]) > tol*(1+math32.Abs(want[i])) {
			return false
		}
	}
	return true
}
