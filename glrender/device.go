package glrender

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/wiretube/glbuild"
)

// Buffer is a handle to a GPU-resident array of float32 data. Zero is never a valid buffer.
type Buffer uint32

// Device is the subset of a rendering context needed to draw lit line families.
// Implementations are not safe for concurrent use and must be used from the
// goroutine that owns the graphics context.
type Device interface {
	// CreateBuffer uploads data to a new GPU buffer.
	CreateBuffer(data []float32) (Buffer, error)
	// DeleteBuffers releases the buffers. Zero handles are ignored.
	DeleteBuffers(bufs ...Buffer)
	// DrawLineStrip draws count vertices of vertices as a line strip. Normals are read
	// from the normals buffer starting at vertex index firstNormal.
	DrawLineStrip(vertices, normals Buffer, firstNormal, count int)
	UniformMat4(u glbuild.Uniform, m mgl32.Mat4)
	Uniform1f(u glbuild.Uniform, v float32)
	Uniform3f(u glbuild.Uniform, v mgl32.Vec3)
	Uniform4f(u glbuild.Uniform, v mgl32.Vec4)
	// Clear clears the color and depth buffers.
	Clear()
}

// Rotator provides the interactive model rotation, polled once per frame.
type Rotator interface {
	Rotation() mgl32.Mat4
}

// FrameHost paces the render loop at the display refresh rate.
type FrameHost interface {
	// NextFrame presents the previous frame, waits for the next display refresh and returns
	// its timestamp in milliseconds. ok is false once the host is torn down.
	NextFrame() (timestampMs float64, ok bool)
}

// fixedRotation is a Rotator that always returns the same matrix.
type fixedRotation mgl32.Mat4

func (r fixedRotation) Rotation() mgl32.Mat4 { return mgl32.Mat4(r) }
