//go:build tinygo || !cgo

package gldev

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/wiretube/glbuild"
	"github.com/soypat/wiretube/glrender"
)

var errNoCGO = errors.New("OpenGL rendering requires CGo and is not supported on TinyGo")

type Device struct{}

// New fails without cgo.
func New() (*Device, error) { return nil, errNoCGO }

func (d *Device) CreateBuffer(data []float32) (glrender.Buffer, error) { return 0, errNoCGO }
func (d *Device) DeleteBuffers(bufs ...glrender.Buffer)                 {}
func (d *Device) DrawLineStrip(vertices, normals glrender.Buffer, firstNormal, count int) {
}
func (d *Device) UniformMat4(u glbuild.Uniform, m mgl32.Mat4) {}
func (d *Device) Uniform1f(u glbuild.Uniform, v float32)      {}
func (d *Device) Uniform3f(u glbuild.Uniform, v mgl32.Vec3)   {}
func (d *Device) Uniform4f(u glbuild.Uniform, v mgl32.Vec4)   {}
func (d *Device) Clear()                                      {}
func (d *Device) Viewport(width, height int)                  {}
func (d *Device) Err() error                                  { return errNoCGO }
func (d *Device) Delete()                                     {}
