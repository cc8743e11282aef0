//go:build !tinygo && cgo

package gldev

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/wiretube/glbuild"
	"github.com/soypat/wiretube/glrender"
)

// Device draws lit line strips with the line shader program generated by [glbuild].
type Device struct {
	prog     glgl.Program
	vao      uint32
	attribs  [glbuild.NumAttributes]uint32
	uniforms [glbuild.NumUniforms]int32
}

// New compiles and links the line shader program on the current GL context, binds it
// and enables depth testing. Compiler and linker diagnostics are included in the error.
func New() (*Device, error) {
	vertex, fragment := glbuild.NewDefaultProgrammer().Sources()
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertex,
		Fragment: fragment,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling line shader program: %w", err)
	}
	d := &Device{prog: prog}
	prog.Bind()
	for a := glbuild.Attribute(0); int(a) < glbuild.NumAttributes; a++ {
		d.attribs[a], err = prog.AttribLocation(a.CName())
		if err != nil {
			prog.Delete()
			return nil, fmt.Errorf("locating attribute %s: %w", a, err)
		}
	}
	for u := glbuild.Uniform(0); int(u) < glbuild.NumUniforms; u++ {
		d.uniforms[u], err = prog.UniformLocation(u.CName())
		if err != nil {
			prog.Delete()
			return nil, fmt.Errorf("locating uniform %s: %w", u, err)
		}
	}
	// Core profile requires a bound vertex array object to draw.
	gl.GenVertexArrays(1, &d.vao)
	if d.vao == 0 {
		prog.Delete()
		return nil, glErrOrMessage("zero vertex array id set by GL")
	}
	gl.BindVertexArray(d.vao)
	for _, loc := range d.attribs {
		gl.EnableVertexAttribArray(loc)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)
	if err = glgl.Err(); err != nil {
		d.Delete()
		return nil, err
	}
	return d, nil
}

// CreateBuffer uploads data to a new static array buffer.
func (d *Device) CreateBuffer(data []float32) (glrender.Buffer, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, glErrOrMessage("zero buffer id set by GL")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, floatSize*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}
	if err := glgl.Err(); err != nil {
		gl.DeleteBuffers(1, &vbo)
		return 0, fmt.Errorf("uploading %d floats: %w", len(data), err)
	}
	return glrender.Buffer(vbo), nil
}

// DeleteBuffers deletes the buffers. Zero handles are ignored by GL.
func (d *Device) DeleteBuffers(bufs ...glrender.Buffer) {
	for _, b := range bufs {
		id := uint32(b)
		gl.DeleteBuffers(1, &id)
	}
}

// DrawLineStrip binds the vertex buffer at offset zero and the normal buffer at vertex
// firstNormal, then draws count vertices as a line strip.
func (d *Device) DrawLineStrip(vertices, normals glrender.Buffer, firstNormal, count int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(vertices))
	gl.VertexAttribPointer(d.attribs[glbuild.AttribPosition], 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(normals))
	gl.VertexAttribPointer(d.attribs[glbuild.AttribNormal], 3, gl.FLOAT, false, 0, gl.PtrOffset(3*floatSize*firstNormal))
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(count))
}

func (d *Device) UniformMat4(u glbuild.Uniform, m mgl32.Mat4) {
	gl.UniformMatrix4fv(d.uniforms[u], 1, false, &m[0])
}

func (d *Device) Uniform1f(u glbuild.Uniform, v float32) {
	gl.Uniform1f(d.uniforms[u], v)
}

func (d *Device) Uniform3f(u glbuild.Uniform, v mgl32.Vec3) {
	gl.Uniform3f(d.uniforms[u], v[0], v[1], v[2])
}

func (d *Device) Uniform4f(u glbuild.Uniform, v mgl32.Vec4) {
	gl.Uniform4f(d.uniforms[u], v[0], v[1], v[2], v[3])
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport sets the GL viewport to the framebuffer size in pixels.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Err returns the pending GL error, if any.
func (d *Device) Err() error { return glgl.Err() }

// Delete releases the vertex array and shader program. Buffers created by the
// device are owned by their callers and must be deleted beforehand.
func (d *Device) Delete() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.prog.ID() != 0 {
		d.prog.Unbind()
		d.prog.Delete()
	}
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
