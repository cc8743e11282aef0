package glrender

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/wiretube"
)

var errFamilyBuilt = errors.New("line family already built; create a new family to rebuild")

// Span locates one polyline inside the shared normal buffer of its family.
type Span struct {
	// Offset is the index of the polyline's first vertex in the normal buffer.
	Offset int
	// Count is the number of vertices of the polyline.
	Count int
}

// Family is a set of polylines resident on the GPU, drawn as one line strip per polyline.
// Each polyline has its own vertex buffer while normals of all polylines share one buffer,
// located by the span table in build order.
//
// A Family is built once. Changing the sampling density means building a new Family and
// releasing the old one.
type Family struct {
	name    string
	vbos    []Buffer
	spans   []Span
	normals Buffer
	nverts  int
	built   bool
	// scratch buffers reused during Build.
	flat    []float32
	normbuf []ms3.Vec
}

// NewFamily returns an empty family. name is used in logs and errors.
func NewFamily(name string) *Family {
	return &Family{name: name}
}

// Name returns the name given to the family on creation.
func (f *Family) Name() string { return f.name }

// Build uploads one vertex buffer per polyline and a single normal buffer holding
// the estimated normal of every vertex in polyline order. On error all buffers created
// by the call are released and the family remains unbuilt.
func (f *Family) Build(dev Device, lines []wiretube.Polyline) (err error) {
	if dev == nil {
		return errors.New("nil device")
	} else if f.built {
		return errFamilyBuilt
	}
	vbos := make([]Buffer, 0, len(lines))
	spans := make([]Span, 0, len(lines))
	defer func() {
		if err != nil {
			dev.DeleteBuffers(vbos...)
		}
	}()
	f.normbuf = f.normbuf[:0]
	for i, line := range lines {
		var vbo Buffer
		f.flat = appendFlat(f.flat[:0], line)
		vbo, err = dev.CreateBuffer(f.flat)
		if err != nil {
			return fmt.Errorf("%s: uploading polyline %d: %w", f.name, i, err)
		}
		vbos = append(vbos, vbo)
		spans = append(spans, Span{Offset: len(f.normbuf), Count: len(line)})
		f.normbuf = wiretube.EstimateNormals(f.normbuf, line)
	}
	f.flat = appendFlat(f.flat[:0], f.normbuf)
	var normals Buffer
	normals, err = dev.CreateBuffer(f.flat)
	if err != nil {
		return fmt.Errorf("%s: uploading normals: %w", f.name, err)
	}
	f.vbos = vbos
	f.spans = spans
	f.normals = normals
	f.nverts = len(f.normbuf)
	f.built = true
	return nil
}

// Draw issues one line strip draw call per polyline in build order. Normals
// are consumed at each polyline's span offset.
func (f *Family) Draw(dev Device) {
	if !f.built {
		return
	}
	for i, vbo := range f.vbos {
		span := f.spans[i]
		if span.Count == 0 {
			continue
		}
		dev.DrawLineStrip(vbo, f.normals, span.Offset, span.Count)
	}
}

// Release deletes the family's GPU buffers. It is safe to call more than once.
func (f *Family) Release(dev Device) {
	if !f.built {
		return
	}
	dev.DeleteBuffers(f.vbos...)
	dev.DeleteBuffers(f.normals)
	f.vbos = nil
	f.spans = nil
	f.normals = 0
	f.nverts = 0
	f.flat = nil
	f.normbuf = nil
	f.built = false
}

// Built reports whether the family holds GPU buffers.
func (f *Family) Built() bool { return f.built }

// Len returns the number of polylines in the family.
func (f *Family) Len() int { return len(f.spans) }

// Vertices returns the total vertex count, which equals the length of the normal buffer in vertices.
func (f *Family) Vertices() int { return f.nverts }

// Spans returns a copy of the per-polyline normal buffer span table.
func (f *Family) Spans() []Span {
	return append([]Span(nil), f.spans...)
}

// Counts returns the vertex count of every polyline in build order.
func (f *Family) Counts() []int {
	counts := make([]int, len(f.spans))
	for i, span := range f.spans {
		counts[i] = span.Count
	}
	return counts
}

func appendFlat(dst []float32, pts []ms3.Vec) []float32 {
	for _, p := range pts {
		dst = append(dst, p.X, p.Y, p.Z)
	}
	return dst
}
