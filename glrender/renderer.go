package glrender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/wiretube"
	"github.com/soypat/wiretube/glbuild"
	"github.com/soypat/wiretube/xform"
)

// Material holds the lighting parameters and colors of the line families.
type Material struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
	// ViewPosition is the eye position used for the specular term.
	ViewPosition mgl32.Vec3
	// ULineColor and VLineColor are the RGBA colors of each line family.
	ULineColor mgl32.Vec4
	VLineColor mgl32.Vec4
}

// DefaultMaterial returns the material the tube is drawn with.
func DefaultMaterial() Material {
	return Material{
		Ambient:      mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:      mgl32.Vec3{0.6, 0.6, 0.6},
		Specular:     mgl32.Vec3{1, 1, 1},
		Shininess:    32,
		ViewPosition: mgl32.Vec3{0, 0, 5},
		ULineColor:   mgl32.Vec4{1, 0, 0, 1},
		VLineColor:   mgl32.Vec4{0, 1, 0, 1},
	}
}

// Config configures a [Renderer]. The zero value is ready to use.
type Config struct {
	// UGranularity and VGranularity set the initial sampling density of each family.
	// Zero selects [wiretube.DefaultUGranularity] and [wiretube.DefaultVGranularity].
	// Use [Renderer.SetUGranularity] to request zero granularity explicitly.
	UGranularity float64
	VGranularity float64
	// Material overrides the default material when not the zero value.
	Material Material
	// Logger overrides the package logger. See [SetLogger].
	Logger *slog.Logger
}

// Renderer draws the U-line and V-line families of the tube with an orbiting light.
// It owns both families and all GPU buffers it creates. A Renderer is not safe for
// concurrent use: all calls must happen on the goroutine that owns the graphics context.
type Renderer struct {
	dev     Device
	rot     Rotator
	log     *slog.Logger
	mat     Material
	u, v    *Family
	ug, vg  float64
	light   mgl32.Vec3
	retired []*Family
	frames  uint64
}

// NewRenderer builds both line families on dev. If rot is nil the model is not rotated.
func NewRenderer(dev Device, rot Rotator, cfg Config) (*Renderer, error) {
	if dev == nil {
		return nil, errors.New("nil device")
	}
	if rot == nil {
		rot = fixedRotation(mgl32.Ident4())
	}
	r := &Renderer{
		dev:   dev,
		rot:   rot,
		log:   loggerOr(cfg.Logger),
		mat:   cfg.Material,
		ug:    cfg.UGranularity,
		vg:    cfg.VGranularity,
		light: xform.LightDirection(0),
	}
	if r.mat == (Material{}) {
		r.mat = DefaultMaterial()
	}
	if r.ug == 0 {
		r.ug = wiretube.DefaultUGranularity
	}
	if r.vg == 0 {
		r.vg = wiretube.DefaultVGranularity
	}
	var err error
	r.u, err = r.buildFamily("U-lines", wiretube.SampleULines(r.ug))
	if err != nil {
		return nil, err
	}
	r.v, err = r.buildFamily("V-lines", wiretube.SampleVLines(r.vg))
	if err != nil {
		r.u.Release(dev)
		return nil, err
	}
	r.log.Info("renderer ready", slog.Int("ulines", r.u.Len()), slog.Int("vlines", r.v.Len()))
	return r, nil
}

// SetUGranularity rebuilds the U-line family at granularity g. The replacement is fully
// built before it is swapped in. The previous family is released at the start of the next frame.
// On error the current family is kept.
func (r *Renderer) SetUGranularity(g float64) error {
	fam, err := r.buildFamily("U-lines", wiretube.SampleULines(g))
	if err != nil {
		r.log.Warn("U-line rebuild failed", slog.Float64("granularity", g), slog.Any("err", err))
		return err
	}
	r.retired = append(r.retired, r.u)
	r.u = fam
	r.ug = g
	return nil
}

// SetVGranularity rebuilds the V-line family at granularity g. See [Renderer.SetUGranularity].
func (r *Renderer) SetVGranularity(g float64) error {
	fam, err := r.buildFamily("V-lines", wiretube.SampleVLines(g))
	if err != nil {
		r.log.Warn("V-line rebuild failed", slog.Float64("granularity", g), slog.Any("err", err))
		return err
	}
	r.retired = append(r.retired, r.v)
	r.v = fam
	r.vg = g
	return nil
}

func (r *Renderer) buildFamily(name string, lines []wiretube.Polyline) (*Family, error) {
	fam := NewFamily(name)
	err := fam.Build(r.dev, lines)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}
	r.log.Debug("built line family", slog.String("family", name),
		slog.Int("polylines", fam.Len()), slog.Int("vertices", fam.Vertices()))
	return fam, nil
}

// AnimateFrame draws one frame at timestampMs milliseconds: the light direction is advanced
// along its orbit, lighting uniforms and frame matrices are set and both families are drawn.
func (r *Renderer) AnimateFrame(timestampMs float64) {
	// No draw of this frame references retired families.
	r.releaseRetired()
	dev := r.dev
	r.light = xform.LightDirection(timestampMs)
	dev.Uniform3f(glbuild.UniformLightDirection, r.light)
	dev.Uniform3f(glbuild.UniformViewPosition, r.mat.ViewPosition)
	dev.Uniform3f(glbuild.UniformAmbient, r.mat.Ambient)
	dev.Uniform3f(glbuild.UniformDiffuse, r.mat.Diffuse)
	dev.Uniform3f(glbuild.UniformSpecular, r.mat.Specular)
	dev.Uniform1f(glbuild.UniformShininess, r.mat.Shininess)

	m := xform.ComputeFrameMatrices(r.rot.Rotation())
	dev.UniformMat4(glbuild.UniformProjection, m.Projection)
	dev.UniformMat4(glbuild.UniformModelView, m.ModelView)
	dev.UniformMat4(glbuild.UniformNormalMatrix, m.Normal)

	dev.Clear()
	dev.Uniform4f(glbuild.UniformColor, r.mat.ULineColor)
	r.u.Draw(dev)
	dev.Uniform4f(glbuild.UniformColor, r.mat.VLineColor)
	r.v.Draw(dev)
	r.frames++
}

// Run calls AnimateFrame once per frame of host until the host is torn down, in which
// case it returns nil, or ctx is done, in which case it returns ctx.Err().
// Run blocks only inside host.NextFrame.
func (r *Renderer) Run(ctx context.Context, host FrameHost) error {
	if host == nil {
		return errors.New("nil frame host")
	}
	r.log.Info("render loop started")
	defer func() { r.log.Info("render loop stopped", slog.Uint64("frames", r.frames)) }()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ts, ok := host.NextFrame()
		if !ok {
			return nil
		}
		r.AnimateFrame(ts)
	}
}

// Close releases all GPU buffers owned by the renderer. The renderer must not be used afterwards.
func (r *Renderer) Close() {
	r.releaseRetired()
	if r.u != nil {
		r.u.Release(r.dev)
	}
	if r.v != nil {
		r.v.Release(r.dev)
	}
}

func (r *Renderer) releaseRetired() {
	for i, fam := range r.retired {
		fam.Release(r.dev)
		r.retired[i] = nil
	}
	r.retired = r.retired[:0]
}

// Granularity returns the granularities the current families were sampled at.
func (r *Renderer) Granularity() (u, v float64) { return r.ug, r.vg }

// LightDirection returns the light direction set by the last frame.
func (r *Renderer) LightDirection() mgl32.Vec3 { return r.light }

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 { return r.frames }

// ULines returns the current U-line family.
func (r *Renderer) ULines() *Family { return r.u }

// VLines returns the current V-line family.
func (r *Renderer) VLines() *Family { return r.v }
