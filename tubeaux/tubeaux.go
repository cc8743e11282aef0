package tubeaux

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/soypat/wiretube"
	"github.com/soypat/wiretube/glrender"
)

// ErrNoContext is returned by [UI] when no graphics context could be acquired.
var ErrNoContext = errors.New("could not get an OpenGL graphics context")

// UIConfig configures the interactive tube viewer. Zero values select defaults.
type UIConfig struct {
	Width, Height int
	// Title of the window. The current granularities are appended to it.
	Title string
	// UGranularity and VGranularity set the initial sampling density. Nil selects the default.
	// Non-positive and NaN granularities select the maximum density.
	UGranularity *float64
	VGranularity *float64
	// Context stops the render loop when done.
	Context context.Context
	Logger  *slog.Logger
}

// UI opens a window and renders the tube until the window is closed or
// cfg.Context is done. It must be called from the main thread, see [runtime.LockOSThread].
//
// Controls: drag with the left mouse button to rotate, Up/Down change U-line
// granularity, Right/Left change V-line granularity, R resets the rotation, Esc quits.
func UI(cfg UIConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Title == "" {
		cfg.Title = "wiretube"
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = glrender.Logger()
	}
	return ui(cfg)
}

// granularityOr returns *g, or def when g is nil.
func granularityOr(g *float64, def float64) float64 {
	if g == nil {
		return def
	}
	return *g
}

// Granularity slider ranges. U-lines reach maximum density at AngularRange,
// V-lines at LongitudinalSamples.
const (
	minGranularity  = 1
	maxUGranularity = wiretube.AngularRange
	maxVGranularity = wiretube.LongitudinalSamples
)

// slider is a bounded integer granularity input.
type slider struct {
	value, min, max int
}

func newSlider(value float64, lo, hi int) slider {
	s := slider{min: lo, max: hi}
	s.set(value)
	return s
}

func (s *slider) set(v float64) {
	switch {
	case v != v, v <= 0:
		// Granularities that clamp to a sampling step of 1.
		s.value = s.max
	case v < float64(s.min):
		s.value = s.min
	case v > float64(s.max):
		s.value = s.max
	default:
		s.value = int(v)
	}
}

// step moves the slider by delta and reports whether the value changed.
func (s *slider) step(delta int) bool {
	old := s.value
	s.value = max(s.min, min(s.max, s.value+delta))
	return s.value != old
}

// Granularity returns the slider value as a granularity.
func (s *slider) Granularity() float64 { return float64(s.value) }

// stepFor returns the slider increment for a key press. Coarse steps are used
// far from the minimum so the full range is reachable quickly.
func stepFor(value int) int {
	switch {
	case value >= 100:
		return 10
	case value >= 20:
		return 2
	default:
		return 1
	}
}

func appendTitle(b []byte, title string, ug, vg int) []byte {
	b = append(b, title...)
	b = append(b, " U:"...)
	b = strconv.AppendInt(b, int64(ug), 10)
	b = append(b, " V:"...)
	b = strconv.AppendInt(b, int64(vg), 10)
	return b
}
