//go:build !tinygo && cgo

package tubeaux

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/wiretube"
	"github.com/soypat/wiretube/gldev"
	"github.com/soypat/wiretube/glrender"
	"github.com/soypat/wiretube/xform"
)

func ui(cfg UIConfig) error {
	log := cfg.Logger
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()
	log.Info("graphics context acquired",
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	dev, err := gldev.New()
	if err != nil {
		return fmt.Errorf("initializing the graphics context: %w", err)
	}
	defer dev.Delete()
	fbw, fbh := window.GetFramebufferSize()
	dev.Viewport(fbw, fbh)

	trackball := xform.NewTrackball(window.GetSize())
	uSlider := newSlider(granularityOr(cfg.UGranularity, wiretube.DefaultUGranularity), minGranularity, maxUGranularity)
	vSlider := newSlider(granularityOr(cfg.VGranularity, wiretube.DefaultVGranularity), minGranularity, maxVGranularity)
	renderer, err := glrender.NewRenderer(dev, trackball, glrender.Config{
		UGranularity: uSlider.Granularity(),
		VGranularity: vSlider.Granularity(),
		Logger:       log,
	})
	if err != nil {
		return err
	}
	defer renderer.Close()

	var title []byte
	updateTitle := func() {
		title = appendTitle(title[:0], cfg.Title, uSlider.value, vSlider.value)
		window.SetTitle(string(title))
	}
	updateTitle()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		dev.Viewport(width, height)
	})
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		trackball.Resize(width, height)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			trackball.Press(w.GetCursorPos())
		case glfw.Release:
			trackball.Release()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		trackball.Drag(xpos, ypos)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		// Callbacks run inside PollEvents on the render thread, between frames.
		var err error
		switch key {
		case glfw.KeyUp, glfw.KeyDown:
			delta := stepFor(uSlider.value)
			if key == glfw.KeyDown {
				delta = -delta
			}
			if uSlider.step(delta) {
				err = renderer.SetUGranularity(uSlider.Granularity())
			}
		case glfw.KeyRight, glfw.KeyLeft:
			delta := stepFor(vSlider.value)
			if key == glfw.KeyLeft {
				delta = -delta
			}
			if vSlider.step(delta) {
				err = renderer.SetVGranularity(vSlider.Granularity())
			}
		case glfw.KeyR:
			trackball.Reset()
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
		if err != nil {
			log.Error("rebuilding geometry", slog.Any("err", err))
		}
		ug, vg := renderer.Granularity()
		uSlider.set(ug)
		vSlider.set(vg)
		updateTitle()
	})

	return renderer.Run(cfg.Context, &glfwHost{window: window})
}

// glfwHost paces frames with buffer swaps synchronized to the display refresh.
type glfwHost struct {
	window  *glfw.Window
	started bool
}

func (h *glfwHost) NextFrame() (timestampMs float64, ok bool) {
	if h.started {
		h.window.SwapBuffers()
	}
	h.started = true
	glfw.PollEvents()
	if h.window.ShouldClose() {
		return 0, false
	}
	return glfw.GetTime() * 1000, true
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("%w: initializing GLFW: %s", ErrNoContext, err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("%w: creating window: %s", ErrNoContext, err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("%w: loading OpenGL: %s", ErrNoContext, err)
	}
	term = func() {
		window.Destroy()
		glfw.Terminate()
	}
	return window, term, nil
}
