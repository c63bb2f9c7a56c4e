package window

import (
	"fmt"

	"github.com/ThatOtherAndrew/particlegl/internal/config"
	"github.com/ThatOtherAndrew/particlegl/internal/update"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keys = map[update.Action]glfw.Key{
	update.MoveForward:  glfw.KeyW,
	update.MoveBackward: glfw.KeyS,
	update.MoveLeft:     glfw.KeyA,
	update.MoveRight:    glfw.KeyD,
	update.MoveUp:       glfw.KeySpace,
	update.MoveDown:     glfw.KeyLeftShift,
	update.Pause:        glfw.KeyP,
	update.Quit:         glfw.KeyEscape,
}

// Window is a GLFW window with a current OpenGL 4.3 core context.
// All methods must be called from the thread that created it.
type Window struct {
	win      *glfw.Window
	scroll   float64
	onResize func(width, height int)
}

func New(s config.WindowSettings) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(s.Width, s.Height, s.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	if s.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	w := &Window{win: win}
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.scroll += yoff
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	return w, nil
}

// OnResize registers fn to be called with the new framebuffer size.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) Pressed(action update.Action) bool {
	key, ok := keys[action]
	if !ok {
		return false
	}
	return w.win.GetKey(key) == glfw.Press
}

func (w *Window) CursorPos() (float64, float64) {
	return w.win.GetCursorPos()
}

func (w *Window) TakeScroll() float64 {
	s := w.scroll
	w.scroll = 0
	return s
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

var _ update.Input = (*Window)(nil)
