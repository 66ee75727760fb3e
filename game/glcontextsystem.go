package game

import (
	"fmt"
	"log"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type GlContextSystem struct {
	width, height int
	window        *glfw.Window

	keys   *keyState
	mouse  *mouseTracker
	scroll float64

	resize,
	key *Observer
}

// NewGlContextSystem opens the window and initializes a 3.3 core context on the main thread.
func NewGlContextSystem(cfg WindowConfig) (*GlContextSystem, error) {
	s := &GlContextSystem{
		width:  cfg.Width,
		height: cfg.Height,

		keys:  newKeyState(),
		mouse: &mouseTracker{first: true},

		resize: NewObserver(),
		key:    NewObserver(),
	}

	if err := mainthread.CallErr(func() error { return s.initGl(cfg) }); err != nil {
		return nil, err
	}
	return s, nil
}

// run function on main thread
func (s *GlContextSystem) MainThread(f func()) {
	mainthread.Call(f)
}

func (s *GlContextSystem) initGl(cfg WindowConfig) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if cfg.Samples > 0 {
		glfw.WindowHint(glfw.Samples, cfg.Samples)
	}

	var err error
	s.window, err = glfw.CreateWindow(s.width, s.height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create window: %w", err)
	}

	s.window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		s.window.Destroy()
		glfw.Terminate()
		return fmt.Errorf("init gl: %w", err)
	}
	log.Println("opengl version", gl.GoStr(gl.GetString(gl.VERSION)))

	// callbacks
	s.window.SetFramebufferSizeCallback(s.onResize)
	s.window.SetKeyCallback(s.onKey)
	s.window.SetCursorPosCallback(s.onMouseMove)
	s.window.SetScrollCallback(s.onMouseScroll)
	s.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	// init gl
	gl.ClearColor(0, 0, 0, 1)
	gl.ClearDepth(1)

	// depth
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.DEPTH_TEST)

	// cull face
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.CULL_FACE)

	if cfg.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}

	// set size
	w, h := s.window.GetFramebufferSize()
	s.onResize(s.window, w, h)
	return nil
}

func (s *GlContextSystem) isRunning() bool {
	var running bool
	s.MainThread(func() {
		running = !s.window.ShouldClose()
	})
	return running
}

// Update swaps the buffers and polls for new input events.
func (s *GlContextSystem) Update() {
	s.mouse.reset()
	s.scroll = 0
	s.MainThread(func() {
		s.window.SwapBuffers()
		glfw.PollEvents()
	})
}

// Time in seconds since initialization
func (s *GlContextSystem) Time() float64 {
	var t float64
	s.MainThread(func() {
		t = glfw.GetTime()
	})
	return t
}

func (s *GlContextSystem) Cleanup() {
	s.MainThread(func() {
		if s.window != nil {
			s.window.Destroy()
		}
		glfw.Terminate()
	})
}

func (s *GlContextSystem) onResize(w *glfw.Window, width, height int) {
	if height < 1 {
		height = 1
	}

	if width < 1 {
		width = 1
	}

	gl.Viewport(0, 0, int32(width), int32(height))

	s.width = width
	s.height = height

	s.resize.Publish(MessageResize{width, height})
}

func (s *GlContextSystem) Size() (width, height int) {
	return s.width, s.height
}

func (s *GlContextSystem) Aspect() float32 {
	return float32(s.width) / float32(s.height)
}

// Close ends the main loop, it must run on the main thread like the OnKey listeners.
func (s *GlContextSystem) Close() {
	s.window.SetShouldClose(true)
}

type Key int

const (
	KeyEscape = Key(glfw.KeyEscape)

	KeyW = Key(glfw.KeyW)
	KeyS = Key(glfw.KeyS)
	KeyA = Key(glfw.KeyA)
	KeyD = Key(glfw.KeyD)

	keyLast = Key(glfw.KeyLast)
)

// keyState is the set of currently pressed keys
type keyState struct {
	pressed *bitset.BitSet
}

func newKeyState() *keyState {
	return &keyState{pressed: bitset.New(uint(keyLast) + 1)}
}

func (k *keyState) set(key Key, down bool) {
	// glfw.KeyUnknown is -1
	if key < 0 || key > keyLast {
		return
	}
	k.pressed.SetTo(uint(key), down)
}

func (k *keyState) isDown(key Key) bool {
	if key < 0 || key > keyLast {
		return false
	}
	return k.pressed.Test(uint(key))
}

func (s *GlContextSystem) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		s.keys.set(Key(key), true)
	case glfw.Release:
		s.keys.set(Key(key), false)
	default:
		return
	}

	s.key.Publish(MessageKey{Key(key), action == glfw.Press})
}

func (s *GlContextSystem) IsKeyDown(key Key) bool {
	return s.keys.isDown(key)
}

// closeOnEscape returns a key listener calling quit when escape is pressed
func closeOnEscape(quit func()) Listener {
	return func(msg interface{}) {
		if m, ok := msg.(MessageKey); ok && m.Key == KeyEscape && m.Pressed {
			quit()
		}
	}
}

// mouseTracker accumulates cursor movement between two frames
type mouseTracker struct {
	x, y   float64
	dx, dy float64
	first  bool
}

func (m *mouseTracker) move(x, y float64) {
	// no jump on the first event, the previous position is unknown
	if m.first {
		m.x, m.y = x, y
		m.first = false
	}

	m.dx += x - m.x
	m.dy += y - m.y
	m.x, m.y = x, y
}

func (m *mouseTracker) reset() {
	m.dx, m.dy = 0, 0
}

func (s *GlContextSystem) onMouseMove(window *glfw.Window, xpos float64, ypos float64) {
	s.mouse.move(xpos, ypos)
}

// MouseDelta since the last Update in screen coordinates, positive dy is downwards
func (s *GlContextSystem) MouseDelta() (dx, dy float64) {
	return s.mouse.dx, s.mouse.dy
}

func (s *GlContextSystem) onMouseScroll(w *glfw.Window, xoff float64, yoff float64) {
	s.scroll += yoff
}

// MouseScroll since the last Update, positive is away from the user
func (s *GlContextSystem) MouseScroll() float64 {
	return s.scroll
}

// listeners are called on the main thread and must not use MainThread
func (s *GlContextSystem) OnResize() *Observer { return s.resize }
func (s *GlContextSystem) OnKey() *Observer    { return s.key }
