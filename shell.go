package tickshell

import (
	"image"
	"sync"
	"sync/atomic"
	"time"
)

const defaultScreenshotDir = "screenshots"

// Config controls a Shell.
type Config struct {
	// Background is the color each draw target is cleared to before render.
	// The zero value means ColorBlack.
	Background Color

	// ShowFPS draws the measured loop rate over every frame.
	ShowFPS bool

	// Debug logs frame timings at debug level once per FPS sampling window.
	Debug bool

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to "screenshots".
	ScreenshotDir string

	// OnFrameError, if set, is called from the loop goroutine whenever a
	// frame is skipped because no draw target could be acquired.
	OnFrameError func(error)
}

// Shell drives a frame loop against a Surface and turns input events from the
// host into per-frame queryable state. Event methods (PressKey, PressMouse,
// ...) may be called from any goroutine; queries are meant for the render
// callback but are safe anywhere.
type Shell struct {
	surface  Surface
	renderer Renderer
	cfg      Config

	keys  *keyTracker
	mouse *mouseState
	wheel wheelAccumulator

	lifeMu  sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	// Input injection (see inject.go)
	injectMu    sync.Mutex
	injectQueue []syntheticEvent
	script      atomic.Pointer[ScriptRunner]

	shotMu          sync.Mutex
	screenshotQueue []string

	statsMu    sync.Mutex
	stats      FrameStats
	fpsElapsed float64
	fpsFrames  int

	errors *errorReporter
	now    func() time.Time
}

// New creates a stopped shell that renders r onto surface.
func New(surface Surface, r Renderer, cfg Config) *Shell {
	if cfg.Background == (Color{}) {
		cfg.Background = ColorBlack
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = defaultScreenshotDir
	}
	done := make(chan struct{})
	close(done)
	s := &Shell{
		surface:  surface,
		renderer: r,
		cfg:      cfg,
		keys:     newKeyTracker(),
		done:     done,
		errors:   newErrorReporter(),
		now:      time.Now,
	}
	s.mouse = newMouseState(s.locateCursor)
	return s
}

func (s *Shell) locateCursor() image.Point {
	return s.surface.SurfacePoint(s.surface.PointerLocation())
}

// --- Lifecycle ---

// Start launches the frame loop on its own goroutine. It does nothing if the
// loop is already running. If a previous loop is still winding down, the new
// one waits for it before its first frame.
func (s *Shell) Start() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.running {
		return
	}
	prev := s.done
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(prev, s.stop, s.done)
}

// Stop asks the loop to exit at the next iteration boundary and returns
// immediately. A render callback in progress is not interrupted. The surface
// is released once the loop has exited; wait on Done to observe that.
// Stop does nothing if the loop is not running and is safe to call from the
// render callback.
func (s *Shell) Stop() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
}

// Running reports whether the loop has been started and not stopped.
func (s *Shell) Running() bool {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	return s.running
}

// Done returns a channel that is closed when the most recently started loop
// has exited and released the surface. It is already closed for a shell
// that was never started.
func (s *Shell) Done() <-chan struct{} {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	return s.done
}

// ToggleFullscreen switches the surface in or out of fullscreen if it
// supports it.
func (s *Shell) ToggleFullscreen() {
	if f, ok := s.surface.(Fullscreener); ok {
		f.ToggleFullscreen()
	}
}

// --- Input events ---

// PressKey records that k went down. Repeated presses while k is held do not
// reset its duration.
func (s *Shell) PressKey(k Key) { s.keys.press(k) }

// ReleaseKey records that k went up.
func (s *Shell) ReleaseKey(k Key) { s.keys.release(k) }

// PressMouse records a button press at the current cursor position.
func (s *Shell) PressMouse(button MouseButton) { s.mouse.onPress(button) }

// ReleaseMouse records a button release. Any release ends the press,
// whichever button it was.
func (s *Shell) ReleaseMouse(MouseButton) { s.mouse.onRelease() }

// ScrollWheel records a wheel movement, replacing any unread delta.
func (s *Shell) ScrollWheel(delta int) { s.wheel.set(delta) }

// --- Queries ---

// KeyHeld returns how many seconds k has been held, measured in whole frames.
// It returns -1 if k is not held and 0 if k went down during this frame or
// the previous one.
func (s *Shell) KeyHeld(k Key) float64 { return s.keys.held(k) }

// HeldKeys returns every held key in ascending order.
func (s *Shell) HeldKeys() []Key { return s.keys.heldKeys() }

// MouseJustPressed reports whether the mouse went down since the previous
// frame. It is true for exactly one frame per press.
//
// Note that this query has a side effect: a press delivered during the
// current frame is marked as observed, so it reports true for the rest of
// this frame only, instead of for the whole next frame.
func (s *Shell) MouseJustPressed() bool { return s.mouse.justPressed() }

// MouseHeld reports whether a mouse button is down.
func (s *Shell) MouseHeld() bool { return s.mouse.held() }

// MouseButton returns the button of the current press, or MouseButtonNone.
func (s *Shell) MouseButton() MouseButton { return s.mouse.button() }

// Cursor returns the cursor position relative to the surface. The position
// is resolved once per frame.
func (s *Shell) Cursor() image.Point { return s.mouse.cursor() }

// ClickOrigin returns the cursor position captured when the current press
// began. ok is false when no button is down.
func (s *Shell) ClickOrigin() (p image.Point, ok bool) { return s.mouse.clickOrigin() }

// ConsumeWheel returns the most recent unread wheel delta and resets it to 0.
// Positive values scroll down.
func (s *Shell) ConsumeWheel() int { return s.wheel.consume() }
