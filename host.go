package tickshell

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Host is a Surface backed by an ebiten window. It implements ebiten.Game:
// Update reads input edges and forwards them to the attached InputSink, and
// Draw shows the buffer most recently presented by the loop. The loop draws
// into an offscreen back buffer from its own goroutine and Present waits
// until Draw has shown the previous frame, so the loop runs at display rate.
type Host struct {
	sink          InputSink
	fullscreenKey ebiten.Key // -1 when disabled

	width  atomic.Int32
	height atomic.Int32

	mu      sync.Mutex
	shown   *sync.Cond    // signalled by Draw, Close and Shutdown
	front   *ebiten.Image // shown by Draw
	back    *ebiten.Image // handed out by DrawTarget
	pending bool          // front has not been drawn yet
	ended   bool          // ebiten no longer calls Draw
	closed  bool

	input hostInput
}

// NewHost applies cfg to the ebiten window and returns a host for it. Call
// Attach before running the game so input reaches a shell.
func NewHost(cfg RunConfig) *Host {
	cfg = cfg.withDefaults()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Position != nil {
		ebiten.SetWindowPosition(cfg.Position.X, cfg.Position.Y)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetFullscreen(cfg.Fullscreen)

	h := newHost(cfg)
	return h
}

// newHost builds a host without touching the ebiten window.
func newHost(cfg RunConfig) *Host {
	key, err := parseKeyName(cfg.FullscreenKey)
	if err != nil {
		Logger().Warn().Err(err).Msg("fullscreen key disabled")
	}
	h := &Host{fullscreenKey: key}
	h.shown = sync.NewCond(&h.mu)
	h.width.Store(int32(cfg.Width))
	h.height.Store(int32(cfg.Height))
	return h
}

// Attach routes input events to sink.
func (h *Host) Attach(sink InputSink) {
	h.sink = sink
}

// Update implements ebiten.Game. It runs on ebiten's goroutine, which acts as
// the event-delivery goroutine for the attached sink.
func (h *Host) Update() error {
	if h.isClosed() {
		return ebiten.Termination
	}
	if h.sink == nil {
		return nil
	}

	in := &h.input
	in.pressedKeys = inpututil.AppendJustPressedKeys(in.pressedKeys[:0])
	in.releasedKeys = inpututil.AppendJustReleasedKeys(in.releasedKeys[:0])
	in.pressedButtons = in.pressedButtons[:0]
	in.releasedButtons = in.releasedButtons[:0]
	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			in.pressedButtons = append(in.pressedButtons, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			in.releasedButtons = append(in.releasedButtons, b)
		}
	}
	_, in.wheelDY = ebiten.Wheel()

	if in.deliver(h.sink, h.fullscreenKey) {
		h.ToggleFullscreen()
	}
	return nil
}

// hostInput holds the input edges read during one Update.
type hostInput struct {
	pressedKeys     []ebiten.Key
	releasedKeys    []ebiten.Key
	pressedButtons  []ebiten.MouseButton
	releasedButtons []ebiten.MouseButton
	wheelDY         float64
}

// deliver forwards the edges to sink. The fullscreen key is never forwarded;
// deliver reports whether it went down. Buttons without a shell equivalent
// are dropped.
func (in *hostInput) deliver(sink InputSink, fullscreenKey ebiten.Key) (toggle bool) {
	for _, k := range in.pressedKeys {
		if k == fullscreenKey {
			toggle = true
			continue
		}
		sink.PressKey(Key(k))
	}
	for _, k := range in.releasedKeys {
		if k == fullscreenKey {
			continue
		}
		sink.ReleaseKey(Key(k))
	}
	for _, b := range in.pressedButtons {
		if mb := mouseButtonFor(b); mb != MouseButtonNone {
			sink.PressMouse(mb)
		}
	}
	for _, b := range in.releasedButtons {
		if mb := mouseButtonFor(b); mb != MouseButtonNone {
			sink.ReleaseMouse(mb)
		}
	}
	if in.wheelDY != 0 {
		sink.ScrollWheel(wheelUnits(in.wheelDY))
	}
	return toggle
}

// mouseButtonFor maps an ebiten button to a shell button, or MouseButtonNone.
func mouseButtonFor(b ebiten.MouseButton) MouseButton {
	switch b {
	case ebiten.MouseButtonLeft:
		return MouseButtonLeft
	case ebiten.MouseButtonRight:
		return MouseButtonRight
	case ebiten.MouseButtonMiddle:
		return MouseButtonMiddle
	default:
		return MouseButtonNone
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.front != nil {
		screen.DrawImage(h.front, nil)
	}
	if h.pending {
		h.pending = false
		h.shown.Broadcast()
	}
}

// Layout implements ebiten.Game. The logical screen follows the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width.Store(int32(outsideWidth))
	h.height.Store(int32(outsideHeight))
	return outsideWidth, outsideHeight
}

// Size implements Surface.
func (h *Host) Size() (width, height int) {
	return int(h.width.Load()), int(h.height.Load())
}

// DrawTarget implements Surface. The back buffer is reallocated whenever the
// surface size changes.
func (h *Host) DrawTarget() (*ebiten.Image, error) {
	sw, sh := h.Size()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrSurfaceClosed
	}
	if sw <= 0 || sh <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceEmpty, sw, sh)
	}
	if h.back != nil {
		if b := h.back.Bounds(); b.Dx() != sw || b.Dy() != sh {
			h.back.Deallocate()
			h.back = nil
		}
	}
	if h.back == nil {
		h.back = ebiten.NewImage(sw, sh)
	}
	return h.back, nil
}

// Present implements Surface by swapping the back and front buffers. If the
// previous frame has not been drawn yet, Present blocks until Draw shows it
// or the host is closed or shut down.
func (h *Host) Present(target *ebiten.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || target != h.back {
		return
	}
	for h.pending && !h.closed && !h.ended {
		h.shown.Wait()
	}
	if h.closed || h.ended {
		return
	}
	h.back, h.front = h.front, target
	h.pending = true
}

// Shutdown releases a loop blocked in Present once ebiten has stopped calling
// Draw. Run calls it after ebiten.RunGame returns.
func (h *Host) Shutdown() {
	h.mu.Lock()
	h.ended = true
	h.mu.Unlock()
	h.shown.Broadcast()
}

// PointerLocation implements Surface. ebiten reports the cursor relative to
// the window, so the window position is added back.
func (h *Host) PointerLocation() image.Point {
	x, y := ebiten.CursorPosition()
	wx, wy := ebiten.WindowPosition()
	return image.Pt(x+wx, y+wy)
}

// SurfacePoint implements Surface.
func (h *Host) SurfacePoint(p image.Point) image.Point {
	wx, wy := ebiten.WindowPosition()
	return p.Sub(image.Pt(wx, wy))
}

// ToggleFullscreen implements Fullscreener.
func (h *Host) ToggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

// Close implements Surface. The back buffer is released; the last presented
// frame stays on screen until ebiten's next Update ends the game.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.shown.Broadcast()
	if h.back != nil {
		h.back.Deallocate()
		h.back = nil
	}
	return nil
}

func (h *Host) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
