package tickshell

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Errors returned by Surface implementations.
var (
	// ErrSurfaceClosed is returned when a draw target is requested after Close.
	ErrSurfaceClosed = errors.New("tickshell: surface is closed")

	// ErrSurfaceEmpty is returned while the surface has no drawable area,
	// e.g. before the first layout or while minimized.
	ErrSurfaceEmpty = errors.New("tickshell: surface has zero size")

	// ErrNoDrawTarget is reported when a surface returns neither a target nor an error.
	ErrNoDrawTarget = errors.New("tickshell: surface returned no draw target")
)

// Surface is the display collaborator driven by the frame loop. DrawTarget
// and Present are only called from the loop goroutine. PointerLocation and
// SurfacePoint may also be called from the event goroutine.
type Surface interface {
	// DrawTarget acquires the buffer for the next frame, sized to the
	// current surface dimensions.
	DrawTarget() (*ebiten.Image, error)

	// Present releases a target obtained from DrawTarget and shows it. It may
	// block until the host has shown the previous frame.
	Present(target *ebiten.Image)

	// Size returns the current surface dimensions in pixels.
	Size() (width, height int)

	// PointerLocation returns the absolute pointer position.
	PointerLocation() image.Point

	// SurfacePoint converts an absolute position to surface coordinates.
	SurfacePoint(p image.Point) image.Point

	// Close releases the surface. The loop calls it once when it stops.
	Close() error
}

// Fullscreener is implemented by surfaces that can switch to fullscreen.
type Fullscreener interface {
	ToggleFullscreen()
}

// InputSink receives input events from the host. Every method is safe to call
// from any goroutine at any time.
type InputSink interface {
	PressKey(k Key)
	ReleaseKey(k Key)
	PressMouse(button MouseButton)
	ReleaseMouse(button MouseButton)
	ScrollWheel(delta int)
}

// Renderer is the per-frame application callback. target has already been
// cleared to the background color; delta is the elapsed time in seconds since
// the previous frame.
type Renderer interface {
	Render(target *ebiten.Image, delta float64)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(target *ebiten.Image, delta float64)

// Render calls f(target, delta).
func (f RenderFunc) Render(target *ebiten.Image, delta float64) {
	f(target, delta)
}
