package tickshell

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeSurface records the calls the loop makes on it.
type fakeSurface struct {
	mu         sync.Mutex
	w, h       int
	pointer    image.Point
	origin     image.Point // surface origin in absolute coordinates
	target     *ebiten.Image
	err        error
	calls      []string
	locates    int
	presented  int
	closed     int
	fullscreen bool
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{w: w, h: h}
}

func (f *fakeSurface) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeSurface) DrawTarget() (*ebiten.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("acquire")
	if f.err != nil {
		return nil, f.err
	}
	if f.target == nil {
		f.target = ebiten.NewImage(f.w, f.h)
	}
	return f.target, nil
}

func (f *fakeSurface) Present(*ebiten.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("present")
	f.presented++
}

func (f *fakeSurface) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w, f.h
}

func (f *fakeSurface) PointerLocation() image.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locates++
	return f.pointer
}

func (f *fakeSurface) SurfacePoint(p image.Point) image.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return p.Sub(f.origin)
}

func (f *fakeSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSurface) ToggleFullscreen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullscreen = !f.fullscreen
}

func (f *fakeSurface) setPointer(p image.Point) {
	f.mu.Lock()
	f.pointer = p
	f.mu.Unlock()
}

func (f *fakeSurface) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeSurface) snapshot() (calls []string, locates, presented, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...), f.locates, f.presented, f.closed
}

// recorder is a Renderer that appends to the surface's call log and runs an
// optional per-frame hook.
type recorder struct {
	surface *fakeSurface
	hook    func(target *ebiten.Image, delta float64)
	mu      sync.Mutex
	deltas  []float64
}

func (r *recorder) Render(target *ebiten.Image, delta float64) {
	r.surface.mu.Lock()
	r.surface.record("render")
	r.surface.mu.Unlock()

	r.mu.Lock()
	r.deltas = append(r.deltas, delta)
	hook := r.hook
	r.mu.Unlock()
	if hook != nil {
		hook(target, delta)
	}
}

func (r *recorder) frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deltas)
}
