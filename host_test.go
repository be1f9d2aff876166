package tickshell

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestHostSizeFollowsLayout(t *testing.T) {
	h := newHost(RunConfig{Width: 320, Height: 200})
	if w, ht := h.Size(); w != 320 || ht != 200 {
		t.Errorf("Size = %dx%d, want 320x200", w, ht)
	}
	if w, ht := h.Layout(800, 600); w != 800 || ht != 600 {
		t.Errorf("Layout = %dx%d, want 800x600", w, ht)
	}
	if w, ht := h.Size(); w != 800 || ht != 600 {
		t.Errorf("Size after Layout = %dx%d, want 800x600", w, ht)
	}
}

func TestHostFullscreenKey(t *testing.T) {
	if h := newHost(RunConfig{FullscreenKey: "F11"}); h.fullscreenKey != ebiten.KeyF11 {
		t.Errorf("fullscreenKey = %v, want F11", h.fullscreenKey)
	}
	if h := newHost(RunConfig{}); h.fullscreenKey != -1 {
		t.Errorf("fullscreenKey = %v, want disabled", h.fullscreenKey)
	}
	if h := newHost(RunConfig{FullscreenKey: "bogus"}); h.fullscreenKey != -1 {
		t.Errorf("fullscreenKey = %v, want disabled for unknown names", h.fullscreenKey)
	}
}

func TestHostDrawTarget(t *testing.T) {
	h := newHost(RunConfig{Width: 32, Height: 16})

	a, err := h.DrawTarget()
	if err != nil {
		t.Fatalf("DrawTarget: %v", err)
	}
	if b := a.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("bounds = %v, want 32x16", b)
	}
	again, _ := h.DrawTarget()
	if again != a {
		t.Error("back buffer should be reused while the size is unchanged")
	}

	h.Layout(64, 64)
	resized, err := h.DrawTarget()
	if err != nil {
		t.Fatalf("DrawTarget after resize: %v", err)
	}
	if b := resized.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("bounds after resize = %v, want 64x64", b)
	}
}

func TestHostDrawTargetEmpty(t *testing.T) {
	h := newHost(RunConfig{Width: 32, Height: 16})
	h.Layout(0, 0)
	if _, err := h.DrawTarget(); !errors.Is(err, ErrSurfaceEmpty) {
		t.Errorf("err = %v, want ErrSurfaceEmpty", err)
	}
}

func TestHostPresentSwaps(t *testing.T) {
	h := newHost(RunConfig{Width: 8, Height: 8})

	first, _ := h.DrawTarget()
	h.Present(first)
	if h.front != first {
		t.Fatal("presented target should become the front buffer")
	}
	second, _ := h.DrawTarget()
	if second == first {
		t.Error("next draw target should not be the front buffer")
	}

	// Presenting a foreign image is ignored.
	h.Present(ebiten.NewImage(8, 8))
	if h.front != first {
		t.Error("foreign image replaced the front buffer")
	}
}

func TestHostClose(t *testing.T) {
	h := newHost(RunConfig{Width: 8, Height: 8})
	if _, err := h.DrawTarget(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := h.DrawTarget(); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("err = %v, want ErrSurfaceClosed", err)
	}
	if err := h.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Close = %v, want ebiten.Termination", err)
	}
}

// sinkRecorder logs events forwarded by the host.
type sinkRecorder struct{ events []string }

func (s *sinkRecorder) PressKey(k Key) { s.events = append(s.events, fmt.Sprintf("keydown %d", k)) }
func (s *sinkRecorder) ReleaseKey(k Key) { s.events = append(s.events, fmt.Sprintf("keyup %d", k)) }
func (s *sinkRecorder) PressMouse(b MouseButton) {
	s.events = append(s.events, "press "+b.String())
}
func (s *sinkRecorder) ReleaseMouse(b MouseButton) {
	s.events = append(s.events, "release "+b.String())
}
func (s *sinkRecorder) ScrollWheel(d int) { s.events = append(s.events, fmt.Sprintf("wheel %d", d)) }

func TestHostAttach(t *testing.T) {
	h := newHost(RunConfig{})
	if err := h.Update(); err != nil {
		t.Errorf("Update without sink = %v", err)
	}
	var sink InputSink = &sinkRecorder{}
	h.Attach(sink)
	if h.sink != sink {
		t.Error("Attach did not store the sink")
	}
}

func TestHostInputDeliver(t *testing.T) {
	tests := []struct {
		name       string
		in         hostInput
		fullscreen ebiten.Key
		want       []string
		wantToggle bool
	}{
		{
			name:       "keys",
			in:         hostInput{pressedKeys: []ebiten.Key{ebiten.KeyA, ebiten.KeyB}, releasedKeys: []ebiten.Key{ebiten.KeyA}},
			fullscreen: -1,
			want: []string{
				fmt.Sprintf("keydown %d", ebiten.KeyA),
				fmt.Sprintf("keydown %d", ebiten.KeyB),
				fmt.Sprintf("keyup %d", ebiten.KeyA),
			},
		},
		{
			name:       "fullscreen key filtered",
			in:         hostInput{pressedKeys: []ebiten.Key{ebiten.KeyF11, ebiten.KeyA}, releasedKeys: []ebiten.Key{ebiten.KeyF11}},
			fullscreen: ebiten.KeyF11,
			want:       []string{fmt.Sprintf("keydown %d", ebiten.KeyA)},
			wantToggle: true,
		},
		{
			name:       "fullscreen release alone does not toggle",
			in:         hostInput{releasedKeys: []ebiten.Key{ebiten.KeyF11}},
			fullscreen: ebiten.KeyF11,
		},
		{
			name: "buttons",
			in: hostInput{
				pressedButtons:  []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonMiddle, ebiten.MouseButton3},
				releasedButtons: []ebiten.MouseButton{ebiten.MouseButtonRight, ebiten.MouseButton4},
			},
			fullscreen: -1,
			want:       []string{"press left", "press middle", "release right"},
		},
		{
			name:       "no wheel movement",
			in:         hostInput{wheelDY: 0},
			fullscreen: -1,
		},
		{
			name:       "wheel up",
			in:         hostInput{wheelDY: 1.5},
			fullscreen: -1,
			want:       []string{"wheel -2"},
		},
		{
			name:       "wheel fraction down",
			in:         hostInput{wheelDY: -0.2},
			fullscreen: -1,
			want:       []string{"wheel 1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &sinkRecorder{}
			toggle := tt.in.deliver(sink, tt.fullscreen)
			if toggle != tt.wantToggle {
				t.Errorf("toggle = %v, want %v", toggle, tt.wantToggle)
			}
			if len(sink.events) != len(tt.want) {
				t.Fatalf("events = %v, want %v", sink.events, tt.want)
			}
			for i := range tt.want {
				if sink.events[i] != tt.want[i] {
					t.Errorf("event %d = %q, want %q", i, sink.events[i], tt.want[i])
				}
			}
		})
	}
}

func TestMouseButtonFor(t *testing.T) {
	tests := []struct {
		in   ebiten.MouseButton
		want MouseButton
	}{
		{ebiten.MouseButtonLeft, MouseButtonLeft},
		{ebiten.MouseButtonRight, MouseButtonRight},
		{ebiten.MouseButtonMiddle, MouseButtonMiddle},
		{ebiten.MouseButton3, MouseButtonNone},
		{ebiten.MouseButton4, MouseButtonNone},
	}
	for _, tt := range tests {
		if got := mouseButtonFor(tt.in); got != tt.want {
			t.Errorf("mouseButtonFor(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// presentAsync calls Present on its own goroutine and returns a channel
// closed when it returns.
func presentAsync(h *Host, target *ebiten.Image) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		h.Present(target)
		close(done)
	}()
	return done
}

func TestHostPresentWaitsForDraw(t *testing.T) {
	h := newHost(RunConfig{Width: 8, Height: 8})
	screen := ebiten.NewImage(8, 8)

	first, _ := h.DrawTarget()
	select {
	case <-presentAsync(h, first):
	case <-time.After(time.Second):
		t.Fatal("first Present blocked with nothing pending")
	}

	second, _ := h.DrawTarget()
	done := presentAsync(h, second)
	select {
	case <-done:
		t.Fatal("second Present returned before Draw showed the first frame")
	case <-time.After(50 * time.Millisecond):
	}

	h.Draw(screen)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Present still blocked after Draw")
	}

	h.mu.Lock()
	front := h.front
	h.mu.Unlock()
	if front != second {
		t.Error("second target should be the front buffer")
	}
}

func TestHostPresentReleasedByClose(t *testing.T) {
	h := newHost(RunConfig{Width: 8, Height: 8})
	first, _ := h.DrawTarget()
	h.Present(first)
	second, _ := h.DrawTarget()

	done := presentAsync(h, second)
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not release a blocked Present")
	}
}

func TestHostPresentReleasedByShutdown(t *testing.T) {
	h := newHost(RunConfig{Width: 8, Height: 8})
	first, _ := h.DrawTarget()
	h.Present(first)
	second, _ := h.DrawTarget()

	done := presentAsync(h, second)
	h.Shutdown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not release a blocked Present")
	}

	// After shutdown nothing is waited for.
	select {
	case <-presentAsync(h, second):
	case <-time.After(time.Second):
		t.Fatal("Present blocked after Shutdown")
	}
}
