package tickshell

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWindow is how often the measured frame rate is refreshed, in seconds.
const fpsWindow = 0.5

// FrameStats holds loop counters and the timings of the most recent frame.
type FrameStats struct {
	Frames      uint64        // iterations completed
	FrameErrors uint64        // iterations whose draw target could not be acquired
	Delta       time.Duration // elapsed time passed to the last render
	RenderTime  time.Duration // time spent in the render callback, overlay and screenshots
	PresentTime time.Duration // time spent presenting the target
	FPS         float64       // frames per second over the last sampling window
}

// frameTimings is measured by draw for a single iteration.
type frameTimings struct {
	render  time.Duration
	present time.Duration
}

// recordFrame folds one iteration into the shell's stats. Called from the loop.
func (s *Shell) recordFrame(delta float64, t frameTimings, ok bool) {
	s.statsMu.Lock()
	s.stats.Frames++
	if !ok {
		s.stats.FrameErrors++
	}
	s.stats.Delta = time.Duration(delta * float64(time.Second))
	s.stats.RenderTime = t.render
	s.stats.PresentTime = t.present

	s.fpsElapsed += delta
	s.fpsFrames++
	sampled := false
	if s.fpsElapsed >= fpsWindow {
		s.stats.FPS = float64(s.fpsFrames) / s.fpsElapsed
		s.fpsElapsed = 0
		s.fpsFrames = 0
		sampled = true
	}
	stats := s.stats
	s.statsMu.Unlock()

	if sampled && s.cfg.Debug {
		s.debugLog(stats)
	}
}

// Stats returns a snapshot of the loop statistics.
func (s *Shell) Stats() FrameStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

// FPS returns the measured loop rate, refreshed every half second.
func (s *Shell) FPS() float64 {
	return s.Stats().FPS
}

// debugLog writes frame timing at debug level.
func (s *Shell) debugLog(stats FrameStats) {
	Logger().Debug().
		Float64("fps", stats.FPS).
		Dur("delta", stats.Delta).
		Dur("render", stats.RenderTime).
		Dur("present", stats.PresentTime).
		Uint64("frames", stats.Frames).
		Uint64("frame_errors", stats.FrameErrors).
		Int("held_keys", s.keys.count()).
		Str("mouse", s.mouse.phase().String()).
		Msg("frame stats")
}

// drawFPS prints the measured rate in the top-left corner of target.
func (s *Shell) drawFPS(target *ebiten.Image) {
	ebitenutil.DebugPrint(target, fmt.Sprintf("FPS: %.1f", s.FPS()))
}
