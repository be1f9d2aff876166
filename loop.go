package tickshell

import (
	"time"
)

// run is the loop goroutine. It never sleeps; delta is whatever elapsed.
func (s *Shell) run(prev <-chan struct{}, stop <-chan struct{}, done chan<- struct{}) {
	<-prev
	defer close(done)
	defer s.release()

	Logger().Info().Msg("loop started")
	last := s.now()
	for {
		select {
		case <-stop:
			Logger().Info().Uint64("frames", s.Stats().Frames).Msg("loop stopped")
			return
		default:
		}
		now := s.now()
		delta := now.Sub(last).Seconds()
		last = now
		s.frame(delta)
	}
}

func (s *Shell) release() {
	if err := s.surface.Close(); err != nil {
		Logger().Warn().Err(err).Msg("release surface")
	}
}

// frame runs one iteration: reset the cursor cache, deliver scripted and
// injected input, draw, then advance input state for the next frame.
func (s *Shell) frame(delta float64) {
	s.mouse.invalidateCursor()
	if r := s.script.Load(); r != nil {
		r.step(s)
	}
	s.processInjected()

	t, ok := s.draw(delta)

	s.keys.tick(delta)
	s.mouse.advance()
	s.recordFrame(delta, t, ok)
}

// draw acquires, clears, renders and presents one target. It reports false
// when the target could not be acquired and nothing was rendered.
func (s *Shell) draw(delta float64) (frameTimings, bool) {
	var t frameTimings

	target, err := s.surface.DrawTarget()
	if err == nil && target == nil {
		err = ErrNoDrawTarget
	}
	if err != nil {
		s.errors.report(err)
		if s.cfg.OnFrameError != nil {
			s.cfg.OnFrameError(err)
		}
		return t, false
	}

	target.Fill(s.cfg.Background.RGBA())

	t0 := time.Now()
	if s.renderer != nil {
		s.renderer.Render(target, delta)
	}
	if s.cfg.ShowFPS {
		s.drawFPS(target)
	}
	s.flushScreenshots(target)
	t.render = time.Since(t0)

	t0 = time.Now()
	s.surface.Present(target)
	t.present = time.Since(t0)

	return t, true
}
