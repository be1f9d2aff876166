package tickshell

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a window configured by cfg, starts a shell on it and blocks until
// the window is closed or the shell is stopped. newApp is called once with
// the shell so the application can keep it for input queries:
//
//	err := tickshell.Run(tickshell.RunConfig{Title: "Demo"}, func(sh *tickshell.Shell) tickshell.Renderer {
//		return tickshell.RenderFunc(func(target *ebiten.Image, delta float64) {
//			if sh.KeyHeld(tickshell.Key(ebiten.KeyEscape)) >= 0 {
//				sh.Stop()
//			}
//		})
//	})
//
// Run must be called from the main goroutine.
func Run(cfg RunConfig, newApp func(*Shell) Renderer) error {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	host := NewHost(cfg)
	sh := New(host, nil, cfg.shellConfig())
	sh.renderer = newApp(sh)
	host.Attach(sh)

	Logger().Info().
		Str("title", cfg.Title).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Msg("opening window")

	sh.Start()
	err := ebiten.RunGame(host)
	sh.Stop()
	host.Shutdown()
	<-sh.Done()
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
