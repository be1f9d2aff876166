package tickshell

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hajimehoshi/ebiten/v2"
)

// Position is a window position in screen coordinates.
type Position struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// RunConfig configures the window and loop created by Run. It can be loaded
// from a TOML file with LoadRunConfig:
//
//	title = "My App"
//	width = 800
//	height = 600
//	resizable = true
//	background = "#1e1e28"
//	show_fps = true
//	fullscreen_key = "F11"
//
//	[position]
//	x = 100
//	y = 80
type RunConfig struct {
	Title      string    `toml:"title"`
	Width      int       `toml:"width"`
	Height     int       `toml:"height"`
	Position   *Position `toml:"position"` // nil centers the window
	Resizable  bool      `toml:"resizable"`
	Fullscreen bool      `toml:"fullscreen"` // start in fullscreen

	// FullscreenKey names the ebiten key that toggles fullscreen, e.g. "F11".
	// Empty disables the shortcut. The key is not forwarded to the shell.
	FullscreenKey string `toml:"fullscreen_key"`

	Background    Color  `toml:"background"`
	ShowFPS       bool   `toml:"show_fps"`
	Debug         bool   `toml:"debug"`
	ScreenshotDir string `toml:"screenshot_dir"`
}

// DefaultRunConfig returns the configuration used for zero fields.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:         "tickshell",
		Width:         640,
		Height:        480,
		Background:    ColorBlack,
		ScreenshotDir: defaultScreenshotDir,
	}
}

// LoadRunConfig reads a TOML file on top of DefaultRunConfig. Unknown keys
// are an error.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return RunConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return RunConfig{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return RunConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// withDefaults fills zero fields from DefaultRunConfig.
func (c RunConfig) withDefaults() RunConfig {
	d := DefaultRunConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Background == (Color{}) {
		c.Background = d.Background
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	return c
}

func (c RunConfig) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if _, err := parseKeyName(c.FullscreenKey); err != nil {
		return err
	}
	return nil
}

// shellConfig derives the Shell configuration.
func (c RunConfig) shellConfig() Config {
	return Config{
		Background:    c.Background,
		ShowFPS:       c.ShowFPS,
		Debug:         c.Debug,
		ScreenshotDir: c.ScreenshotDir,
	}
}

// parseKeyName resolves an ebiten key name such as "F11" or "Escape",
// case-insensitively. The empty name yields -1 and no error.
func parseKeyName(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, nil
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return -1, fmt.Errorf("unknown key name %q", name)
}
